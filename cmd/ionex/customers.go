package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newCustomersCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers",
		Long:  "Commands for managing customers and their billing defaults.",
	}

	cmd.AddCommand(newCustomersCreateCmd(billingService))
	cmd.AddCommand(newCustomersListCmd(billingService))

	return cmd
}

func newCustomersCreateCmd(billingService *service.BillingService) *cobra.Command {
	var approverDriven bool
	var periodMode, approver, poAfe, coding, other string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a customer",
		Long:  "Create a customer with its invoicing regime and default billing fields.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			customer, err := billingService.CreateCustomer(ctx, database.CreateCustomerParams{
				Name:           args[0],
				ApproverDriven: approverDriven,
				PeriodMode:     optional(periodMode),
				Approver:       optional(approver),
				PoAfe:          optional(poAfe),
				Coding:         optional(coding),
				Other:          optional(other),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created customer %s (ID: %s)\n", customer.Name, customer.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&approverDriven, "approver-driven", false, "Group invoices by approver code instead of period")
	cmd.Flags().StringVar(&periodMode, "period-mode", "", "Override period mode (daily, weekly, biweekly, monthly)")
	cmd.Flags().StringVar(&approver, "approver", "", "Default approver")
	cmd.Flags().StringVar(&poAfe, "po-afe", "", "Default PO/AFE number")
	cmd.Flags().StringVar(&coding, "coding", "", "Default coding")
	cmd.Flags().StringVar(&other, "other", "", "Default other reference")
	return cmd
}

func newCustomersListCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := billingService.ListCustomers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list customers: %w", err)
			}
			if len(customers) == 0 {
				fmt.Println("No customers found.")
				return nil
			}
			for _, c := range customers {
				regime := "period"
				if c.ApproverDriven {
					regime = "approver"
				}
				fmt.Printf("%s - %s - %s\n", c.ID, c.Name, regime)
			}
			return nil
		},
	}
}
