package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newEmployeesCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
		Long:  "Commands for managing employees and their billing rates.",
	}

	cmd.AddCommand(newEmployeesCreateCmd(billingService))
	cmd.AddCommand(newEmployeesListCmd(billingService))

	return cmd
}

func newEmployeesCreateCmd(billingService *service.BillingService) *cobra.Command {
	var shop, shopOT, travel, field, fieldOT string

	cmd := &cobra.Command{
		Use:   "create <first-name> <last-name>",
		Short: "Create an employee",
		Long:  "Create an employee with optional per-rate-type billing rates. Unset rates fall back to the standard table.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := make(models.RateTable)
			flagRates := map[models.RateType]string{
				models.ShopTime:      shop,
				models.ShopOvertime:  shopOT,
				models.TravelTime:    travel,
				models.FieldTime:     field,
				models.FieldOvertime: fieldOT,
			}
			for rt, raw := range flagRates {
				if raw == "" {
					continue
				}
				d, err := decimal.NewFromString(raw)
				if err != nil {
					return fmt.Errorf("invalid rate '%s' for %s: %w", raw, rt, err)
				}
				rates[rt] = d
			}
			if len(rates) == 0 {
				rates = nil
			}
			employee, err := billingService.CreateEmployee(cmd.Context(), args[0], args[1], rates)
			if err != nil {
				return err
			}
			fmt.Printf("Created employee %s (ID: %s)\n", employee.DisplayName(), employee.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&shop, "shop-rate", "", "Shop time hourly rate")
	cmd.Flags().StringVar(&shopOT, "shop-overtime-rate", "", "Shop overtime hourly rate")
	cmd.Flags().StringVar(&travel, "travel-rate", "", "Travel time hourly rate")
	cmd.Flags().StringVar(&field, "field-rate", "", "Field time hourly rate")
	cmd.Flags().StringVar(&fieldOT, "field-overtime-rate", "", "Field overtime hourly rate")
	return cmd
}

func newEmployeesListCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := billingService.ListEmployees(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}
			if len(employees) == 0 {
				fmt.Println("No employees found.")
				return nil
			}
			for _, e := range employees {
				fmt.Printf("%s - %s (%s)\n", e.ID, e.DisplayName(), e.Initials())
			}
			return nil
		},
	}
}
