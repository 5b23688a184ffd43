package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newExpensesCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage ticket expenses",
	}
	cmd.AddCommand(newExpensesAddCmd(billingService))
	return cmd
}

func newExpensesAddCmd(billingService *service.BillingService) *cobra.Command {
	var quantity, rate, reference string

	cmd := &cobra.Command{
		Use:   "add <ticket-id>",
		Short: "Attach an expense to a ticket",
		Long:  "Attach a quantity-times-rate expense to a ticket. Expenses bill alongside the ticket's hours.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := decimal.NewFromString(quantity)
			if err != nil {
				return fmt.Errorf("invalid quantity '%s': %w", quantity, err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate '%s': %w", rate, err)
			}
			expense, err := billingService.AddExpense(cmd.Context(), args[0], q, r, optional(reference))
			if err != nil {
				return err
			}
			fmt.Printf("Added expense %s ($%s)\n", expense.ID, expense.Amount().StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "Quantity")
	cmd.Flags().StringVarP(&rate, "rate", "r", "", "Unit rate (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "Expense reference text")
	cmd.MarkFlagRequired("rate")
	return cmd
}
