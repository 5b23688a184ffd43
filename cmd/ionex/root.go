package main

import (
	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newRootCmd(billingService *service.BillingService, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ionex",
		Short: "Service ticket reconciliation and invoice grouping",
		Long: `Track field and shop time across customers, reconcile it against approved
service tickets, and group the results into invoices per customer billing rules.`,
	}

	rootCmd.AddCommand(
		newCustomersCmd(billingService),
		newProjectsCmd(billingService),
		newEmployeesCmd(billingService),
		newLogCmd(billingService),
		newEntriesCmd(billingService),
		newTicketsCmd(billingService),
		newExpensesCmd(billingService),
		newReconcileCmd(billingService),
		newGroupsCmd(billingService),
		newInvoicesCmd(billingService),
		newStatusCmd(billingService, cfg),
		newDbResetCmd(cfg),
	)

	return rootCmd
}
