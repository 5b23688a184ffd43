package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newReconcileCmd(billingService *service.BillingService) *cobra.Command {
	var fromDate, toDate string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile time entries against approved tickets",
		Long: `Assemble billable time entries into base tickets, match them against
approved service tickets, and show the resulting invoice groups. The pass
is read-only; running it twice over the same range gives the same answer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range []string{fromDate, toDate} {
				if err := validateDate(d); err != nil {
					return err
				}
			}
			res, err := billingService.Reconcile(cmd.Context(), fromDate, toDate)
			if err != nil {
				return err
			}

			fmt.Printf("Reconciled %s to %s: %d tickets, %d groups\n",
				fromDate, toDate, len(res.Tickets), len(res.Groups))

			for _, g := range res.Groups {
				fmt.Printf("\nGroup %s\n", g.ID)
				fmt.Printf("  Customer: %s  Period: %s\n", g.CustomerName, g.PeriodLabel)
				if g.ApproverCode != "" {
					fmt.Printf("  Approver: %s\n", g.ApproverCode)
				}
				for _, t := range g.Tickets {
					number := t.TicketNumber
					if number == "" {
						number = "(unnumbered)"
					}
					fmt.Printf("  %s  %s  %s  %.2fh\n", number, t.Date, t.EmployeeName, t.Hours.Total())
					if verbose {
						for _, e := range t.Entries {
							desc := ""
							if e.Description != nil {
								desc = *e.Description
							}
							fmt.Printf("    %.2fh %-15s %s\n", e.Hours, e.RateType, desc)
						}
					}
				}
			}

			if len(res.Incomplete) > 0 {
				fmt.Printf("\nIncomplete tickets (no billing key):\n")
				for _, t := range res.Incomplete {
					fmt.Printf("  %s  %s  %s\n", t.TicketNumber, t.Date, t.CustomerName)
				}
			}
			for _, w := range res.Warnings {
				fmt.Printf("Warning: %s\n", w)
			}
			return nil
		},
	}
	addRangeFlags(cmd, &fromDate, &toDate)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show entry-level detail per ticket")
	return cmd
}
