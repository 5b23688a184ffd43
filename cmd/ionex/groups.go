package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newGroupsCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect and mark invoice groups",
	}

	cmd.AddCommand(newGroupsListCmd(billingService))
	cmd.AddCommand(newGroupsMarkCmd(billingService))
	cmd.AddCommand(newGroupsUnmarkCmd(billingService))

	return cmd
}

func newGroupsListCmd(billingService *service.BillingService) *cobra.Command {
	var fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoice groups split by invoiced state",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := billingService.Groups(cmd.Context(), fromDate, toDate)
			if err != nil {
				return err
			}

			printGroups := func(heading string, groups []*billing.Group) {
				if len(groups) == 0 {
					return
				}
				fmt.Printf("%s:\n", heading)
				for _, g := range groups {
					breakdown, warnings := billingService.Breakdown(cmd.Context(), g)
					fmt.Printf("  %s  %s  %s  $%s\n", g.ID, g.CustomerName, g.PeriodLabel, breakdown.Total.StringFixed(2))
					for _, li := range breakdown.LineItems {
						fmt.Printf("    %-20s %s  $%s\n", li.Label, li.TicketNumbers, li.Subtotal.StringFixed(2))
					}
					for _, w := range warnings {
						fmt.Printf("    Warning: %s\n", w)
					}
				}
			}
			printGroups("Pending", res.Pending)
			printGroups("Invoiced", res.Invoiced)

			if len(res.Incomplete) > 0 {
				fmt.Println("Incomplete tickets (no billing key):")
				for _, t := range res.Incomplete {
					fmt.Printf("  %s  %s  %s\n", t.TicketNumber, t.Date, t.CustomerName)
				}
			}
			for _, w := range res.Warnings {
				fmt.Printf("Warning: %s\n", w)
			}
			if len(res.Pending) == 0 && len(res.Invoiced) == 0 && len(res.Incomplete) == 0 {
				fmt.Println("No invoice groups in range.")
			}
			return nil
		},
	}
	addRangeFlags(cmd, &fromDate, &toDate)
	return cmd
}

func newGroupsMarkCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <group-id>",
		Short: "Mark a group as invoiced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := billingService.MarkInvoiced(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Marked group %s as invoiced\n", args[0])
			return nil
		},
	}
}

func newGroupsUnmarkCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "unmark <group-id>",
		Short: "Clear a group's invoiced marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := billingService.UnmarkInvoiced(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Unmarked group %s\n", args[0])
			return nil
		},
	}
}
