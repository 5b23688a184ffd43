package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newInvoicesCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Generate invoice documents",
	}
	cmd.AddCommand(newInvoicesGenerateCmd(billingService))
	return cmd
}

func newInvoicesGenerateCmd(billingService *service.BillingService) *cobra.Command {
	var fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a PDF per pending invoice group",
		Long: `Render one PDF per pending invoice group in the range: a page per
service ticket in display order, then a line-item summary. A group that
fails to render is reported and skipped; the rest still generate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range []string{fromDate, toDate} {
				if err := validateDate(d); err != nil {
					return err
				}
			}
			outcomes, warnings, err := billingService.GenerateInvoices(cmd.Context(), fromDate, toDate)
			if err != nil {
				return err
			}

			generated := 0
			for _, o := range outcomes {
				if o.Err != nil {
					fmt.Printf("Failed: %v\n", o.Err)
					continue
				}
				fmt.Printf("Generated %s (Total: $%s)\n", o.Path, o.Total)
				if o.External != "" {
					fmt.Printf("  Accounting invoice: %s\n", o.External)
				}
				generated++
			}
			for _, w := range warnings {
				fmt.Printf("Warning: %s\n", w)
			}
			if generated == 0 {
				fmt.Println("No invoices generated - no pending groups in the specified range")
			}
			return nil
		},
	}
	addRangeFlags(cmd, &fromDate, &toDate)
	return cmd
}
