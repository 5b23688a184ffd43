package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newStatusCmd(billingService *service.BillingService, cfg *config.Config) *cobra.Command {
	var fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show billing status for a date range",
		Long:  "Summarize pending and invoiced groups, incomplete tickets, and warnings for the range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := billingService.Groups(cmd.Context(), fromDate, toDate)
			if err != nil {
				return err
			}
			fmt.Printf("Range: %s to %s\n", fromDate, toDate)
			fmt.Printf("Pending groups: %d\n", len(res.Pending))
			fmt.Printf("Invoiced groups: %d\n", len(res.Invoiced))
			fmt.Printf("Incomplete tickets: %d\n", len(res.Incomplete))
			fmt.Printf("Warnings: %d\n", len(res.Warnings))
			if cfg.HasRemoteMarkers() {
				fmt.Printf("Markers: local + %s\n", cfg.RemoteMarkersURL)
			} else {
				fmt.Println("Markers: local only")
			}
			return nil
		},
	}
	addRangeFlags(cmd, &fromDate, &toDate)
	return cmd
}
