package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newLogCmd(billingService *service.BillingService) *cobra.Command {
	var date, rateType, description, customer, project string
	var poAfe, approver, coding, other, employeeID string
	var nonBillable bool

	cmd := &cobra.Command{
		Use:   "log <hours>",
		Short: "Record a time entry",
		Long: `Record a dated block of hours for an employee. Entries with no project
are assembled under the unassigned customer until a project is known.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hours float64
			if _, err := fmt.Sscanf(args[0], "%f", &hours); err != nil {
				return fmt.Errorf("invalid hours '%s'", args[0])
			}
			if err := validateDate(date); err != nil {
				return err
			}
			if employeeID == "" {
				return fmt.Errorf("employee id is required")
			}
			entry, err := billingService.LogEntry(cmd.Context(), customer, project, database.CreateTimeEntryParams{
				Date:        date,
				Hours:       hours,
				RateType:    models.RateType(rateType),
				Description: optional(description),
				EmployeeID:  employeeID,
				PoAfe:       optional(poAfe),
				Approver:    optional(approver),
				Coding:      optional(coding),
				Other:       optional(other),
				Billable:    !nonBillable,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Logged %.2fh %s on %s (ID: %s)\n", entry.Hours, entry.RateType, entry.Date, entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&rateType, "rate-type", "r", string(models.ShopTime), "Rate type (shop_time, shop_overtime, travel_time, field_time, field_overtime)")
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "Employee id (required)")
	cmd.Flags().StringVarP(&customer, "customer", "c", "", "Customer name")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name (with --customer)")
	cmd.Flags().StringVar(&description, "description", "", "Work description")
	cmd.Flags().StringVar(&poAfe, "po-afe", "", "PO/AFE override for this entry")
	cmd.Flags().StringVar(&approver, "approver", "", "Approver override for this entry")
	cmd.Flags().StringVar(&coding, "coding", "", "Coding override for this entry")
	cmd.Flags().StringVar(&other, "other", "", "Other reference override for this entry")
	cmd.Flags().BoolVar(&nonBillable, "non-billable", false, "Exclude this entry from reconciliation")
	return cmd
}

func newEntriesCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect time entries",
	}
	cmd.AddCommand(newEntriesListCmd(billingService))
	return cmd
}

func newEntriesListCmd(billingService *service.BillingService) *cobra.Command {
	var fromDate, toDate string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List billable entries in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := billingService.ListEntries(cmd.Context(), fromDate, toDate)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No billable entries in range.")
				return nil
			}
			for _, e := range entries {
				customer := e.CustomerName
				if customer == "" {
					customer = "unassigned"
				}
				fmt.Printf("%s  %.2fh %-15s %s", e.Date, e.Hours, e.RateType, customer)
				if e.ProjectName != "" {
					fmt.Printf(" / %s", e.ProjectName)
				}
				fmt.Println()
			}
			return nil
		},
	}
	addRangeFlags(cmd, &fromDate, &toDate)
	return cmd
}
