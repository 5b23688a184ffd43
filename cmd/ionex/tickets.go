package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newTicketsCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Manage service tickets",
		Long: `Service tickets are the approved administrative records that reconciliation
matches time entries against. Tickets receive their permanent ticket number
when first approved.`,
	}

	cmd.AddCommand(newTicketsSubmitCmd(billingService))
	cmd.AddCommand(newTicketsApproveCmd(billingService))
	cmd.AddCommand(newTicketsDiscardCmd(billingService))
	cmd.AddCommand(newTicketsListCmd(billingService))

	return cmd
}

func newTicketsSubmitCmd(billingService *service.BillingService) *cobra.Command {
	var date, employeeID, customerID, projectID, location string
	var approver, poAfe, coding, other, serviceLocation string
	var editedHours []string
	var totalHours float64

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a service ticket",
		Long: `Submit a ticket for approval. Edited hours (--hours rate_type=value) take
precedence over matched entry hours once the ticket reconciles; a bare
--total is used for standalone tickets with no per-rate split.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDate(date); err != nil {
				return err
			}
			if employeeID == "" {
				return fmt.Errorf("employee id is required")
			}

			hours := make(models.Hours)
			for _, spec := range editedHours {
				parts := strings.SplitN(spec, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid hours spec '%s', expected rate_type=value", spec)
				}
				rt := models.RateType(parts[0])
				if !rt.Valid() {
					return fmt.Errorf("unknown rate type '%s'", parts[0])
				}
				v, err := strconv.ParseFloat(parts[1], 64)
				if err != nil {
					return fmt.Errorf("invalid hours value '%s': %w", parts[1], err)
				}
				hours[rt] = v
			}
			if len(hours) == 0 {
				hours = nil
			}

			var total *float64
			if cmd.Flags().Changed("total") {
				total = &totalHours
			}

			ticket, err := billingService.SubmitTicket(cmd.Context(), database.SubmitTicketParams{
				Date:            date,
				EmployeeID:      employeeID,
				CustomerID:      optional(customerID),
				ProjectID:       optional(projectID),
				Location:        optional(location),
				EditedHours:     hours,
				TotalHours:      total,
				Approver:        optional(approver),
				PoAfe:           optional(poAfe),
				Coding:          optional(coding),
				Other:           optional(other),
				ServiceLocation: optional(serviceLocation),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Submitted ticket %s for %s\n", ticket.ID, ticket.Date)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", time.Now().Format("2006-01-02"), "Ticket date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "Employee id (required)")
	cmd.Flags().StringVarP(&customerID, "customer", "c", "", "Customer id")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project id")
	cmd.Flags().StringVar(&location, "location", "", "Work location")
	cmd.Flags().StringArrayVar(&editedHours, "hours", nil, "Edited hours as rate_type=value (repeatable)")
	cmd.Flags().Float64Var(&totalHours, "total", 0, "Total hours when no per-rate split exists")
	cmd.Flags().StringVar(&approver, "approver", "", "Approver")
	cmd.Flags().StringVar(&poAfe, "po-afe", "", "PO/AFE number")
	cmd.Flags().StringVar(&coding, "coding", "", "Coding")
	cmd.Flags().StringVar(&other, "other", "", "Other reference")
	cmd.Flags().StringVar(&serviceLocation, "service-location", "", "Service location")
	return cmd
}

func newTicketsApproveCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <ticket-id>",
		Short: "Approve a submitted ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := billingService.ApproveTicket(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Approved ticket %s as %s\n", ticket.ID, ticket.TicketNumber)
			return nil
		},
	}
}

func newTicketsDiscardCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "discard <ticket-id>",
		Short: "Discard a ticket so reconciliation ignores it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := billingService.DiscardTicket(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Discarded ticket %s\n", args[0])
			return nil
		},
	}
}

func newTicketsListCmd(billingService *service.BillingService) *cobra.Command {
	var statusFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status *models.TicketStatus
			if statusFlag != "" {
				s := models.TicketStatus(statusFlag)
				status = &s
			}
			tickets, err := billingService.ListTickets(cmd.Context(), status)
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}
			if len(tickets) == 0 {
				fmt.Println("No tickets found.")
				return nil
			}
			for _, t := range tickets {
				number := t.TicketNumber
				if number == "" {
					number = "(unnumbered)"
				}
				fmt.Printf("%s  %s  %s  %s\n", t.ID, number, t.Date, t.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "Filter by status (submitted, approved, rejected)")
	return cmd
}
