package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func newProjectsCmd(billingService *service.BillingService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
		Long:  "Commands for managing customer projects and their billing defaults.",
	}

	cmd.AddCommand(newProjectsCreateCmd(billingService))
	cmd.AddCommand(newProjectsListCmd(billingService))

	return cmd
}

func newProjectsCreateCmd(billingService *service.BillingService) *cobra.Command {
	var customer, approver, poAfe, coding, other, serviceLocation string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if customer == "" {
				return fmt.Errorf("customer name is required")
			}
			project, err := billingService.CreateProject(cmd.Context(), customer, database.CreateProjectParams{
				Name:            args[0],
				Approver:        optional(approver),
				PoAfe:           optional(poAfe),
				Coding:          optional(coding),
				Other:           optional(other),
				ServiceLocation: optional(serviceLocation),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (ID: %s)\n", project.Name, project.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&customer, "customer", "c", "", "Customer the project belongs to (required)")
	cmd.Flags().StringVar(&approver, "approver", "", "Default approver")
	cmd.Flags().StringVar(&poAfe, "po-afe", "", "Default PO/AFE number")
	cmd.Flags().StringVar(&coding, "coding", "", "Default coding")
	cmd.Flags().StringVar(&other, "other", "", "Default other reference")
	cmd.Flags().StringVar(&serviceLocation, "location", "", "Service location")
	return cmd
}

func newProjectsListCmd(billingService *service.BillingService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := billingService.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			for _, p := range projects {
				fmt.Printf("%s - %s (customer %s)\n", p.ID, p.Name, p.CustomerID)
			}
			return nil
		},
	}
}
