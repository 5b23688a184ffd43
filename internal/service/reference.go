package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

func (s *BillingService) CreateCustomer(ctx context.Context, params database.CreateCustomerParams) (*models.Customer, error) {
	customer, err := s.db.CreateCustomer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *BillingService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.db.ListCustomers(ctx)
}

func (s *BillingService) CreateProject(ctx context.Context, customerName string, params database.CreateProjectParams) (*models.Project, error) {
	customer, err := s.db.GetCustomerByName(ctx, customerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer '%s' does not exist", customerName)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	params.CustomerID = customer.ID
	project, err := s.db.CreateProject(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *BillingService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.db.ListProjects(ctx)
}

func (s *BillingService) CreateEmployee(ctx context.Context, firstName, lastName string, rates models.RateTable) (*models.Employee, error) {
	employee, err := s.db.CreateEmployee(ctx, firstName, lastName, rates)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *BillingService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.db.ListEmployees(ctx)
}

// LogEntry records one dated time entry for an employee, optionally tied
// to a customer's project by name.
func (s *BillingService) LogEntry(ctx context.Context, customerName, projectName string, params database.CreateTimeEntryParams) (*models.TimeEntry, error) {
	if !params.RateType.Valid() {
		return nil, fmt.Errorf("unknown rate type '%s'", params.RateType)
	}
	if customerName != "" {
		customer, err := s.db.GetCustomerByName(ctx, customerName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("customer '%s' does not exist", customerName)
			}
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
		project, err := s.db.GetProjectByName(ctx, customer.ID, projectName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("project '%s' does not exist for customer '%s'", projectName, customerName)
			}
			return nil, fmt.Errorf("failed to get project: %w", err)
		}
		params.ProjectID = &project.ID
	}
	entry, err := s.db.CreateTimeEntry(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	return entry, nil
}

func (s *BillingService) ListEntries(ctx context.Context, fromDate, toDate string) ([]*models.TimeEntry, error) {
	return s.db.GetBillableEntries(ctx, fromDate, toDate)
}

func (s *BillingService) SubmitTicket(ctx context.Context, params database.SubmitTicketParams) (*models.ApprovedTicket, error) {
	ticket, err := s.db.SubmitTicket(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to submit ticket: %w", err)
	}
	return ticket, nil
}

func (s *BillingService) ApproveTicket(ctx context.Context, id string) (*models.ApprovedTicket, error) {
	ticket, err := s.db.ApproveTicket(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket '%s' does not exist", id)
		}
		return nil, fmt.Errorf("failed to approve ticket: %w", err)
	}
	return ticket, nil
}

func (s *BillingService) DiscardTicket(ctx context.Context, id string) error {
	if err := s.db.DiscardTicket(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("ticket '%s' does not exist", id)
		}
		return fmt.Errorf("failed to discard ticket: %w", err)
	}
	return nil
}

func (s *BillingService) ListTickets(ctx context.Context, status *models.TicketStatus) ([]*models.ApprovedTicket, error) {
	return s.db.ListTickets(ctx, status)
}

func (s *BillingService) AddExpense(ctx context.Context, ticketID string, quantity, rate decimal.Decimal, reference *string) (*models.Expense, error) {
	expense, err := s.db.CreateExpense(ctx, ticketID, quantity, rate, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}
