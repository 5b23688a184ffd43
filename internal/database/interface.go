package database

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

type CreateCustomerParams struct {
	Name           string
	ApproverDriven bool
	PeriodMode     *string
	Approver       *string
	PoAfe          *string
	Coding         *string
	Other          *string
}

type CreateProjectParams struct {
	CustomerID      string
	Name            string
	Approver        *string
	PoAfe           *string
	Coding          *string
	Other           *string
	ServiceLocation *string
}

type CreateTimeEntryParams struct {
	Date        string
	Hours       float64
	RateType    models.RateType
	Description *string
	EmployeeID  string
	ProjectID   *string
	PoAfe       *string
	Approver    *string
	Coding      *string
	Other       *string
	Billable    bool
}

type SubmitTicketParams struct {
	Date            string
	EmployeeID      string
	CustomerID      *string
	ProjectID       *string
	Location        *string
	EditedHours     models.Hours
	TotalHours      *float64
	Approver        *string
	PoAfe           *string
	Coding          *string
	Other           *string
	ServiceLocation *string
}

type DB interface {
	Close() error

	CreateCustomer(ctx context.Context, params CreateCustomerParams) (*models.Customer, error)
	GetCustomerByName(ctx context.Context, name string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)

	CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error)
	GetProjectByName(ctx context.Context, customerID, name string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)

	CreateEmployee(ctx context.Context, firstName, lastName string, rates models.RateTable) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)

	CreateTimeEntry(ctx context.Context, params CreateTimeEntryParams) (*models.TimeEntry, error)
	GetBillableEntries(ctx context.Context, fromDate, toDate string) ([]*models.TimeEntry, error)

	SubmitTicket(ctx context.Context, params SubmitTicketParams) (*models.ApprovedTicket, error)
	ApproveTicket(ctx context.Context, id string) (*models.ApprovedTicket, error)
	DiscardTicket(ctx context.Context, id string) error
	GetApprovedTickets(ctx context.Context, fromDate, toDate string) ([]*models.ApprovedTicket, error)
	ListTickets(ctx context.Context, status *models.TicketStatus) ([]*models.ApprovedTicket, error)

	CreateExpense(ctx context.Context, ticketID string, quantity, rate decimal.Decimal, reference *string) (*models.Expense, error)
	GetExpenses(ctx context.Context, ticketID string) ([]*models.Expense, error)

	Markers() MarkerStore
}
