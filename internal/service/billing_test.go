package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/utils"
)

type fakeRenderer struct {
	rendered []string
	failOn   string
}

func (f *fakeRenderer) RenderGroup(g *billing.Group, b *billing.Breakdown, expenses map[string][]*models.Expense) (string, error) {
	if f.failOn != "" && g.ID == f.failOn {
		return "", fmt.Errorf("render failed")
	}
	f.rendered = append(f.rendered, g.ID)
	return "/tmp/" + g.ID + ".pdf", nil
}

type fakeInvoicer struct {
	created []string
	failOn  string
}

func (f *fakeInvoicer) CreateInvoice(ctx context.Context, g *billing.Group, b billing.Breakdown) (string, error) {
	if f.failOn != "" && g.ID == f.failOn {
		return "", fmt.Errorf("invoice push failed")
	}
	f.created = append(f.created, g.ID)
	return "ext-" + g.ID, nil
}

// failingExpensesDB makes every expense lookup fail while the rest of the
// store behaves normally.
type failingExpensesDB struct {
	database.DB
}

func (f *failingExpensesDB) GetExpenses(ctx context.Context, ticketID string) ([]*models.Expense, error) {
	return nil, fmt.Errorf("expense table offline")
}

func testService(t *testing.T) *BillingService {
	t.Helper()
	db, err := database.NewDB(&config.Config{
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite3",
		TicketPrefix:   "DB_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBillingService(db, nil, &fakeRenderer{}, nil)
}

// seedScenario loads an approver-driven customer with a project carrying a
// default PO/AFE, one employee, two days of field time, and approved
// tickets covering both days.
func seedScenario(t *testing.T, svc *BillingService) (projectID string) {
	t.Helper()
	ctx := context.Background()

	cust, err := svc.CreateCustomer(ctx, database.CreateCustomerParams{
		Name:           "Acme Energy",
		ApproverDriven: true,
	})
	require.NoError(t, err)

	proj, err := svc.CreateProject(ctx, "Acme Energy", database.CreateProjectParams{
		Name:  "Wellsite 7",
		PoAfe: utils.ToPtr("G123"),
	})
	require.NoError(t, err)

	emp, err := svc.CreateEmployee(ctx, "Jane", "Doe", nil)
	require.NoError(t, err)

	for _, day := range []string{"2026-02-10", "2026-02-11"} {
		_, err = svc.LogEntry(ctx, "Acme Energy", "Wellsite 7", database.CreateTimeEntryParams{
			Date:       day,
			Hours:      4,
			RateType:   models.FieldTime,
			EmployeeID: emp.ID,
			Billable:   true,
		})
		require.NoError(t, err)

		ticket, err := svc.SubmitTicket(ctx, database.SubmitTicketParams{
			Date:       day,
			EmployeeID: emp.ID,
			CustomerID: &cust.ID,
			ProjectID:  &proj.ID,
		})
		require.NoError(t, err)
		_, err = svc.ApproveTicket(ctx, ticket.ID)
		require.NoError(t, err)
	}
	return proj.ID
}

// seedSecondCustomer adds a period-regime customer with one shop-time day,
// giving the range a second group alongside seedScenario's.
func seedSecondCustomer(t *testing.T, svc *BillingService) {
	t.Helper()
	ctx := context.Background()

	cust, err := svc.CreateCustomer(ctx, database.CreateCustomerParams{Name: "Bolt Fabrication"})
	require.NoError(t, err)
	proj, err := svc.CreateProject(ctx, "Bolt Fabrication", database.CreateProjectParams{Name: "Shop Retrofit"})
	require.NoError(t, err)
	emp, err := svc.CreateEmployee(ctx, "Sam", "Reed", nil)
	require.NoError(t, err)
	_, err = svc.LogEntry(ctx, "Bolt Fabrication", "Shop Retrofit", database.CreateTimeEntryParams{
		Date: "2026-02-12", Hours: 3, RateType: models.ShopTime, EmployeeID: emp.ID, Billable: true,
	})
	require.NoError(t, err)
	ticket, err := svc.SubmitTicket(ctx, database.SubmitTicketParams{
		Date: "2026-02-12", EmployeeID: emp.ID, CustomerID: &cust.ID, ProjectID: &proj.ID,
		Approver: utils.ToPtr("J. Smith"),
	})
	require.NoError(t, err)
	_, err = svc.ApproveTicket(ctx, ticket.ID)
	require.NoError(t, err)
}

func TestReconcilePipeline(t *testing.T) {
	svc := testService(t)
	projectID := seedScenario(t, svc)
	ctx := context.Background()

	res, err := svc.Reconcile(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)

	require.Len(t, res.Tickets, 2)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Incomplete)

	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, billing.ApproverRegime, g.Regime)
	assert.Equal(t, "G123", g.ApproverCode)
	assert.Equal(t, "2026-B03", g.PeriodKey)
	assert.Equal(t, projectID+"|G123|2026-B03", g.ID)
	assert.Len(t, g.Tickets, 2)
	for _, ticket := range g.Tickets {
		assert.False(t, ticket.Standalone)
		assert.NotEmpty(t, ticket.TicketNumber)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc := testService(t)
	seedScenario(t, svc)
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	second, err := svc.Reconcile(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)

	require.Len(t, second.Groups, len(first.Groups))
	for i := range first.Groups {
		assert.Equal(t, first.Groups[i].ID, second.Groups[i].ID)
		assert.Len(t, second.Groups[i].Tickets, len(first.Groups[i].Tickets))
	}
}

func TestStandaloneTicketSurfacesWarning(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	emp, err := svc.CreateEmployee(ctx, "Sam", "Reed", nil)
	require.NoError(t, err)

	// Approved ticket with no time entries anywhere near it, referencing
	// a customer that no longer exists.
	ticket, err := svc.SubmitTicket(ctx, database.SubmitTicketParams{
		Date:       "2026-02-10",
		EmployeeID: emp.ID,
		CustomerID: utils.ToPtr("ghost-customer"),
		TotalHours: utils.ToPtr(5.0),
		PoAfe:      utils.ToPtr("G777"),
	})
	require.NoError(t, err)
	_, err = svc.ApproveTicket(ctx, ticket.ID)
	require.NoError(t, err)

	res, err := svc.Reconcile(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, res.Tickets, 1)
	assert.True(t, res.Tickets[0].Standalone)
	assert.Equal(t, "Unknown Customer", res.Tickets[0].CustomerName)
	assert.Equal(t, 5.0, res.Tickets[0].Hours[models.ShopTime])
	assert.NotEmpty(t, res.Warnings)
}

func TestGroupsSplitByMarker(t *testing.T) {
	svc := testService(t)
	projectID := seedScenario(t, svc)
	ctx := context.Background()
	groupID := projectID + "|G123|2026-B03"

	res, err := svc.Groups(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, res.Pending, 1)
	assert.Empty(t, res.Invoiced)

	require.NoError(t, svc.MarkInvoiced(ctx, groupID))

	res, err = svc.Groups(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, res.Pending)
	require.Len(t, res.Invoiced, 1)
	assert.Equal(t, groupID, res.Invoiced[0].ID)

	require.NoError(t, svc.UnmarkInvoiced(ctx, groupID))
	res, err = svc.Groups(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, res.Pending, 1)
}

func TestGenerateInvoices(t *testing.T) {
	db, err := database.NewDB(&config.Config{
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite3",
		TicketPrefix:   "DB_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	renderer := &fakeRenderer{}
	invoicer := &fakeInvoicer{}
	svc := NewBillingService(db, nil, renderer, invoicer)
	projectID := seedScenario(t, svc)
	ctx := context.Background()
	groupID := projectID + "|G123|2026-B03"

	outcomes, warnings, err := svc.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, "/tmp/"+groupID+".pdf", outcomes[0].Path)
	assert.Equal(t, "ext-"+groupID, outcomes[0].External)
	// 8h field time at the default $110 rate.
	assert.Equal(t, "880.00", outcomes[0].Total)
	assert.Equal(t, []string{groupID}, renderer.rendered)
	assert.Equal(t, []string{groupID}, invoicer.created)

	// Marked groups are skipped on the next run.
	require.NoError(t, svc.MarkInvoiced(ctx, groupID))
	outcomes, _, err = svc.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestGenerateInvoicesIsolatesRenderFailure(t *testing.T) {
	db, err := database.NewDB(&config.Config{
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite3",
		TicketPrefix:   "DB_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	renderer := &fakeRenderer{}
	svc := NewBillingService(db, nil, renderer, nil)
	projectID := seedScenario(t, svc)
	seedSecondCustomer(t, svc)
	ctx := context.Background()

	renderer.failOn = projectID + "|G123|2026-B03"

	outcomes, _, err := svc.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	var failed, succeeded int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			assert.Contains(t, o.Err.Error(), renderer.failOn)
		} else {
			succeeded++
			assert.NotEmpty(t, o.Path)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, succeeded)
}

func TestGenerateInvoicesIsolatesInvoicerFailure(t *testing.T) {
	db, err := database.NewDB(&config.Config{
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite3",
		TicketPrefix:   "DB_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	invoicer := &fakeInvoicer{}
	svc := NewBillingService(db, nil, &fakeRenderer{}, invoicer)
	projectID := seedScenario(t, svc)
	seedSecondCustomer(t, svc)
	ctx := context.Background()
	failedID := projectID + "|G123|2026-B03"

	invoicer.failOn = failedID

	outcomes, _, err := svc.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	var failed, succeeded int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			assert.Contains(t, o.Err.Error(), failedID)
			// The PDF rendered before the accounting push failed.
			assert.NotEmpty(t, o.Path)
			assert.Empty(t, o.External)
		} else {
			succeeded++
			assert.Equal(t, "ext-"+o.Group.ID, o.External)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, succeeded)
	require.Len(t, invoicer.created, 1)
	assert.NotEqual(t, failedID, invoicer.created[0])
}

func TestGenerateInvoicesBillsHoursOnlyWhenExpensesUnavailable(t *testing.T) {
	db, err := database.NewDB(&config.Config{
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite3",
		TicketPrefix:   "DB_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewBillingService(db, nil, &fakeRenderer{}, nil)
	seedScenario(t, svc)
	ctx := context.Background()

	status := models.TicketApproved
	tickets, err := svc.ListTickets(ctx, &status)
	require.NoError(t, err)
	require.NotEmpty(t, tickets)
	_, err = svc.AddExpense(ctx, tickets[0].ID, decimal.NewFromInt(2), decimal.NewFromInt(40), nil)
	require.NoError(t, err)

	// With the expense reachable the group bills 8h x 110 + 80.
	outcomes, warnings, err := svc.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "960.00", outcomes[0].Total)

	// When expense lookup fails the group still generates, hours only.
	degraded := NewBillingService(&failingExpensesDB{DB: db}, nil, &fakeRenderer{}, nil)
	outcomes, warnings, err = degraded.GenerateInvoices(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	assert.NotEmpty(t, outcomes[0].Path)
	assert.Equal(t, "880.00", outcomes[0].Total)

	require.NotEmpty(t, warnings)
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "billing hours only") {
			found = true
			assert.NotEmpty(t, w.TicketNumber)
		}
	}
	assert.True(t, found, "expected an hours-only warning, got %v", warnings)
}
