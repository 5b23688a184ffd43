package service

import (
	"context"
	"fmt"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/accounting"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/render"
)

type BillingService struct {
	db       database.DB
	markers  database.MarkerStore
	renderer render.TicketRenderer
	invoicer accounting.Invoicer
}

func NewBillingService(db database.DB, markers database.MarkerStore, renderer render.TicketRenderer, invoicer accounting.Invoicer) *BillingService {
	if markers == nil {
		markers = db.Markers()
	}
	return &BillingService{db: db, markers: markers, renderer: renderer, invoicer: invoicer}
}

// ReconcileResult is one full reconciliation pass over a date range.
type ReconcileResult struct {
	Tickets    []*billing.Ticket
	Groups     []*billing.Group
	Incomplete []*billing.Ticket
	Warnings   []billing.Warning
	Lookups    billing.Lookups
}

// Reconcile runs the pipeline: billable entries are assembled into base
// tickets, matched against approved records, and grouped for invoicing.
// Claim state lives only inside this pass, so re-running the same range
// always produces the same result.
func (s *BillingService) Reconcile(ctx context.Context, fromDate, toDate string) (*ReconcileResult, error) {
	entries, err := s.db.GetBillableEntries(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	records, err := s.db.GetApprovedTickets(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved tickets: %w", err)
	}
	customers, err := s.db.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	projects, err := s.db.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	employees, err := s.db.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	lk := billing.NewLookups(customers, projects, employees)
	base := billing.Assemble(entries, employees)
	tickets, warnings := billing.Reconcile(base, records, lk)

	regimeOf, modeOf := billing.CustomerRegimes(lk)
	groups, incomplete := billing.GroupTickets(tickets, regimeOf, modeOf)

	return &ReconcileResult{
		Tickets:    tickets,
		Groups:     groups,
		Incomplete: incomplete,
		Warnings:   warnings,
		Lookups:    lk,
	}, nil
}

// GroupsResult splits a pass's groups by invoiced-marker state.
type GroupsResult struct {
	Pending    []*billing.Group
	Invoiced   []*billing.Group
	Incomplete []*billing.Ticket
	Warnings   []billing.Warning
}

func (s *BillingService) Groups(ctx context.Context, fromDate, toDate string) (*GroupsResult, error) {
	res, err := s.Reconcile(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := &GroupsResult{Incomplete: res.Incomplete, Warnings: res.Warnings}
	for _, g := range res.Groups {
		marked, err := s.markers.IsMarked(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check invoiced state for group %s: %w", g.ID, err)
		}
		if marked {
			out.Invoiced = append(out.Invoiced, g)
		} else {
			out.Pending = append(out.Pending, g)
		}
	}
	return out, nil
}

func (s *BillingService) MarkInvoiced(ctx context.Context, groupID string) error {
	return s.markers.Mark(ctx, groupID)
}

func (s *BillingService) UnmarkInvoiced(ctx context.Context, groupID string) error {
	return s.markers.Unmark(ctx, groupID)
}

// InvoiceOutcome reports what happened to one group during generation.
type InvoiceOutcome struct {
	Group    *billing.Group
	Total    string
	Path     string
	External string
	Err      error
}

// GenerateInvoices renders a PDF for every pending group in the range and
// pushes each to the accounting integration. A failing group is reported
// and skipped; the rest still generate. Expense lookup failures degrade to
// an empty expense list with a warning rather than aborting the group.
func (s *BillingService) GenerateInvoices(ctx context.Context, fromDate, toDate string) ([]InvoiceOutcome, []billing.Warning, error) {
	groups, err := s.Groups(ctx, fromDate, toDate)
	if err != nil {
		return nil, nil, err
	}
	warnings := groups.Warnings

	outcomes := make([]InvoiceOutcome, 0, len(groups.Pending))
	for _, g := range groups.Pending {
		expenses, expWarnings := s.groupExpenses(ctx, g)
		warnings = append(warnings, expWarnings...)

		breakdown := billing.BuildBreakdown(g, expenses)
		outcome := InvoiceOutcome{Group: g, Total: breakdown.Total.StringFixed(2)}

		path, err := s.renderer.RenderGroup(g, &breakdown, expenses)
		if err != nil {
			outcome.Err = fmt.Errorf("group %s: %w", g.ID, err)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Path = path

		if s.invoicer != nil {
			external, err := s.invoicer.CreateInvoice(ctx, g, breakdown)
			if err != nil {
				outcome.Err = fmt.Errorf("group %s: %w", g.ID, err)
				outcomes = append(outcomes, outcome)
				continue
			}
			outcome.External = external
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, warnings, nil
}

// groupExpenses loads expenses for every record-backed ticket in a group.
// A ticket whose expenses cannot be loaded bills hours only.
func (s *BillingService) groupExpenses(ctx context.Context, g *billing.Group) (map[string][]*models.Expense, []billing.Warning) {
	expenses := make(map[string][]*models.Expense)
	var warnings []billing.Warning
	for _, t := range g.Tickets {
		if t.Record == nil {
			continue
		}
		exp, err := s.db.GetExpenses(ctx, t.Record.ID)
		if err != nil {
			warnings = append(warnings, billing.Warning{
				TicketNumber: t.TicketNumber,
				Message:      fmt.Sprintf("expenses unavailable, billing hours only: %v", err),
			})
			continue
		}
		expenses[t.Record.ID] = exp
	}
	return expenses, warnings
}

// Breakdown computes the line items for a single group, fetching its
// expenses the same way invoice generation does.
func (s *BillingService) Breakdown(ctx context.Context, g *billing.Group) (billing.Breakdown, []billing.Warning) {
	expenses, warnings := s.groupExpenses(ctx, g)
	return billing.BuildBreakdown(g, expenses), warnings
}
