package billing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Regime selects how a customer's tickets partition into invoices.
type Regime int

const (
	// ApproverRegime groups by (project, approver code, period); tickets
	// with no approver code anywhere in the precedence chain cannot be
	// invoiced and are surfaced as incomplete.
	ApproverRegime Regime = iota
	// PeriodRegime groups by (project, calendar period).
	PeriodRegime
)

// Group is one invoice group: reconciled tickets sharing a grouping key
// under their customer's regime. Recomputed from current data on every
// pass; ID is the stable join key against persisted invoiced markers.
type Group struct {
	ID           string
	Regime       Regime
	CustomerID   string
	CustomerName string
	ProjectID    string
	ProjectName  string
	ApproverCode string
	PeriodKey    string
	PeriodLabel  string
	Mode         Mode
	Tickets      []*Ticket

	compositeKey string
}

// RegimeFunc reports the invoicing regime for a customer.
type RegimeFunc func(customerID string) Regime

// ModeFunc reports the period mode for a customer.
type ModeFunc func(customerID string) Mode

// CustomerRegimes derives regime and period-mode functions from customer
// attributes. Unknown customers fall into the period regime with the
// monthly default.
func CustomerRegimes(lk Lookups) (RegimeFunc, ModeFunc) {
	regimeOf := func(customerID string) Regime {
		if c := lk.customer(customerID); c != nil && c.ApproverDriven {
			return ApproverRegime
		}
		return PeriodRegime
	}
	modeOf := func(customerID string) Mode {
		c := lk.customer(customerID)
		if c == nil {
			return Monthly
		}
		if c.PeriodMode != nil {
			if m, ok := ParseMode(*c.PeriodMode); ok {
				return m
			}
		}
		return DefaultMode(c.ApproverDriven)
	}
	return regimeOf, modeOf
}

// GroupTickets partitions reconciled tickets into invoice groups. The
// second return value is the approver-regime tickets that lack an
// approver code; they are excluded from every group and must be shown
// with a warning rather than silently dropped.
func GroupTickets(tickets []*Ticket, regimeOf RegimeFunc, modeOf ModeFunc) ([]*Group, []*Ticket) {
	multiCustomer := spansMultipleCustomers(tickets, regimeOf)

	groups := make(map[string]*Group)
	var order []string
	var incomplete []*Ticket

	for _, t := range tickets {
		regime := regimeOf(t.CustomerID)
		mode := modeOf(t.CustomerID)
		periodKey := PeriodKey(t.Date, mode)
		projectID := ""
		if t.ProjectID != nil {
			projectID = *t.ProjectID
		}

		var mapKey, id, composite string
		switch regime {
		case ApproverRegime:
			code := approverCode(t)
			if code == "" {
				incomplete = append(incomplete, t)
				continue
			}
			id = projectID + "|" + code + "|" + periodKey
			mapKey = "approver|" + id
		case PeriodRegime:
			composite = projectID + "|" + periodKey
			if multiCustomer {
				composite = t.CustomerID + "|" + composite
			}
			id = projectID + "|" + periodKey
			mapKey = "period|" + composite
		}

		g, ok := groups[mapKey]
		if !ok {
			g = &Group{
				ID:           id,
				Regime:       regime,
				CustomerID:   t.CustomerID,
				CustomerName: t.CustomerName,
				ProjectID:    projectID,
				ProjectName:  t.ProjectName,
				ApproverCode: approverCode(t),
				PeriodKey:    periodKey,
				PeriodLabel:  PeriodLabel(periodKey, mode),
				Mode:         mode,
				compositeKey: composite,
			}
			groups[mapKey] = g
			order = append(order, mapKey)
		}
		g.Tickets = append(g.Tickets, t)
	}

	out := make([]*Group, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sortGroupTickets(g)
		if g.Regime == PeriodRegime && multiCustomer {
			g.ID = groupIdentityFromTickets(g.Tickets)
		}
		out = append(out, g)
	}
	sortGroups(out)
	return out, incomplete
}

// approverCode is the code an approver-regime ticket invoices under: the
// resolved approver, falling back to the resolved PO/AFE. Empty means the
// ticket cannot be invoiced under this regime without manual intervention.
func approverCode(t *Ticket) string {
	if t.Fields.Approver != "" {
		return t.Fields.Approver
	}
	return t.Fields.PoAfe
}

func spansMultipleCustomers(tickets []*Ticket, regimeOf RegimeFunc) bool {
	seen := make(map[string]struct{})
	for _, t := range tickets {
		if regimeOf(t.CustomerID) != PeriodRegime {
			continue
		}
		seen[t.CustomerID] = struct{}{}
		if len(seen) > 1 {
			return true
		}
	}
	return false
}

// groupIdentityFromTickets derives a stable identity from the sorted
// record ids of the constituent tickets, for period-regime groups in a
// multi-customer view where (project, period) alone is ambiguous.
func groupIdentityFromTickets(tickets []*Ticket) string {
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.Record.ID)
	}
	sort.Strings(ids)
	return "tickets:" + strings.Join(ids, ",")
}

func sortGroupTickets(g *Group) {
	switch g.Regime {
	case ApproverRegime:
		sort.SliceStable(g.Tickets, func(i, j int) bool {
			a, b := g.Tickets[i], g.Tickets[j]
			if a.Fields.PoAfe != b.Fields.PoAfe {
				return a.Fields.PoAfe < b.Fields.PoAfe
			}
			if a.EmployeeName != b.EmployeeName {
				return a.EmployeeName < b.EmployeeName
			}
			return ticketNumberSuffix(a.TicketNumber) < ticketNumberSuffix(b.TicketNumber)
		})
	case PeriodRegime:
		sort.SliceStable(g.Tickets, func(i, j int) bool {
			a, b := g.Tickets[i], g.Tickets[j]
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			if a.EmployeeName != b.EmployeeName {
				return a.EmployeeName < b.EmployeeName
			}
			return ticketNumberSuffix(a.TicketNumber) < ticketNumberSuffix(b.TicketNumber)
		})
	}
}

// sortGroups orders approver-regime groups by (approver, period, project)
// ahead of period-regime groups ordered by composite key.
func sortGroups(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Regime != b.Regime {
			return a.Regime < b.Regime
		}
		if a.Regime == ApproverRegime {
			if a.ApproverCode != b.ApproverCode {
				return a.ApproverCode < b.ApproverCode
			}
			if a.PeriodKey != b.PeriodKey {
				return a.PeriodKey < b.PeriodKey
			}
			return a.ProjectID < b.ProjectID
		}
		return a.compositeKey < b.compositeKey
	})
}

var ticketNumberPattern = regexp.MustCompile(`(\d{3,})$`)

// splitTicketNumber separates a ticket number into its prefix and the
// trailing numeric run of at least three digits. Numbers without such a
// run keep their whole value as prefix with suffix 0.
func splitTicketNumber(num string) (prefix string, suffix int) {
	m := ticketNumberPattern.FindString(num)
	if m == "" {
		return num, 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return num, 0
	}
	return strings.TrimSuffix(num, m), n
}

func ticketNumberSuffix(num string) int {
	_, n := splitTicketNumber(num)
	return n
}
