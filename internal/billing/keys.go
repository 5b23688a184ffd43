package billing

import (
	"strings"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

const (
	// keySeparator joins billing key components. Empty components keep
	// their position so "A::PO::" never collides with "A::PO::CC".
	keySeparator = "::"

	// EmptyKey is the grouping-key sentinel for an unset PO/AFE. During
	// matching it acts as a wildcard against any candidate's grouping key.
	EmptyKey = "_"
)

// GroupingKey derives the coarse invoice key from a PO/AFE value alone.
func GroupingKey(poAfe string) string {
	poAfe = strings.TrimSpace(poAfe)
	if poAfe == "" {
		return EmptyKey
	}
	return poAfe
}

// BillingKey derives the fine invoice key from approver, PO/AFE and
// coding/cost-center, each trimmed independently.
func BillingKey(approver, poAfe, coding string) string {
	return strings.TrimSpace(approver) + keySeparator + strings.TrimSpace(poAfe) + keySeparator + strings.TrimSpace(coding)
}

// BillingFields carries the four billing header fields after precedence
// resolution. Empty string means the field is unset at every level.
type BillingFields struct {
	Approver string
	PoAfe    string
	Coding   string
	Other    string
}

func (f BillingFields) GroupingKey() string {
	return GroupingKey(f.PoAfe)
}

func (f BillingFields) BillingKey() string {
	return BillingKey(f.Approver, f.PoAfe, f.Coding)
}

// fieldLevel is one step of a precedence chain: it yields the field's
// value at that level, or nil when the level does not set it.
type fieldLevel func() *string

// resolveField walks a precedence chain and returns the first present
// non-blank value, trimmed. Each of the four billing fields gets its own
// chain, so a ticket can inherit PO/AFE from the project while its coding
// comes from an entry override.
func resolveField(levels ...fieldLevel) string {
	for _, level := range levels {
		if v := level(); v != nil && strings.TrimSpace(*v) != "" {
			return strings.TrimSpace(*v)
		}
	}
	return ""
}

func entryLevel(entries []*models.TimeEntry, pick func(*models.TimeEntry) *string) fieldLevel {
	return func() *string {
		if len(entries) == 0 {
			return nil
		}
		return pick(entries[0])
	}
}

func recordLevel(rec *models.ApprovedTicket, pick func(*models.ApprovedTicket) *string) fieldLevel {
	return func() *string {
		if rec == nil {
			return nil
		}
		return pick(rec)
	}
}

func projectLevel(proj *models.Project, pick func(*models.Project) *string) fieldLevel {
	return func() *string {
		if proj == nil {
			return nil
		}
		return pick(proj)
	}
}

func customerLevel(cust *models.Customer, pick func(*models.Customer) *string) fieldLevel {
	return func() *string {
		if cust == nil {
			return nil
		}
		return pick(cust)
	}
}

// ResolveBillingFields resolves the four billing fields for a ticket.
// Precedence, highest first: the first entry's override, the approved
// record's header override, the project default, the customer default.
// Any argument may be nil; entries may be empty.
func ResolveBillingFields(entries []*models.TimeEntry, rec *models.ApprovedTicket, proj *models.Project, cust *models.Customer) BillingFields {
	return BillingFields{
		Approver: resolveField(
			entryLevel(entries, func(e *models.TimeEntry) *string { return e.Approver }),
			recordLevel(rec, func(r *models.ApprovedTicket) *string { return r.Approver }),
			projectLevel(proj, func(p *models.Project) *string { return p.Approver }),
			customerLevel(cust, func(c *models.Customer) *string { return c.Approver }),
		),
		PoAfe: resolveField(
			entryLevel(entries, func(e *models.TimeEntry) *string { return e.PoAfe }),
			recordLevel(rec, func(r *models.ApprovedTicket) *string { return r.PoAfe }),
			projectLevel(proj, func(p *models.Project) *string { return p.PoAfe }),
			customerLevel(cust, func(c *models.Customer) *string { return c.PoAfe }),
		),
		Coding: resolveField(
			entryLevel(entries, func(e *models.TimeEntry) *string { return e.Coding }),
			recordLevel(rec, func(r *models.ApprovedTicket) *string { return r.Coding }),
			projectLevel(proj, func(p *models.Project) *string { return p.Coding }),
			customerLevel(cust, func(c *models.Customer) *string { return c.Coding }),
		),
		Other: resolveField(
			entryLevel(entries, func(e *models.TimeEntry) *string { return e.Other }),
			recordLevel(rec, func(r *models.ApprovedTicket) *string { return r.Other }),
			projectLevel(proj, func(p *models.Project) *string { return p.Other }),
			customerLevel(cust, func(c *models.Customer) *string { return c.Other }),
		),
	}
}
