package billing

import (
	"fmt"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/utils"
)

// Ticket is a reconciled service ticket: a BaseTicket claimed by at most
// one approved record, or a standalone ticket synthesized from a record
// that matched nothing. Fields holds the billing fields after precedence
// resolution, computed once here and read by grouping and breakdown.
type Ticket struct {
	BaseTicket
	TicketNumber string
	Record       *models.ApprovedTicket
	Standalone   bool
	Fields       BillingFields
}

// Warning is a non-fatal data-quality condition surfaced to the caller,
// such as a record whose customer id no longer resolves.
type Warning struct {
	TicketNumber string
	Message      string
}

func (w Warning) String() string {
	if w.TicketNumber == "" {
		return w.Message
	}
	return fmt.Sprintf("ticket %s: %s", w.TicketNumber, w.Message)
}

// Reconcile matches each approved record, in input order, to at most one
// unclaimed base ticket with the same date, employee, customer and
// project whose billing or grouping key is compatible. A claimed base
// ticket is never reconsidered within a pass, which is what prevents a
// day's hours being counted under two records. Records that match nothing
// synthesize a standalone ticket from their own snapshot.
//
// The claimed set lives and dies with this call; callers re-run the whole
// pass whenever underlying data changes.
func Reconcile(base []*BaseTicket, records []*models.ApprovedTicket, lk Lookups) ([]*Ticket, []Warning) {
	claimed := make(map[*BaseTicket]struct{})
	tickets := make([]*Ticket, 0, len(records))
	var warnings []Warning

	for _, rec := range records {
		proj := lk.project(rec.ProjectID)
		recCustomerID := UnassignedCustomer
		if rec.CustomerID != nil && *rec.CustomerID != "" {
			recCustomerID = *rec.CustomerID
		}
		cust := lk.customer(recCustomerID)

		recFields := ResolveBillingFields(nil, rec, proj, cust)
		recGroup := recFields.GroupingKey()
		recBill := recFields.BillingKey()

		var match *BaseTicket
		for _, bt := range base {
			if _, taken := claimed[bt]; taken {
				continue
			}
			if bt.Date != rec.Date || bt.EmployeeID != rec.EmployeeID || bt.CustomerID != recCustomerID {
				continue
			}
			if !sameProject(bt.ProjectID, rec.ProjectID) {
				continue
			}
			// Candidate keys resolve with the record's header in the
			// chain: an entry-level value can conflict with the record,
			// an absent one inherits from it.
			candFields := ResolveBillingFields(bt.Entries, rec, lk.project(bt.ProjectID), lk.customer(bt.CustomerID))
			// An unset PO/AFE on the record matches any candidate. This
			// over-matches when several candidates differ only in absent
			// keys; first unclaimed candidate in list order wins.
			if recBill == candFields.BillingKey() || recGroup == candFields.GroupingKey() || recGroup == EmptyKey {
				match = bt
				break
			}
		}

		if match != nil {
			claimed[match] = struct{}{}
			tickets = append(tickets, mergeTicket(match, rec, lk))
			continue
		}

		t, ws := standaloneTicket(rec, recCustomerID, lk)
		tickets = append(tickets, t)
		warnings = append(warnings, ws...)
	}

	return tickets, warnings
}

func sameProject(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// mergeTicket builds the reconciled ticket for a claimed base ticket.
// Billing fields resolve against the original entries before any
// edited-hours override swaps in synthetic display entries.
func mergeTicket(bt *BaseTicket, rec *models.ApprovedTicket, lk Lookups) *Ticket {
	t := &Ticket{
		BaseTicket:   *bt,
		TicketNumber: rec.TicketNumber,
		Record:       rec,
		Fields:       ResolveBillingFields(bt.Entries, rec, lk.project(bt.ProjectID), lk.customer(bt.CustomerID)),
	}

	if len(rec.EditedHours) > 0 {
		t.Hours = rec.EditedHours.Clone()
		t.TotalHours = t.Hours.Total()
		t.Entries = DisplayEntries(t.Hours, rec.Date, rec.EmployeeID)
	}

	return t
}

// standaloneTicket synthesizes a ticket purely from an approved record's
// snapshot. Unresolvable references degrade to fallback labels and default
// rates rather than failing the pass.
func standaloneTicket(rec *models.ApprovedTicket, customerID string, lk Lookups) (*Ticket, []Warning) {
	var warnings []Warning

	t := &Ticket{
		BaseTicket: BaseTicket{
			Date:             rec.Date,
			CustomerID:       customerID,
			EmployeeID:       rec.EmployeeID,
			Hours:            make(models.Hours),
			ProjectID:        rec.ProjectID,
			CustomerName:     "Unassigned",
			EmployeeName:     "Unknown",
			EmployeeInitials: "XX",
			Rates:            models.DefaultRates(),
		},
		TicketNumber: rec.TicketNumber,
		Record:       rec,
		Standalone:   true,
	}

	cust := lk.customer(customerID)
	proj := lk.project(rec.ProjectID)
	t.Fields = ResolveBillingFields(nil, rec, proj, cust)

	if cust != nil {
		t.CustomerName = cust.Name
	} else if customerID != UnassignedCustomer {
		t.CustomerName = "Unknown Customer"
		warnings = append(warnings, Warning{
			TicketNumber: rec.TicketNumber,
			Message:      fmt.Sprintf("customer %s not found", customerID),
		})
	}

	if proj != nil {
		t.ProjectName = proj.Name
	} else if rec.ProjectID != nil {
		t.ProjectName = "Unknown"
		warnings = append(warnings, Warning{
			TicketNumber: rec.TicketNumber,
			Message:      fmt.Sprintf("project %s not found", *rec.ProjectID),
		})
	}

	if emp := lk.Employees[rec.EmployeeID]; emp != nil {
		t.EmployeeName = emp.DisplayName()
		t.EmployeeInitials = emp.Initials()
		if emp.Rates != nil {
			t.Rates = emp.Rates
		}
	} else {
		warnings = append(warnings, Warning{
			TicketNumber: rec.TicketNumber,
			Message:      fmt.Sprintf("employee %s not found", rec.EmployeeID),
		})
	}

	if edited := rec.EditedHours.Clone(); edited.Total() > 0 {
		t.Hours = edited
	} else if rec.TotalHours != nil && *rec.TotalHours > 0 {
		t.Hours = models.Hours{models.ShopTime: *rec.TotalHours}
	}
	t.TotalHours = t.Hours.Total()

	return t, warnings
}

// DisplayEntries derives placeholder description entries from an
// hours-by-rate-type aggregate, for tickets whose real entries were
// replaced by an edited-hours override or never existed.
func DisplayEntries(hours models.Hours, date, employeeID string) []*models.TimeEntry {
	var out []*models.TimeEntry
	for _, rt := range models.RateTypes() {
		h := hours[rt]
		if h <= 0 {
			continue
		}
		out = append(out, &models.TimeEntry{
			Date:        date,
			Hours:       h,
			RateType:    rt,
			Description: utils.ToPtr(rt.Label()),
			EmployeeID:  employeeID,
			Billable:    true,
		})
	}
	return out
}
