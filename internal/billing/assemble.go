package billing

import (
	"sort"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

// UnassignedCustomer is the customer sentinel for entries that carry no
// project or customer. An approved record with a null customer id matches
// base tickets under this sentinel.
const UnassignedCustomer = "unassigned"

// BaseTicket is one candidate service ticket: every billable entry for a
// (date, customer, employee) tuple, aggregated by rate type. Built fresh
// on each reconciliation pass and never mutated afterwards; an
// edited-hours override produces a new aggregate on the reconciled ticket.
type BaseTicket struct {
	Date             string
	CustomerID       string
	EmployeeID       string
	Hours            models.Hours
	TotalHours       float64
	Entries          []*models.TimeEntry
	CustomerName     string
	ProjectID        *string
	ProjectName      string
	EmployeeName     string
	EmployeeInitials string
	Rates            models.RateTable
}

// Lookups joins reference data by id for the reconciliation pass.
type Lookups struct {
	Customers map[string]*models.Customer
	Projects  map[string]*models.Project
	Employees map[string]*models.Employee
}

func NewLookups(customers []*models.Customer, projects []*models.Project, employees []*models.Employee) Lookups {
	lk := Lookups{
		Customers: make(map[string]*models.Customer, len(customers)),
		Projects:  make(map[string]*models.Project, len(projects)),
		Employees: make(map[string]*models.Employee, len(employees)),
	}
	for _, c := range customers {
		lk.Customers[c.ID] = c
	}
	for _, p := range projects {
		lk.Projects[p.ID] = p
	}
	for _, e := range employees {
		lk.Employees[e.ID] = e
	}
	return lk
}

func (lk Lookups) project(id *string) *models.Project {
	if id == nil {
		return nil
	}
	return lk.Projects[*id]
}

func (lk Lookups) customer(id string) *models.Customer {
	return lk.Customers[id]
}

// Assemble groups billable time entries into candidate tickets keyed by
// (date, customer, employee). Unknown rate types default into ShopTime.
// Output is sorted date-descending for display; later stages impose their
// own deterministic orders.
func Assemble(entries []*models.TimeEntry, employees []*models.Employee) []*BaseTicket {
	byID := make(map[string]*models.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	tickets := make(map[string]*BaseTicket)
	var order []string

	for _, entry := range entries {
		customerID := UnassignedCustomer
		if entry.CustomerID != nil && *entry.CustomerID != "" {
			customerID = *entry.CustomerID
		}

		key := entry.Date + "|" + customerID + "|" + entry.EmployeeID
		bt, ok := tickets[key]
		if !ok {
			bt = &BaseTicket{
				Date:             entry.Date,
				CustomerID:       customerID,
				EmployeeID:       entry.EmployeeID,
				Hours:            make(models.Hours),
				CustomerName:     entry.CustomerName,
				ProjectID:        entry.ProjectID,
				ProjectName:      entry.ProjectName,
				EmployeeName:     "Unknown",
				EmployeeInitials: "XX",
				Rates:            models.DefaultRates(),
			}
			if emp := byID[entry.EmployeeID]; emp != nil {
				bt.EmployeeName = emp.DisplayName()
				bt.EmployeeInitials = emp.Initials()
				if emp.Rates != nil {
					bt.Rates = emp.Rates
				}
			}
			tickets[key] = bt
			order = append(order, key)
		}

		rt := entry.RateType
		if !rt.Valid() {
			rt = models.ShopTime
		}
		bt.Hours[rt] += entry.Hours
		bt.Entries = append(bt.Entries, entry)
	}

	out := make([]*BaseTicket, 0, len(order))
	for _, key := range order {
		bt := tickets[key]
		bt.TotalHours = bt.Hours.Total()
		out = append(out, bt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].CustomerID != out[j].CustomerID {
			return out[i].CustomerID < out[j].CustomerID
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}
