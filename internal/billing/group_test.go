package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/utils"
)

func groupTicket(recordID, number, date, customerID, employeeName string, projectID *string, fields BillingFields) *Ticket {
	return &Ticket{
		BaseTicket: BaseTicket{
			Date:         date,
			CustomerID:   customerID,
			EmployeeID:   "E1",
			EmployeeName: employeeName,
			ProjectID:    projectID,
			Hours:        models.Hours{models.ShopTime: 1},
			TotalHours:   1,
			Rates:        models.DefaultRates(),
		},
		TicketNumber: number,
		Record:       &models.ApprovedTicket{ID: recordID, TicketNumber: number, Date: date},
		Fields:       fields,
	}
}

func TestGroupTicketsApproverRegime(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p1 := utils.ToPtr("P1")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26001", "2026-02-10", "C1", "Jane Doe", p1, BillingFields{Approver: "GA", PoAfe: "PO-1"}),
		groupTicket("R2", "DB_26002", "2026-02-11", "C1", "Jane Doe", p1, BillingFields{Approver: "GA", PoAfe: "PO-1"}),
		groupTicket("R3", "DB_26003", "2026-02-24", "C1", "Jane Doe", p1, BillingFields{Approver: "GA", PoAfe: "PO-1"}),
	}

	groups, incomplete := GroupTickets(tickets, regimeOf, modeOf)
	assert.Empty(t, incomplete)
	require.Len(t, groups, 2)

	// Feb 10 and 11 share bi-week 2026-B03; Feb 24 starts 2026-B04.
	assert.Equal(t, "P1|GA|2026-B03", groups[0].ID)
	assert.Len(t, groups[0].Tickets, 2)
	assert.Equal(t, "P1|GA|2026-B04", groups[1].ID)
	assert.Equal(t, ApproverRegime, groups[0].Regime)
	assert.Equal(t, "GA", groups[0].ApproverCode)
}

func TestGroupTicketsApproverCodeFallsBackToPoAfe(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p1 := utils.ToPtr("P1")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26001", "2026-02-10", "C1", "Jane Doe", p1, BillingFields{PoAfe: "G123"}),
	}
	groups, incomplete := GroupTickets(tickets, regimeOf, modeOf)
	assert.Empty(t, incomplete)
	require.Len(t, groups, 1)
	assert.Equal(t, "P1|G123|2026-B03", groups[0].ID)
	assert.Equal(t, "G123", groups[0].ApproverCode)
}

func TestGroupTicketsMissingApproverCodeSurfacedNotDropped(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p1 := utils.ToPtr("P1")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26001", "2026-02-10", "C1", "Jane Doe", p1, BillingFields{Approver: "GA"}),
		groupTicket("R2", "DB_26002", "2026-02-10", "C1", "Jane Doe", p1, BillingFields{}),
	}
	groups, incomplete := GroupTickets(tickets, regimeOf, modeOf)
	require.Len(t, groups, 1)
	require.Len(t, incomplete, 1)
	assert.Equal(t, "DB_26002", incomplete[0].TicketNumber)
}

func TestGroupTicketsPeriodRegime(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p2 := utils.ToPtr("P2")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26001", "2026-03-05", "C2", "Sam Reed", p2, BillingFields{}),
		groupTicket("R2", "DB_26002", "2026-03-20", "C2", "Sam Reed", p2, BillingFields{}),
		groupTicket("R3", "DB_26003", "2026-04-02", "C2", "Sam Reed", p2, BillingFields{}),
	}
	groups, incomplete := GroupTickets(tickets, regimeOf, modeOf)
	assert.Empty(t, incomplete)
	require.Len(t, groups, 2)

	assert.Equal(t, "P2|2026-03", groups[0].ID)
	assert.Equal(t, "March 2026", groups[0].PeriodLabel)
	assert.Len(t, groups[0].Tickets, 2)
	assert.Equal(t, "P2|2026-04", groups[1].ID)
}

func TestGroupTicketsMultiCustomerIdentity(t *testing.T) {
	lk := NewLookups([]*models.Customer{
		{ID: "C2", Name: "Bolt Fabrication"},
		{ID: "C3", Name: "Crane Services"},
	}, nil, nil)
	regimeOf, modeOf := CustomerRegimes(lk)

	tickets := []*Ticket{
		groupTicket("R2", "T2", "2026-03-05", "C2", "Sam Reed", nil, BillingFields{}),
		groupTicket("R1", "T1", "2026-03-06", "C2", "Sam Reed", nil, BillingFields{}),
		groupTicket("R3", "T3", "2026-03-05", "C3", "Sam Reed", nil, BillingFields{}),
	}
	groups, _ := GroupTickets(tickets, regimeOf, modeOf)
	require.Len(t, groups, 2)

	// Same (project, period) but different customers stay separate, and
	// identity derives from sorted constituent record ids.
	assert.Equal(t, "tickets:R1,R2", groups[0].ID)
	assert.Equal(t, "tickets:R3", groups[1].ID)

	// Identity is stable across re-grouping of the same data.
	again, _ := GroupTickets(tickets, regimeOf, modeOf)
	assert.Equal(t, groups[0].ID, again[0].ID)
	assert.Equal(t, groups[1].ID, again[1].ID)
}

func TestGroupTicketSortOrderApprover(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p1 := utils.ToPtr("P1")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26005", "2026-02-10", "C1", "Sam Reed", p1, BillingFields{Approver: "GA", PoAfe: "PO-2"}),
		groupTicket("R2", "DB_26002", "2026-02-10", "C1", "Sam Reed", p1, BillingFields{Approver: "GA", PoAfe: "PO-1"}),
		groupTicket("R3", "DB_26004", "2026-02-10", "C1", "Jane Doe", p1, BillingFields{Approver: "GA", PoAfe: "PO-2"}),
		groupTicket("R4", "DB_26003", "2026-02-10", "C1", "Sam Reed", p1, BillingFields{Approver: "GA", PoAfe: "PO-2"}),
	}
	groups, _ := GroupTickets(tickets, regimeOf, modeOf)
	require.Len(t, groups, 1)

	var nums []string
	for _, tk := range groups[0].Tickets {
		nums = append(nums, tk.TicketNumber)
	}
	// PO/AFE, then employee name, then numeric suffix.
	assert.Equal(t, []string{"DB_26002", "DB_26004", "DB_26003", "DB_26005"}, nums)
}

func TestGroupTicketSortOrderPeriod(t *testing.T) {
	lk := testLookups()
	regimeOf, modeOf := CustomerRegimes(lk)
	p2 := utils.ToPtr("P2")

	tickets := []*Ticket{
		groupTicket("R1", "DB_26009", "2026-03-07", "C2", "Sam Reed", p2, BillingFields{}),
		groupTicket("R2", "DB_26008", "2026-03-05", "C2", "Sam Reed", p2, BillingFields{}),
		groupTicket("R3", "DB_26007", "2026-03-05", "C2", "Jane Doe", p2, BillingFields{}),
	}
	groups, _ := GroupTickets(tickets, regimeOf, modeOf)
	require.Len(t, groups, 1)

	var nums []string
	for _, tk := range groups[0].Tickets {
		nums = append(nums, tk.TicketNumber)
	}
	// Date, then employee name.
	assert.Equal(t, []string{"DB_26007", "DB_26008", "DB_26009"}, nums)
}

func TestCustomerRegimesModeOverride(t *testing.T) {
	lk := NewLookups([]*models.Customer{
		{ID: "C1", ApproverDriven: true},
		{ID: "C2"},
		{ID: "C4", PeriodMode: utils.ToPtr("weekly")},
	}, nil, nil)
	regimeOf, modeOf := CustomerRegimes(lk)

	assert.Equal(t, ApproverRegime, regimeOf("C1"))
	assert.Equal(t, PeriodRegime, regimeOf("C2"))
	assert.Equal(t, PeriodRegime, regimeOf("unknown"))

	assert.Equal(t, BiWeekly, modeOf("C1"))
	assert.Equal(t, Monthly, modeOf("C2"))
	assert.Equal(t, Weekly, modeOf("C4"))
	assert.Equal(t, Monthly, modeOf("unknown"))
}

func TestSplitTicketNumber(t *testing.T) {
	cases := []struct {
		num    string
		prefix string
		suffix int
	}{
		{"DB_25001", "DB_", 25001},
		{"DB_25001A", "DB_25001A", 0},
		{"T42", "T42", 0}, // fewer than three trailing digits
		{"900", "", 900},
		{"", "", 0},
	}
	for _, tc := range cases {
		prefix, suffix := splitTicketNumber(tc.num)
		assert.Equal(t, tc.prefix, prefix, tc.num)
		assert.Equal(t, tc.suffix, suffix, tc.num)
	}
}

func TestScenarioEndToEnd(t *testing.T) {
	// Entries for Jane Doe on 2026-02-10, customer C1 project P1, 4h shop
	// and 2h travel; one approved record with header PO/AFE G123 and no
	// edited hours.
	lk := testLookups()
	c1 := utils.ToPtr("C1")
	p1 := utils.ToPtr("P1")

	shop := testEntry("2026-02-10", "E1", c1, models.ShopTime, 4)
	shop.ProjectID = p1
	travel := testEntry("2026-02-10", "E1", c1, models.TravelTime, 2)
	travel.ProjectID = p1

	base := Assemble([]*models.TimeEntry{shop, travel}, []*models.Employee{lk.Employees["E1"]})
	rec := testRecord("R1", "DB_26001", "2026-02-10", "E1", c1, p1)
	rec.PoAfe = utils.ToPtr("G123")

	tickets, warnings := Reconcile(base, []*models.ApprovedTicket{rec}, lk)
	require.Len(t, tickets, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, 4.0, tickets[0].Hours[models.ShopTime])
	assert.Equal(t, 2.0, tickets[0].Hours[models.TravelTime])
	assert.Equal(t, "::G123::", tickets[0].Fields.BillingKey())

	regimeOf, modeOf := CustomerRegimes(lk)
	groups, incomplete := GroupTickets(tickets, regimeOf, modeOf)
	assert.Empty(t, incomplete)
	require.Len(t, groups, 1)
	assert.Equal(t, "P1|G123|2026-B03", groups[0].ID)
}
