package render

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

func TestRenderGroupWritesPDF(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir)

	ticket := &billing.Ticket{
		BaseTicket: billing.BaseTicket{
			Date:             "2026-02-10",
			CustomerName:     "Acme Energy",
			ProjectName:      "Wellsite 7",
			EmployeeName:     "Jane Doe",
			EmployeeInitials: "JD",
			Hours:            models.Hours{models.FieldTime: 4},
			Rates:            models.DefaultRates(),
		},
		TicketNumber: "DB_26001",
		Fields:       billing.BillingFields{PoAfe: "G123"},
	}
	g := &billing.Group{
		ID:           "P1|G123|2026-B03",
		Regime:       billing.ApproverRegime,
		CustomerName: "Acme Energy",
		ProjectName:  "Wellsite 7",
		ApproverCode: "G123",
		PeriodKey:    "2026-B03",
		PeriodLabel:  "02-02-2026 to 15-02-2026",
		Tickets:      []*billing.Ticket{ticket},
	}
	b := billing.BuildBreakdown(g, nil)

	path, err := r.RenderGroup(g, &b, nil)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.NotContains(t, path, "|")
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "invoice_Acme_Energy_2026-B03.pdf", sanitizeFileName("invoice_Acme Energy_2026-B03.pdf"))
	assert.Equal(t, "P1_G123.pdf", sanitizeFileName("P1|G123.pdf"))
	assert.Equal(t, "plain.pdf", sanitizeFileName("plain.pdf"))
}

func TestTicketTotalMatchesBreakdown(t *testing.T) {
	ticket := &billing.Ticket{
		BaseTicket: billing.BaseTicket{
			Hours: models.Hours{models.ShopTime: 2.5},
			Rates: models.RateTable{models.ShopTime: decimal.RequireFromString("95")},
		},
	}
	assert.True(t, billing.TicketAmount(ticket, nil).Equal(decimal.RequireFromString("237.5")))
}
