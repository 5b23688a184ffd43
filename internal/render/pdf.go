package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/utils"
)

// TicketRenderer is the rendering boundary: given a group and its
// breakdown, produce the merged artifact and return where it landed.
type TicketRenderer interface {
	RenderGroup(g *billing.Group, b *billing.Breakdown, expensesByTicket map[string][]*models.Expense) (string, error)
}

// PDFRenderer writes one merged PDF per invoice group: a page per service
// ticket in the group's display order, then a summary page with the
// line-item breakdown.
type PDFRenderer struct {
	dir string
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{dir: dir}
}

// RenderGroup writes the group's PDF and returns the file path.
func (r *PDFRenderer) RenderGroup(g *billing.Group, b *billing.Breakdown, expensesByTicket map[string][]*models.Expense) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")

	for _, t := range g.Tickets {
		var expenses []*models.Expense
		if t.Record != nil {
			expenses = expensesByTicket[t.Record.ID]
		}
		renderTicketPage(pdf, t, expenses)
	}
	renderSummaryPage(pdf, g, b)

	fileName := sanitizeFileName(fmt.Sprintf("invoice_%s_%s_%s.pdf", g.CustomerName, g.PeriodKey, groupFileTag(g)))
	path := filepath.Join(r.dir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice pdf: %w", err)
	}
	return path, nil
}

func groupFileTag(g *billing.Group) string {
	if g.Regime == billing.ApproverRegime && g.ApproverCode != "" {
		return g.ApproverCode
	}
	return "period"
}

func renderTicketPage(pdf *gofpdf.Fpdf, t *billing.Ticket, expenses []*models.Expense) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	title := "Service Ticket"
	if t.TicketNumber != "" {
		title = fmt.Sprintf("Service Ticket %s", t.TicketNumber)
	}
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(95, 6, fmt.Sprintf("Date: %s", t.Date))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Customer: %s", t.CustomerName))
	pdf.Ln(6)
	if t.ProjectName != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Project: %s", t.ProjectName))
		pdf.Ln(6)
	}
	pdf.Cell(95, 6, fmt.Sprintf("Employee: %s (%s)", t.EmployeeName, t.EmployeeInitials))
	pdf.Ln(6)

	for _, field := range []struct {
		label string
		value string
	}{
		{"Approver", t.Fields.Approver},
		{"PO/AFE", t.Fields.PoAfe},
		{"Coding", t.Fields.Coding},
		{"Other", t.Fields.Other},
	} {
		if field.value == "" {
			continue
		}
		pdf.Cell(95, 6, fmt.Sprintf("%s: %s", field.label, field.value))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Hours table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(70, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, rt := range models.RateTypes() {
		hrs, ok := t.Hours[rt]
		if !ok || hrs == 0 {
			continue
		}
		rate := t.Rates.Rate(rt)
		amount := decimal.NewFromFloat(hrs).Mul(rate)
		pdf.CellFormat(70, 6, rt.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", hrs), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "$"+rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "$"+amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	if len(expenses) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(70, 8, "Expense", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "Quantity", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "Rate", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "Amount", "1", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 8)
		for _, e := range expenses {
			pdf.CellFormat(70, 6, utils.FromPtr(e.Reference), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, e.Quantity.String(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, "$"+e.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, "$"+e.Amount().StringFixed(2), "1", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	total := billing.TicketAmount(t, expenses)
	pdf.Cell(130, 8, "Ticket Total:")
	pdf.CellFormat(30, 8, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")
}

func renderSummaryPage(pdf *gofpdf.Fpdf, g *billing.Group, b *billing.Breakdown) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Invoice Summary - %s", g.CustomerName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if g.ProjectName != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Project: %s", g.ProjectName))
		pdf.Ln(6)
	}
	if g.ApproverCode != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Approver: %s", g.ApproverCode))
		pdf.Ln(6)
	}
	pdf.Cell(95, 6, fmt.Sprintf("Period: %s", g.PeriodLabel))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 8, "PO/AFE", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Tickets", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Subtotal", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, li := range b.LineItems {
		pdf.CellFormat(40, 6, li.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, li.TicketNumbers, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, "$"+li.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(135, 8, "Total:")
	pdf.CellFormat(25, 8, "$"+b.Total.StringFixed(2), "", 1, "R", false, 0, "")
}

func sanitizeFileName(fileName string) string {
	var sb strings.Builder
	for _, r := range fileName {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.':
			sb.WriteRune(r)
		case r == ' ' || r == '|':
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
