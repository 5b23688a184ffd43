package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

// NoPoAfeLabel labels the bucket of approver-regime tickets whose PO/AFE
// is blank everywhere in the precedence chain.
const NoPoAfeLabel = "No PO/AFE"

// LineItem is one breakdown line: a compressed ticket-number list and its
// subtotal, keyed by PO/AFE under the approver regime or by the period
// label otherwise.
type LineItem struct {
	PoAfe         string
	Label         string
	TicketNumbers string
	Subtotal      decimal.Decimal
}

type Breakdown struct {
	LineItems []LineItem
	Total     decimal.Decimal
}

// TicketAmount is the dollar amount for one ticket: hours times rate per
// rate type plus quantity times rate per expense, rounded half-up to the
// cent once per ticket. Rounding happens here and nowhere else, so any
// path that sums ticket amounts lands on the same cents.
func TicketAmount(t *Ticket, expenses []*models.Expense) decimal.Decimal {
	amount := decimal.Zero
	for _, rt := range models.RateTypes() {
		h := t.Hours[rt]
		if h == 0 {
			continue
		}
		amount = amount.Add(decimal.NewFromFloat(h).Mul(t.Rates.Rate(rt)))
	}
	for _, e := range expenses {
		amount = amount.Add(e.Amount())
	}
	return amount.Round(2)
}

// BuildBreakdown produces the line items and grand total for a group.
// Approver-regime groups get one line per PO/AFE bucket with the blank
// bucket sorted last; period-regime groups get a single line labeled by
// the period. Subtotals and totals are exact sums of per-ticket amounts,
// so the grand total always equals the independently summed tickets.
func BuildBreakdown(g *Group, expensesByTicket map[string][]*models.Expense) Breakdown {
	expensesOf := func(t *Ticket) []*models.Expense {
		if t.Record == nil {
			return nil
		}
		return expensesByTicket[t.Record.ID]
	}

	if g.Regime == PeriodRegime {
		sum := decimal.Zero
		nums := make([]string, 0, len(g.Tickets))
		for _, t := range g.Tickets {
			sum = sum.Add(TicketAmount(t, expensesOf(t)))
			nums = append(nums, t.TicketNumber)
		}
		return Breakdown{
			LineItems: []LineItem{{
				Label:         g.PeriodLabel,
				TicketNumbers: CompressTicketNumbers(nums),
				Subtotal:      sum,
			}},
			Total: sum,
		}
	}

	buckets := make(map[string][]*Ticket)
	var poValues []string
	for _, t := range g.Tickets {
		po := strings.TrimSpace(t.Fields.PoAfe)
		if _, ok := buckets[po]; !ok {
			poValues = append(poValues, po)
		}
		buckets[po] = append(buckets[po], t)
	}
	sort.SliceStable(poValues, func(i, j int) bool {
		// Blank PO/AFE bucket always sorts last.
		if (poValues[i] == "") != (poValues[j] == "") {
			return poValues[j] == ""
		}
		return poValues[i] < poValues[j]
	})

	b := Breakdown{Total: decimal.Zero}
	for _, po := range poValues {
		sum := decimal.Zero
		nums := make([]string, 0, len(buckets[po]))
		for _, t := range buckets[po] {
			sum = sum.Add(TicketAmount(t, expensesOf(t)))
			nums = append(nums, t.TicketNumber)
		}
		label := po
		if label == "" {
			label = NoPoAfeLabel
		}
		b.LineItems = append(b.LineItems, LineItem{
			PoAfe:         po,
			Label:         label,
			TicketNumbers: CompressTicketNumbers(nums),
			Subtotal:      sum,
		})
		b.Total = b.Total.Add(sum)
	}
	return b
}

// CompressTicketNumbers sorts ticket numbers by (prefix, numeric suffix)
// and collapses consecutive runs into "first - last" spans:
// DB_25001, DB_25002, DB_25003, DB_25005 becomes
// "DB_25001 - DB_25003, DB_25005". Idempotent for identical input.
func CompressTicketNumbers(nums []string) string {
	type parsed struct {
		raw    string
		prefix string
		suffix int
	}
	ps := make([]parsed, 0, len(nums))
	for _, n := range nums {
		prefix, suffix := splitTicketNumber(n)
		ps = append(ps, parsed{raw: n, prefix: prefix, suffix: suffix})
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].prefix != ps[j].prefix {
			return ps[i].prefix < ps[j].prefix
		}
		return ps[i].suffix < ps[j].suffix
	})

	var parts []string
	for i := 0; i < len(ps); {
		j := i
		for j+1 < len(ps) &&
			ps[j+1].prefix == ps[i].prefix &&
			ps[j+1].suffix == ps[j].suffix+1 &&
			ps[j].suffix > 0 {
			j++
		}
		if j > i {
			parts = append(parts, ps[i].raw+" - "+ps[j].raw)
		} else {
			parts = append(parts, ps[i].raw)
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
