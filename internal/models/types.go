package models

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateType classifies billable hours. Unknown values fold into ShopTime
// during ticket assembly.
type RateType string

const (
	ShopTime      RateType = "shop_time"
	ShopOvertime  RateType = "shop_overtime"
	TravelTime    RateType = "travel_time"
	FieldTime     RateType = "field_time"
	FieldOvertime RateType = "field_overtime"
)

// RateTypes returns every rate type in stable display order.
func RateTypes() []RateType {
	return []RateType{ShopTime, ShopOvertime, TravelTime, FieldTime, FieldOvertime}
}

func (r RateType) Valid() bool {
	switch r {
	case ShopTime, ShopOvertime, TravelTime, FieldTime, FieldOvertime:
		return true
	}
	return false
}

func (r RateType) Label() string {
	switch r {
	case ShopTime:
		return "Shop Time"
	case ShopOvertime:
		return "Shop Overtime"
	case TravelTime:
		return "Travel Time"
	case FieldTime:
		return "Field Time"
	case FieldOvertime:
		return "Field Overtime"
	}
	return string(r)
}

// Hours maps a rate type to an hour count.
type Hours map[RateType]float64

// Total sums every bucket, treating non-finite values as zero.
func (h Hours) Total() float64 {
	total := 0.0
	for _, v := range h {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	return total
}

// Clone returns a copy with non-finite values zeroed and unknown rate
// types folded into ShopTime, so overrides never carry garbage into totals.
func (h Hours) Clone() Hours {
	out := make(Hours, len(h))
	for rt, v := range h {
		if !rt.Valid() {
			rt = ShopTime
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[rt] += v
	}
	return out
}

// RateTable maps a rate type to an hourly dollar rate.
type RateTable map[RateType]decimal.Decimal

// Rate returns the hourly rate for rt, falling back to the default table
// when the employee has no custom rate for it.
func (t RateTable) Rate(rt RateType) decimal.Decimal {
	if t != nil {
		if r, ok := t[rt]; ok {
			return r
		}
	}
	return DefaultRates()[rt]
}

// DefaultRates is the fixed fallback rate table used when an employee
// record carries no custom rates.
func DefaultRates() RateTable {
	return RateTable{
		ShopTime:      decimal.NewFromInt(95),
		ShopOvertime:  decimal.RequireFromString("142.50"),
		TravelTime:    decimal.NewFromInt(85),
		FieldTime:     decimal.NewFromInt(110),
		FieldOvertime: decimal.NewFromInt(165),
	}
}

type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ApproverDriven bool      `json:"approver_driven"`
	PeriodMode     *string   `json:"period_mode,omitempty"`
	Approver       *string   `json:"approver,omitempty"`
	PoAfe          *string   `json:"po_afe,omitempty"`
	Coding         *string   `json:"coding,omitempty"`
	Other          *string   `json:"other,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Project struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	Name            string    `json:"name"`
	Approver        *string   `json:"approver,omitempty"`
	PoAfe           *string   `json:"po_afe,omitempty"`
	Coding          *string   `json:"coding,omitempty"`
	Other           *string   `json:"other,omitempty"`
	ServiceLocation *string   `json:"service_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Employee struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Rates     RateTable `json:"rates,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Initials returns the employee's first/last initials, "XX" when neither
// name is present.
func (e *Employee) Initials() string {
	initials := ""
	for _, name := range []string{e.FirstName, e.LastName} {
		if name == "" {
			continue
		}
		// First rune, not first byte: names are not always ASCII.
		r, _ := utf8.DecodeRuneInString(name)
		initials += strings.ToUpper(string(r))
	}
	if initials == "" {
		return "XX"
	}
	return initials
}

// TimeEntry is an immutable billable-labor fact. CustomerID, CustomerName
// and ProjectName are resolved transitively through the project join when
// the entry is read.
type TimeEntry struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Hours       float64   `json:"hours"`
	RateType    RateType  `json:"rate_type"`
	Description *string   `json:"description,omitempty"`
	EmployeeID  string    `json:"employee_id"`
	ProjectID   *string   `json:"project_id,omitempty"`
	CustomerID  *string   `json:"customer_id,omitempty"`
	PoAfe       *string   `json:"po_afe,omitempty"`
	Approver    *string   `json:"approver,omitempty"`
	Coding      *string   `json:"coding,omitempty"`
	Other       *string   `json:"other,omitempty"`
	Billable    bool      `json:"billable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CustomerName string `json:"customer_name,omitempty"`
	ProjectName  string `json:"project_name,omitempty"`
}

type TicketStatus string

const (
	TicketSubmitted TicketStatus = "submitted"
	TicketApproved  TicketStatus = "approved"
	TicketRejected  TicketStatus = "rejected"
)

// ApprovedTicket is the administratively-approved record of a service
// ticket. The ticket number is assigned at first approval and is permanent
// after that.
type ApprovedTicket struct {
	ID              string       `json:"id"`
	TicketNumber    string       `json:"ticket_number"`
	Date            string       `json:"date"` // YYYY-MM-DD
	EmployeeID      string       `json:"employee_id"`
	CustomerID      *string      `json:"customer_id,omitempty"`
	ProjectID       *string      `json:"project_id,omitempty"`
	Location        *string      `json:"location,omitempty"`
	EditedHours     Hours        `json:"edited_hours,omitempty"`
	TotalHours      *float64     `json:"total_hours,omitempty"`
	Approver        *string      `json:"approver,omitempty"`
	PoAfe           *string      `json:"po_afe,omitempty"`
	Coding          *string      `json:"coding,omitempty"`
	Other           *string      `json:"other,omitempty"`
	ServiceLocation *string      `json:"service_location,omitempty"`
	Discarded       bool         `json:"discarded"`
	Status          TicketStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Expense is a quantity-times-rate charge attached to an approved ticket.
type Expense struct {
	ID        string          `json:"id"`
	TicketID  string          `json:"ticket_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Reference *string         `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Amount is quantity times rate, unrounded.
func (e *Expense) Amount() decimal.Decimal {
	return e.Quantity.Mul(e.Rate)
}

func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
