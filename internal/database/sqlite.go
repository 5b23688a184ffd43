package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/models"
)

type SQLiteDB struct {
	conn         *sqlx.DB
	ticketPrefix string
	markers      MarkerStore
}

func NewDB(cfg *config.Config) (*SQLiteDB, error) {
	conn, err := sqlx.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := conn.Exec(markerSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply marker schema: %w", err)
	}
	return &SQLiteDB{
		conn:         conn,
		ticketPrefix: cfg.TicketPrefix,
		markers:      &sqlMarkerStore{conn: conn},
	}, nil
}

func (s *SQLiteDB) Close() error {
	return s.conn.Close()
}

func (s *SQLiteDB) Markers() MarkerStore {
	return s.markers
}

type customerRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	ApproverDriven bool           `db:"approver_driven"`
	PeriodMode     sql.NullString `db:"period_mode"`
	Approver       sql.NullString `db:"approver"`
	PoAfe          sql.NullString `db:"po_afe"`
	Coding         sql.NullString `db:"coding"`
	Other          sql.NullString `db:"other"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r customerRow) toModel() *models.Customer {
	return &models.Customer{
		ID:             r.ID,
		Name:           r.Name,
		ApproverDriven: r.ApproverDriven,
		PeriodMode:     nullStringToPtr(r.PeriodMode),
		Approver:       nullStringToPtr(r.Approver),
		PoAfe:          nullStringToPtr(r.PoAfe),
		Coding:         nullStringToPtr(r.Coding),
		Other:          nullStringToPtr(r.Other),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (s *SQLiteDB) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*models.Customer, error) {
	id := models.NewUUID()
	now := time.Now().UTC()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO customers (id, name, approver_driven, period_mode, approver, po_afe, coding, other, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Name, params.ApproverDriven, ptrToNullString(params.PeriodMode),
		ptrToNullString(params.Approver), ptrToNullString(params.PoAfe),
		ptrToNullString(params.Coding), ptrToNullString(params.Other), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return s.getCustomerByID(ctx, id)
}

func (s *SQLiteDB) getCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var row customerRow
	if err := s.conn.GetContext(ctx, &row, `SELECT * FROM customers WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteDB) GetCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	var row customerRow
	err := s.conn.GetContext(ctx, &row, `SELECT * FROM customers WHERE name = ?`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer by name: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteDB) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	var rows []customerRow
	if err := s.conn.SelectContext(ctx, &rows, `SELECT * FROM customers ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	out := make([]*models.Customer, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

type projectRow struct {
	ID              string         `db:"id"`
	CustomerID      string         `db:"customer_id"`
	Name            string         `db:"name"`
	Approver        sql.NullString `db:"approver"`
	PoAfe           sql.NullString `db:"po_afe"`
	Coding          sql.NullString `db:"coding"`
	Other           sql.NullString `db:"other"`
	ServiceLocation sql.NullString `db:"service_location"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r projectRow) toModel() *models.Project {
	return &models.Project{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		Name:            r.Name,
		Approver:        nullStringToPtr(r.Approver),
		PoAfe:           nullStringToPtr(r.PoAfe),
		Coding:          nullStringToPtr(r.Coding),
		Other:           nullStringToPtr(r.Other),
		ServiceLocation: nullStringToPtr(r.ServiceLocation),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (s *SQLiteDB) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	id := models.NewUUID()
	now := time.Now().UTC()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO projects (id, customer_id, name, approver, po_afe, coding, other, service_location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.CustomerID, params.Name,
		ptrToNullString(params.Approver), ptrToNullString(params.PoAfe),
		ptrToNullString(params.Coding), ptrToNullString(params.Other),
		ptrToNullString(params.ServiceLocation), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	var row projectRow
	if err := s.conn.GetContext(ctx, &row, `SELECT * FROM projects WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteDB) GetProjectByName(ctx context.Context, customerID, name string) (*models.Project, error) {
	var row projectRow
	err := s.conn.GetContext(ctx, &row, `SELECT * FROM projects WHERE customer_id = ? AND name = ?`, customerID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteDB) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var rows []projectRow
	if err := s.conn.SelectContext(ctx, &rows, `SELECT * FROM projects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	out := make([]*models.Project, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

type employeeRow struct {
	ID                string         `db:"id"`
	FirstName         string         `db:"first_name"`
	LastName          string         `db:"last_name"`
	ShopRate          sql.NullString `db:"shop_rate"`
	ShopOvertimeRate  sql.NullString `db:"shop_overtime_rate"`
	TravelRate        sql.NullString `db:"travel_rate"`
	FieldRate         sql.NullString `db:"field_rate"`
	FieldOvertimeRate sql.NullString `db:"field_overtime_rate"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r employeeRow) toModel() *models.Employee {
	rates := make(models.RateTable)
	cols := map[models.RateType]sql.NullString{
		models.ShopTime:      r.ShopRate,
		models.ShopOvertime:  r.ShopOvertimeRate,
		models.TravelTime:    r.TravelRate,
		models.FieldTime:     r.FieldRate,
		models.FieldOvertime: r.FieldOvertimeRate,
	}
	for rt, col := range cols {
		if !col.Valid {
			continue
		}
		if d, err := decimal.NewFromString(col.String); err == nil {
			rates[rt] = d
		}
	}
	if len(rates) == 0 {
		rates = nil
	}
	return &models.Employee{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Rates:     rates,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *SQLiteDB) CreateEmployee(ctx context.Context, firstName, lastName string, rates models.RateTable) (*models.Employee, error) {
	id := models.NewUUID()
	now := time.Now().UTC()
	rateCol := func(rt models.RateType) sql.NullString {
		if d, ok := rates[rt]; ok {
			return sql.NullString{String: d.String(), Valid: true}
		}
		return sql.NullString{}
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, shop_rate, shop_overtime_rate, travel_rate, field_rate, field_overtime_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, firstName, lastName,
		rateCol(models.ShopTime), rateCol(models.ShopOvertime), rateCol(models.TravelTime),
		rateCol(models.FieldTime), rateCol(models.FieldOvertime), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	var row employeeRow
	if err := s.conn.GetContext(ctx, &row, `SELECT * FROM employees WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteDB) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	var rows []employeeRow
	if err := s.conn.SelectContext(ctx, &rows, `SELECT * FROM employees ORDER BY last_name, first_name`); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	out := make([]*models.Employee, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

type timeEntryRow struct {
	ID           string         `db:"id"`
	EntryDate    string         `db:"entry_date"`
	Hours        float64        `db:"hours"`
	RateType     string         `db:"rate_type"`
	Description  sql.NullString `db:"description"`
	EmployeeID   string         `db:"employee_id"`
	ProjectID    sql.NullString `db:"project_id"`
	PoAfe        sql.NullString `db:"po_afe"`
	Approver     sql.NullString `db:"approver"`
	Coding       sql.NullString `db:"coding"`
	Other        sql.NullString `db:"other"`
	Billable     bool           `db:"billable"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	CustomerID   sql.NullString `db:"customer_id"`
	CustomerName sql.NullString `db:"customer_name"`
	ProjectName  sql.NullString `db:"project_name"`
}

func (r timeEntryRow) toModel() *models.TimeEntry {
	return &models.TimeEntry{
		ID:           r.ID,
		Date:         r.EntryDate,
		Hours:        r.Hours,
		RateType:     models.RateType(r.RateType),
		Description:  nullStringToPtr(r.Description),
		EmployeeID:   r.EmployeeID,
		ProjectID:    nullStringToPtr(r.ProjectID),
		CustomerID:   nullStringToPtr(r.CustomerID),
		PoAfe:        nullStringToPtr(r.PoAfe),
		Approver:     nullStringToPtr(r.Approver),
		Coding:       nullStringToPtr(r.Coding),
		Other:        nullStringToPtr(r.Other),
		Billable:     r.Billable,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CustomerName: r.CustomerName.String,
		ProjectName:  r.ProjectName.String,
	}
}

const timeEntryJoin = `
	SELECT e.*, p.customer_id AS customer_id, c.name AS customer_name, p.name AS project_name
	FROM time_entries e
	LEFT JOIN projects p ON p.id = e.project_id
	LEFT JOIN customers c ON c.id = p.customer_id`

func (s *SQLiteDB) CreateTimeEntry(ctx context.Context, params CreateTimeEntryParams) (*models.TimeEntry, error) {
	id := models.NewUUID()
	now := time.Now().UTC()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO time_entries (id, entry_date, hours, rate_type, description, employee_id, project_id, po_afe, approver, coding, other, billable, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Date, params.Hours, string(params.RateType),
		ptrToNullString(params.Description), params.EmployeeID, ptrToNullString(params.ProjectID),
		ptrToNullString(params.PoAfe), ptrToNullString(params.Approver),
		ptrToNullString(params.Coding), ptrToNullString(params.Other), params.Billable, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	var row timeEntryRow
	if err := s.conn.GetContext(ctx, &row, timeEntryJoin+` WHERE e.id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return row.toModel(), nil
}

// GetBillableEntries returns billable entries in the inclusive date range
// with customer and project display fields resolved through the project
// join.
func (s *SQLiteDB) GetBillableEntries(ctx context.Context, fromDate, toDate string) ([]*models.TimeEntry, error) {
	var rows []timeEntryRow
	err := s.conn.SelectContext(ctx, &rows,
		timeEntryJoin+` WHERE e.billable = 1 AND e.entry_date >= ? AND e.entry_date <= ?
		ORDER BY e.entry_date, e.created_at`, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get billable entries: %w", err)
	}
	out := make([]*models.TimeEntry, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

type ticketRow struct {
	ID              string          `db:"id"`
	TicketNumber    string          `db:"ticket_number"`
	TicketDate      string          `db:"ticket_date"`
	EmployeeID      string          `db:"employee_id"`
	CustomerID      sql.NullString  `db:"customer_id"`
	ProjectID       sql.NullString  `db:"project_id"`
	Location        sql.NullString  `db:"location"`
	EditedHours     sql.NullString  `db:"edited_hours"`
	TotalHours      sql.NullFloat64 `db:"total_hours"`
	Approver        sql.NullString  `db:"approver"`
	PoAfe           sql.NullString  `db:"po_afe"`
	Coding          sql.NullString  `db:"coding"`
	Other           sql.NullString  `db:"other"`
	ServiceLocation sql.NullString  `db:"service_location"`
	Discarded       bool            `db:"discarded"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r ticketRow) toModel() (*models.ApprovedTicket, error) {
	t := &models.ApprovedTicket{
		ID:              r.ID,
		TicketNumber:    r.TicketNumber,
		Date:            r.TicketDate,
		EmployeeID:      r.EmployeeID,
		CustomerID:      nullStringToPtr(r.CustomerID),
		ProjectID:       nullStringToPtr(r.ProjectID),
		Location:        nullStringToPtr(r.Location),
		Approver:        nullStringToPtr(r.Approver),
		PoAfe:           nullStringToPtr(r.PoAfe),
		Coding:          nullStringToPtr(r.Coding),
		Other:           nullStringToPtr(r.Other),
		ServiceLocation: nullStringToPtr(r.ServiceLocation),
		Discarded:       r.Discarded,
		Status:          models.TicketStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.TotalHours.Valid {
		t.TotalHours = &r.TotalHours.Float64
	}
	if r.EditedHours.Valid && r.EditedHours.String != "" {
		var hours models.Hours
		if err := json.Unmarshal([]byte(r.EditedHours.String), &hours); err != nil {
			return nil, fmt.Errorf("failed to decode edited hours for ticket %s: %w", r.ID, err)
		}
		t.EditedHours = hours
	}
	return t, nil
}

func (s *SQLiteDB) SubmitTicket(ctx context.Context, params SubmitTicketParams) (*models.ApprovedTicket, error) {
	id := models.NewUUID()
	now := time.Now().UTC()

	var editedHours sql.NullString
	if len(params.EditedHours) > 0 {
		raw, err := json.Marshal(params.EditedHours)
		if err != nil {
			return nil, fmt.Errorf("failed to encode edited hours: %w", err)
		}
		editedHours = sql.NullString{String: string(raw), Valid: true}
	}

	var totalHours sql.NullFloat64
	if params.TotalHours != nil {
		totalHours = sql.NullFloat64{Float64: *params.TotalHours, Valid: true}
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO tickets (id, ticket_date, employee_id, customer_id, project_id, location, edited_hours, total_hours, approver, po_afe, coding, other, service_location, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Date, params.EmployeeID,
		ptrToNullString(params.CustomerID), ptrToNullString(params.ProjectID), ptrToNullString(params.Location),
		editedHours, totalHours,
		ptrToNullString(params.Approver), ptrToNullString(params.PoAfe),
		ptrToNullString(params.Coding), ptrToNullString(params.Other),
		ptrToNullString(params.ServiceLocation), string(models.TicketSubmitted), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to submit ticket: %w", err)
	}
	return s.getTicketByID(ctx, id)
}

func (s *SQLiteDB) getTicketByID(ctx context.Context, id string) (*models.ApprovedTicket, error) {
	var row ticketRow
	if err := s.conn.GetContext(ctx, &row, `SELECT * FROM tickets WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return row.toModel()
}

// ApproveTicket marks a ticket approved, assigning its permanent ticket
// number on first approval. Re-approving keeps the existing number.
func (s *SQLiteDB) ApproveTicket(ctx context.Context, id string) (*models.ApprovedTicket, error) {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row ticketRow
	if err := tx.GetContext(ctx, &row, `SELECT * FROM tickets WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	number := row.TicketNumber
	if number == "" {
		year := time.Now().UTC().Year()
		seq, err := nextTicketSeq(ctx, tx, year)
		if err != nil {
			return nil, err
		}
		number = fmt.Sprintf("%s%02d%03d", s.ticketPrefix, year%100, seq)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tickets SET ticket_number = ?, status = ?, updated_at = ? WHERE id = ?`,
		number, string(models.TicketApproved), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve ticket: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}
	return s.getTicketByID(ctx, id)
}

func nextTicketSeq(ctx context.Context, tx *sqlx.Tx, year int) (int, error) {
	res, err := tx.ExecContext(ctx, `UPDATE ticket_sequence SET last_seq = last_seq + 1 WHERE year = ?`, year)
	if err != nil {
		return 0, fmt.Errorf("failed to advance ticket sequence: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := tx.ExecContext(ctx, `INSERT INTO ticket_sequence (year, last_seq) VALUES (?, 1)`, year); err != nil {
			return 0, fmt.Errorf("failed to start ticket sequence: %w", err)
		}
	}
	var seq int
	if err := tx.GetContext(ctx, &seq, `SELECT last_seq FROM ticket_sequence WHERE year = ?`, year); err != nil {
		return 0, fmt.Errorf("failed to read ticket sequence: %w", err)
	}
	return seq, nil
}

func (s *SQLiteDB) DiscardTicket(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE tickets SET discarded = 1, updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to discard ticket: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetApprovedTickets returns approved, non-discarded tickets in the
// inclusive date range, in approval order. This is the record input to
// reconciliation.
func (s *SQLiteDB) GetApprovedTickets(ctx context.Context, fromDate, toDate string) ([]*models.ApprovedTicket, error) {
	var rows []ticketRow
	err := s.conn.SelectContext(ctx, &rows, `
		SELECT * FROM tickets
		WHERE status = ? AND discarded = 0 AND ticket_date >= ? AND ticket_date <= ?
		ORDER BY updated_at, ticket_number`, string(models.TicketApproved), fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved tickets: %w", err)
	}
	out := make([]*models.ApprovedTicket, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *SQLiteDB) ListTickets(ctx context.Context, status *models.TicketStatus) ([]*models.ApprovedTicket, error) {
	query := `SELECT * FROM tickets WHERE discarded = 0 ORDER BY ticket_date DESC, created_at DESC`
	args := []any{}
	if status != nil {
		query = `SELECT * FROM tickets WHERE discarded = 0 AND status = ? ORDER BY ticket_date DESC, created_at DESC`
		args = append(args, string(*status))
	}
	var rows []ticketRow
	if err := s.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	out := make([]*models.ApprovedTicket, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type expenseRow struct {
	ID        string         `db:"id"`
	TicketID  string         `db:"ticket_id"`
	Quantity  string         `db:"quantity"`
	Rate      string         `db:"rate"`
	Reference sql.NullString `db:"reference"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r expenseRow) toModel() (*models.Expense, error) {
	quantity, err := decimal.NewFromString(r.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expense quantity for %s: %w", r.ID, err)
	}
	rate, err := decimal.NewFromString(r.Rate)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expense rate for %s: %w", r.ID, err)
	}
	return &models.Expense{
		ID:        r.ID,
		TicketID:  r.TicketID,
		Quantity:  quantity,
		Rate:      rate,
		Reference: nullStringToPtr(r.Reference),
		CreatedAt: r.CreatedAt,
	}, nil
}

func (s *SQLiteDB) CreateExpense(ctx context.Context, ticketID string, quantity, rate decimal.Decimal, reference *string) (*models.Expense, error) {
	id := models.NewUUID()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO expenses (id, ticket_id, quantity, rate, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, ticketID, quantity.String(), rate.String(), ptrToNullString(reference), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	var row expenseRow
	if err := s.conn.GetContext(ctx, &row, `SELECT * FROM expenses WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return row.toModel()
}

func (s *SQLiteDB) GetExpenses(ctx context.Context, ticketID string) ([]*models.Expense, error) {
	var rows []expenseRow
	err := s.conn.SelectContext(ctx, &rows, `
		SELECT * FROM expenses WHERE ticket_id = ? ORDER BY created_at`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	out := make([]*models.Expense, 0, len(rows))
	for _, r := range rows {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func ptrToNullString(s *string) sql.NullString {
	if s != nil {
		return sql.NullString{String: *s, Valid: true}
	}
	return sql.NullString{}
}
