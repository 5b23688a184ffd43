package database

// Schema is applied on open; every statement is idempotent so an existing
// database upgrades in place.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	approver_driven INTEGER NOT NULL DEFAULT 0,
	period_mode TEXT,
	approver TEXT,
	po_afe TEXT,
	coding TEXT,
	other TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL REFERENCES customers(id),
	name TEXT NOT NULL,
	approver TEXT,
	po_afe TEXT,
	coding TEXT,
	other TEXT,
	service_location TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(customer_id, name)
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	shop_rate TEXT,
	shop_overtime_rate TEXT,
	travel_rate TEXT,
	field_rate TEXT,
	field_overtime_rate TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS time_entries (
	id TEXT PRIMARY KEY,
	entry_date TEXT NOT NULL,
	hours REAL NOT NULL,
	rate_type TEXT NOT NULL,
	description TEXT,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	project_id TEXT REFERENCES projects(id),
	po_afe TEXT,
	approver TEXT,
	coding TEXT,
	other TEXT,
	billable INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(entry_date);

CREATE TABLE IF NOT EXISTS tickets (
	id TEXT PRIMARY KEY,
	ticket_number TEXT NOT NULL DEFAULT '',
	ticket_date TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	customer_id TEXT,
	project_id TEXT,
	location TEXT,
	edited_hours TEXT,
	total_hours REAL,
	approver TEXT,
	po_afe TEXT,
	coding TEXT,
	other TEXT,
	service_location TEXT,
	discarded INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'submitted',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tickets_date ON tickets(ticket_date);

CREATE TABLE IF NOT EXISTS ticket_sequence (
	year INTEGER PRIMARY KEY,
	last_seq INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
	id TEXT PRIMARY KEY,
	ticket_id TEXT NOT NULL REFERENCES tickets(id),
	quantity TEXT NOT NULL,
	rate TEXT NOT NULL,
	reference TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_expenses_ticket ON expenses(ticket_id);
`

// markerSchema also runs against remote marker stores, which carry only
// this one table.
const markerSchema = `
CREATE TABLE IF NOT EXISTS invoiced_markers (
	group_id TEXT PRIMARY KEY,
	marked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
