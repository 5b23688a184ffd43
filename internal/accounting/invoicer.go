package accounting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/billing"
)

// Invoicer pushes a finished invoice group to an external accounting
// system and returns the external invoice id.
type Invoicer interface {
	CreateInvoice(ctx context.Context, group *billing.Group, breakdown billing.Breakdown) (string, error)
}

// FileInvoicer is the local stand-in for a real accounting integration:
// it appends one line per invoice to a ledger file and hands back a
// timestamp-derived id.
type FileInvoicer struct {
	path string
}

func NewFileInvoicer(dir string) *FileInvoicer {
	return &FileInvoicer{path: filepath.Join(dir, "invoices.log")}
}

func (f *FileInvoicer) CreateInvoice(ctx context.Context, group *billing.Group, breakdown billing.Breakdown) (string, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create ledger directory: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	id := fmt.Sprintf("local-%d", time.Now().UTC().UnixNano())
	_, err = fmt.Fprintf(file, "%s\t%s\t%s\t%s\t$%s\n",
		id, group.ID, group.CustomerName, group.PeriodLabel, breakdown.Total.StringFixed(2))
	if err != nil {
		return "", fmt.Errorf("failed to write ledger entry: %w", err)
	}
	return id, nil
}
