package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/utils"
)

// optional turns a blank flag value into a nil pointer.
func optional(s string) *string {
	return utils.ToPtrNil(s)
}

// addRangeFlags wires the shared --from/--to date range flags, defaulting
// to the current calendar month.
func addRangeFlags(cmd *cobra.Command, fromDate, toDate *string) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	cmd.Flags().StringVar(fromDate, "from", monthStart.Format("2006-01-02"), "Range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(toDate, "to", now.Format("2006-01-02"), "Range end date (YYYY-MM-DD)")
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", date)
	}
	return nil
}
