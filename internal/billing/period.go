package billing

import (
	"fmt"
	"math"
	"time"
)

// Mode selects how dates collapse into invoice periods.
type Mode string

const (
	Daily    Mode = "daily"
	Weekly   Mode = "weekly"
	BiWeekly Mode = "biweekly"
	Monthly  Mode = "monthly"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Daily, Weekly, BiWeekly, Monthly:
		return Mode(s), true
	}
	return "", false
}

// parseDate reads a YYYY-MM-DD string as a local date pinned to noon, so
// date arithmetic never drifts across a timezone boundary. A malformed
// date yields the zero date, never an error.
func parseDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Date(1, 1, 1, 12, 0, 0, 0, time.Local)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}

// mondayOf returns the Monday of the week containing t, at noon.
func mondayOf(t time.Time) time.Time {
	daysFromMonday := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -daysFromMonday)
}

// firstMonday returns the first Monday on or after January 1 of year:
// Jan 2 when Jan 1 is a Sunday, Jan 1 when a Monday, otherwise the
// (9 - weekday)th of January.
func firstMonday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 12, 0, 0, 0, time.Local)
	switch jan1.Weekday() {
	case time.Sunday:
		return jan1.AddDate(0, 0, 1)
	case time.Monday:
		return jan1
	default:
		return time.Date(year, time.January, 9-int(jan1.Weekday()), 12, 0, 0, 0, time.Local)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// biWeekNumber computes the 1-based bi-week of the year containing date.
// Dates falling before the year's first Monday land in bi-week 0.
func biWeekNumber(t time.Time) (year, biWeek int) {
	year = t.Year()
	monday := mondayOf(t)
	first := firstMonday(year)
	// Both times sit at local noon, so rounding absorbs any DST hour.
	days := int(math.Round(monday.Sub(first).Hours() / 24))
	week := floorDiv(days, 7) + 1
	if week < 0 {
		week = 0
	}
	return year, (week + 1) / 2
}

// PeriodKey maps a YYYY-MM-DD date to its period bucket under mode. Keys
// are stable across passes and usable as group-identity components. An
// unknown mode is a programming error.
func PeriodKey(date string, mode Mode) string {
	t := parseDate(date)
	switch mode {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		return mondayOf(t).Format("2006-01-02")
	case BiWeekly:
		year, bw := biWeekNumber(t)
		return fmt.Sprintf("%04d-B%02d", year, bw)
	case Monthly:
		return t.Format("2006-01")
	}
	panic(fmt.Sprintf("billing: unknown period mode %q", mode))
}

// PeriodLabel renders a period key as its human-facing label. Bi-weekly
// labels show the 14-day span as dd-mm-yyyy to dd-mm-yyyy.
func PeriodLabel(key string, mode Mode) string {
	switch mode {
	case Daily:
		return key
	case Weekly:
		return "Week of " + key
	case BiWeekly:
		var year, bw int
		if _, err := fmt.Sscanf(key, "%d-B%d", &year, &bw); err != nil {
			return key
		}
		start := firstMonday(year).AddDate(0, 0, (bw-1)*14)
		end := start.AddDate(0, 0, 13)
		return start.Format("02-01-2006") + " to " + end.Format("02-01-2006")
	case Monthly:
		t, err := time.Parse("2006-01", key)
		if err != nil {
			return key
		}
		return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
	}
	panic(fmt.Sprintf("billing: unknown period mode %q", mode))
}

// DefaultMode is the regime's period mode when the customer does not
// configure one: bi-weekly for approver-driven customers, monthly
// otherwise.
func DefaultMode(approverDriven bool) Mode {
	if approverDriven {
		return BiWeekly
	}
	return Monthly
}
