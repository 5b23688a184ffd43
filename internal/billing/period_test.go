package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKeyDaily(t *testing.T) {
	assert.Equal(t, "2026-02-10", PeriodKey("2026-02-10", Daily))
	assert.Equal(t, "2026-02-10", PeriodLabel("2026-02-10", Daily))
}

func TestPeriodKeyWeekly(t *testing.T) {
	// 2026-02-10 is a Tuesday; its week starts Monday 2026-02-09.
	assert.Equal(t, "2026-02-09", PeriodKey("2026-02-10", Weekly))
	assert.Equal(t, "2026-02-09", PeriodKey("2026-02-09", Weekly))
	assert.Equal(t, "2026-02-09", PeriodKey("2026-02-15", Weekly))
	assert.Equal(t, "2026-02-16", PeriodKey("2026-02-16", Weekly))
	assert.Equal(t, "Week of 2026-02-09", PeriodLabel("2026-02-09", Weekly))
}

func TestPeriodKeyMonthly(t *testing.T) {
	assert.Equal(t, "2026-02", PeriodKey("2026-02-10", Monthly))
	assert.Equal(t, "February 2026", PeriodLabel("2026-02", Monthly))
	assert.Equal(t, "December 2025", PeriodLabel("2025-12", Monthly))
}

func TestFirstMondayConvention(t *testing.T) {
	// Jan 1, 2023 was a Sunday: first Monday is Jan 2.
	assert.Equal(t, "2023-01-02", firstMonday(2023).Format("2006-01-02"))
	// Jan 1, 2024 was a Monday: first Monday is Jan 1 itself.
	assert.Equal(t, "2024-01-01", firstMonday(2024).Format("2006-01-02"))
	// Jan 1, 2026 is a Thursday: 9-4 gives Jan 5.
	assert.Equal(t, "2026-01-05", firstMonday(2026).Format("2006-01-02"))
}

func TestPeriodKeyBiWeeklyIdempotentWithinSpan(t *testing.T) {
	// First Monday of 2026 is Jan 5. The first bi-week spans Jan 5-18,
	// the second starts Jan 19.
	for _, date := range []string{"2026-01-05", "2026-01-10", "2026-01-18"} {
		assert.Equal(t, "2026-B01", PeriodKey(date, BiWeekly), date)
	}
	for _, date := range []string{"2026-01-19", "2026-01-25", "2026-02-01"} {
		assert.Equal(t, "2026-B02", PeriodKey(date, BiWeekly), date)
	}
	assert.Equal(t, "2026-B03", PeriodKey("2026-02-10", BiWeekly))
}

func TestPeriodKeyBiWeeklyBeforeFirstMonday(t *testing.T) {
	// Jan 1-4, 2026 fall before the year's first Monday and land in
	// bi-week zero.
	assert.Equal(t, "2026-B00", PeriodKey("2026-01-01", BiWeekly))
	assert.Equal(t, "2026-B00", PeriodKey("2026-01-04", BiWeekly))
}

func TestPeriodLabelBiWeekly(t *testing.T) {
	assert.Equal(t, "05-01-2026 to 18-01-2026", PeriodLabel("2026-B01", BiWeekly))
	assert.Equal(t, "02-02-2026 to 15-02-2026", PeriodLabel("2026-B03", BiWeekly))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("biweekly")
	require.True(t, ok)
	assert.Equal(t, BiWeekly, m)

	_, ok = ParseMode("fortnightly")
	assert.False(t, ok)
}

func TestDefaultMode(t *testing.T) {
	assert.Equal(t, BiWeekly, DefaultMode(true))
	assert.Equal(t, Monthly, DefaultMode(false))
}
