package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths_CalendarArithmetic(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		start    time.Time
		n        int
		expected time.Time
	}{
		{"forward", jan, 2, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)},
		{"backward", jan, -1, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.Local)},
		{"year boundary forward", time.Date(2023, time.November, 1, 0, 0, 0, 0, time.Local), 3, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)},
		{"zero", jan, 0, jan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.n))
		})
	}
}

func TestAddMonths_NeverSkipsShortMonths(t *testing.T) {
	// Stepping from January must land in February even though February is
	// shorter than 31 days
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	feb := AddMonths(jan, 1)

	assert.Equal(t, time.February, feb.Month())
	assert.Equal(t, 1, feb.Day())
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2024, time.March, 17, 15, 42, 3, 0, time.Local)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), MonthStart(ts))
}

func TestDayStart(t *testing.T) {
	ts := time.Date(2024, time.March, 17, 15, 42, 3, 0, time.Local)
	assert.Equal(t, time.Date(2024, time.March, 17, 0, 0, 0, 0, time.Local), DayStart(ts))
}

func TestWithinMonth(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)

	assert.True(t, WithinMonth(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), march))
	assert.True(t, WithinMonth(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.Local), march))
	assert.False(t, WithinMonth(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.Local), march))
	assert.False(t, WithinMonth(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local), march))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, time.February, 28, 23, 0, 0, 0, time.Local)
	b := time.Date(2024, time.March, 1, 1, 0, 0, 0, time.Local)

	// 2024 is a leap year; time of day never shifts the count
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetween_SpansDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Spring forward on Mar 10 2024 leaves this span one hour short of 61
	// full days; the calendar count must still be 61
	a := time.Date(2024, time.March, 8, 0, 0, 0, 0, loc)
	b := time.Date(2024, time.May, 8, 0, 0, 0, 0, loc)

	assert.Equal(t, 61, DaysBetween(a, b))
	assert.Equal(t, -61, DaysBetween(b, a))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 3000.0, RoundCurrency(9000.0/3))
	assert.Equal(t, 333.0, RoundCurrency(1000.0/3))
	assert.Equal(t, 334.0, RoundCurrency(333.5))
	assert.Equal(t, 0.0, RoundCurrency(0))
}
