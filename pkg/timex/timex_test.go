package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45min", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h03min", FormatMinutes(63))
	assert.Equal(t, "0min", FormatMinutes(0))
	assert.Equal(t, "0min", FormatMinutes(-10))
}

func TestSplitMinutes(t *testing.T) {
	h, m := SplitMinutes(75)
	assert.Equal(t, 1, h)
	assert.Equal(t, 15, m)
}

func TestDayTruncation(t *testing.T) {
	ts := time.Date(2026, 8, 31, 17, 45, 12, 999, time.UTC)
	day := Day(ts)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), day)
	assert.True(t, SameDay(ts, day))
	assert.False(t, SameDay(ts, day.AddDate(0, 0, -1)))
}

func TestWeekKeyAcrossYearBoundary(t *testing.T) {
	// 2024-12-30 和 2025-01-02 同属ISO 2025年第1周
	a := WeekKeyOf(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC))
	b := WeekKeyOf(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, a, b)
	assert.Equal(t, WeekKey{Year: 2025, Week: 1}, a)

	// 2023年末的第52周不能与2025年的第1周混淆
	c := WeekKeyOf(time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, WeekKey{Year: 2024, Week: 52}, c)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "2025-W01", a.Label())
}

func TestLastNWeeksOrderedAscending(t *testing.T) {
	anchor := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC) // ISO 2025-W02
	keys := LastNWeeks(anchor, 5)
	assert.Len(t, keys, 5)
	assert.Equal(t, WeekKey{Year: 2024, Week: 50}, keys[0])
	assert.Equal(t, WeekKey{Year: 2024, Week: 51}, keys[1])
	assert.Equal(t, WeekKey{Year: 2024, Week: 52}, keys[2])
	assert.Equal(t, WeekKey{Year: 2025, Week: 1}, keys[3])
	assert.Equal(t, WeekKey{Year: 2025, Week: 2}, keys[4])
}
