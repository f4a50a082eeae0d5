package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeDays(t *testing.T) {
	assert.Equal(t, "days", PluralizeDays(0))
	assert.Equal(t, "day", PluralizeDays(1))
	assert.Equal(t, "days", PluralizeDays(2))
	assert.Equal(t, "1 day", FormatDays(1))
	assert.Equal(t, "12 days", FormatDays(12))
	assert.Equal(t, "3 answers", FormatAnswers(3))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "2 350", FormatNumber(2350))
	assert.Equal(t, "1 000 001", FormatNumber(1000001))
	assert.Equal(t, "-5 000", FormatNumber(-5000))
}

func TestDayKey(t *testing.T) {
	loc, _ := LoadLocation("Asia/Jerusalem")
	ts := time.Date(2025, 1, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-15", DayKey(ts, loc))
	assert.Equal(t, "2025-01-14", DayKey(ts, time.UTC))
	assert.Equal(t, "15.01.2025 01:30", FormatDateTime(ts, loc))
}
