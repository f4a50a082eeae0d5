package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jerusalem(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return loc
}

func TestCalculator_Calculate(t *testing.T) {
	loc := jerusalem(t)
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, loc)
	calc := NewCalculator(loc, func() time.Time { return now })

	daysAgo := func(n int) time.Time {
		return now.AddDate(0, 0, -n)
	}

	tests := []struct {
		name        string
		events      []time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty",
			events:      nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Today only",
			events:      []time.Time{daysAgo(0)},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Yesterday only keeps the streak alive",
			events:      []time.Time{daysAgo(1)},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Three days ago is expired",
			events:      []time.Time{daysAgo(3)},
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name:        "Today and yesterday, any order",
			events:      []time.Time{daysAgo(1), daysAgo(0)},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "Yesterday back to three days ago",
			events:      []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Duplicates on the same day count once",
			events:      []time.Time{daysAgo(0), daysAgo(0)},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Historical run survives an expired current streak",
			events:      []time.Time{daysAgo(10), daysAgo(9), daysAgo(8)},
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name: "Longest in the past, shorter current run",
			events: []time.Time{
				daysAgo(0), daysAgo(1),
				daysAgo(10), daysAgo(11), daysAgo(12), daysAgo(13),
			},
			wantCurrent: 2,
			wantLongest: 4,
		},
		{
			name:        "Gap breaks the run",
			events:      []time.Time{daysAgo(0), daysAgo(1), daysAgo(4)},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "Several events per day inside a run",
			events: []time.Time{
				daysAgo(2).Add(-3 * time.Hour), daysAgo(2), daysAgo(1),
				daysAgo(1).Add(-time.Hour), daysAgo(0),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Calculate(tt.events)
			assert.Equal(t, tt.wantCurrent, got.Current, "current")
			assert.Equal(t, tt.wantLongest, got.Longest, "longest")
			assert.Equal(t, got.Current, calc.Current(tt.events))
			assert.Equal(t, got.Longest, calc.Longest(tt.events))
			assert.GreaterOrEqual(t, got.Longest, got.Current)
		})
	}
}

func TestCalculator_DoesNotMutateInput(t *testing.T) {
	loc := jerusalem(t)
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, loc)
	calc := NewCalculator(loc, func() time.Time { return now })

	events := []time.Time{now, now.AddDate(0, 0, -2), now.AddDate(0, 0, -1)}
	snapshot := append([]time.Time(nil), events...)

	assert.Equal(t, Result{Current: 3, Longest: 3}, calc.Calculate(events))
	assert.Equal(t, snapshot, events)
}

func TestCalculator_ZeroTimestampsIgnored(t *testing.T) {
	loc := jerusalem(t)
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, loc)
	calc := NewCalculator(loc, func() time.Time { return now })

	assert.Equal(t, Result{}, calc.Calculate([]time.Time{{}, {}}))
	assert.Equal(t, Result{Current: 1, Longest: 1}, calc.Calculate([]time.Time{{}, now}))
}

func TestCalculator_DaysFollowReferenceZone(t *testing.T) {
	loc := jerusalem(t)
	// 21:30 UTC и 22:30 UTC 17 июня — в Иерусалиме (UTC+3) это 18 июня, 00:30 и 01:30.
	late := time.Date(2025, 6, 17, 21, 30, 0, 0, time.UTC)
	prev := time.Date(2025, 6, 16, 22, 30, 0, 0, time.UTC) // 17 июня 01:30 местного
	now := time.Date(2025, 6, 18, 10, 0, 0, 0, loc)

	clock := func() time.Time { return now }
	inJerusalem := NewCalculator(loc, clock)
	assert.Equal(t, Result{Current: 2, Longest: 2}, inJerusalem.Calculate([]time.Time{late, prev}))

	// В UTC оба события приходятся на 16 и 17 июня; сегодня по UTC 18-е, серия жива.
	inUTC := NewCalculator(time.UTC, clock)
	assert.Equal(t, Result{Current: 2, Longest: 2}, inUTC.Calculate([]time.Time{late, prev}))

	// 00:30 UTC 15 июня и 21:30 UTC 16 июня: по UTC это соседние дни,
	// а в Иерусалиме 15 и 17 июня, то есть разрыв.
	a := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)
	b := time.Date(2025, 6, 16, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, inJerusalem.Longest([]time.Time{a, b}))
	assert.Equal(t, 2, inUTC.Longest([]time.Time{a, b}))
}

func TestCalculator_AcrossDSTChange(t *testing.T) {
	loc := jerusalem(t)
	// 28 марта 2025 — переход на летнее время, сутки длятся 23 часа.
	events := []time.Time{
		time.Date(2025, 3, 27, 23, 30, 0, 0, loc),
		time.Date(2025, 3, 28, 23, 30, 0, 0, loc),
		time.Date(2025, 3, 29, 0, 30, 0, 0, loc),
		time.Date(2025, 3, 30, 0, 10, 0, 0, loc),
	}
	now := time.Date(2025, 3, 30, 9, 0, 0, 0, loc)
	calc := NewCalculator(loc, func() time.Time { return now })

	assert.Equal(t, Result{Current: 4, Longest: 4}, calc.Calculate(events))
}

func TestCalculator_ActiveToday(t *testing.T) {
	loc := jerusalem(t)
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, loc)
	calc := NewCalculator(loc, func() time.Time { return now })

	assert.False(t, calc.ActiveToday(nil))
	assert.False(t, calc.ActiveToday([]time.Time{now.AddDate(0, 0, -1)}))
	assert.True(t, calc.ActiveToday([]time.Time{now.AddDate(0, 0, -1), now.Add(-11 * time.Hour)}))
}

func TestNewCalculator_Defaults(t *testing.T) {
	calc := NewCalculator(nil, nil)
	assert.Equal(t, time.UTC, calc.loc)
	assert.Equal(t, 1, calc.Current([]time.Time{time.Now()}))
}
