package streak

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streak-bot/internal/cache"
	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/metrics"
)

type fakeStore struct {
	mu     sync.Mutex
	events map[int64][]time.Time
}

func (f *fakeStore) Add(_ context.Context, a *Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[a.UserID] = append(f.events[a.UserID], a.OccurredAt)
	return nil
}

func (f *fakeStore) ListAll(_ context.Context, userID int64) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.events[userID]...), nil
}

func (f *fakeStore) ListUsersWithActivitySince(_ context.Context, since time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, id := range []int64{1, 2, 3, 4} {
		for _, ts := range f.events[id] {
			if !ts.Before(since) {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	n := 0
	for _, ts := range f.events {
		n += len(ts)
	}
	return int64(n), nil
}

type fixedZones string

func (z fixedZones) Location(context.Context, int64) (string, *time.Location, error) {
	loc, _ := common.LoadLocation(string(z))
	return string(z), loc, nil
}

type recordingBot struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (r *recordingBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func newTestService(t *testing.T, now time.Time) (*Service, *fakeStore) {
	t.Helper()
	store := &fakeStore{events: map[int64][]time.Time{}}
	cfg := &config.Config{
		StreakReminderThreshold: 3,
		StreakReminderHour:      20,
	}
	svc := NewService(store, fixedZones("Asia/Jerusalem"), cache.NewMemorySet(100, time.Hour), cfg)
	svc.now = func() time.Time { return now }
	return svc, store
}

func jerusalemAt(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := common.ParseLocalTime(value, "Asia/Jerusalem")
	require.NoError(t, err)
	return ts
}

func TestLogActivity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(t, now)

	logged, err := svc.LogActivity(ctx, 1, "2025-01-15T14:30", "run")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 12, 30, 0, 0, time.UTC), logged.At)
	assert.Equal(t, 1, logged.Summary.Current)
	assert.False(t, logged.Summary.ActiveToday)

	logged, err = svc.LogActivity(ctx, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, now, logged.At)
	assert.Equal(t, Result{Current: 2, Longest: 2}, logged.Summary.Result)
	assert.True(t, logged.Summary.ActiveToday)
	assert.Len(t, store.events[1], 2)
}

func TestLogActivityRejectsBadDates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC))

	_, err := svc.LogActivity(ctx, 1, "2025-01-17", "")
	assert.ErrorIs(t, err, common.ErrFutureDate)

	_, err = svc.LogActivity(ctx, 1, "yesterday", "")
	assert.ErrorIs(t, err, common.ErrInvalidDate)

	assert.Empty(t, store.events[1])
}

func TestStatsEmpty(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	summary, err := svc.Stats(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, Result{}, summary.Result)
	assert.Equal(t, "Asia/Jerusalem", summary.Zone)
	assert.Empty(t, summary.LastDay)
}

func TestStatsCountsWholeHistory(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	svc, store := newTestService(t, now)

	// Три года подряд: больше любого разумного окна истории
	const days = 1000
	last := time.Date(2025, 6, 18, 12, 0, 0, 0, loc)
	for i := 0; i < days; i++ {
		store.events[7] = append(store.events[7], last.AddDate(0, 0, -i))
	}

	summary, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, Result{Current: days, Longest: days}, summary.Result)
	assert.Equal(t, days, summary.Total)
	assert.True(t, summary.ActiveToday)
	assert.Equal(t, "18.06.2025", summary.LastDay)
}

func TestSendReminders(t *testing.T) {
	ctx := context.Background()
	// 21:00 в Иерусалиме (летом UTC+3)
	svc, store := newTestService(t, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))

	// Серия 3 дня, сегодня не отметился: напоминаем
	store.events[1] = []time.Time{
		jerusalemAt(t, "2025-06-13T12:00"),
		jerusalemAt(t, "2025-06-14T12:00"),
		jerusalemAt(t, "2025-06-15T12:00"),
	}
	// Уже отметился сегодня
	store.events[2] = []time.Time{
		jerusalemAt(t, "2025-06-14T12:00"),
		jerusalemAt(t, "2025-06-15T12:00"),
		jerusalemAt(t, "2025-06-16T08:00"),
	}
	// Серия короче порога
	store.events[3] = []time.Time{
		jerusalemAt(t, "2025-06-14T12:00"),
		jerusalemAt(t, "2025-06-15T12:00"),
	}

	bot := &recordingBot{}
	before := testutil.ToFloat64(metrics.RemindersSentTotal)
	sent, err := svc.SendReminders(ctx, bot)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RemindersSentTotal))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(1), bot.sent[0].ChatID)
	assert.Contains(t, bot.sent[0].Text, "3 days")

	// Второй проход в тот же день ничего не шлёт
	sent, err = svc.SendReminders(ctx, bot)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, bot.sent, 1)
}

func TestSendRemindersWaitsForEvening(t *testing.T) {
	// 13:00 в Иерусалиме
	svc, store := newTestService(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))
	store.events[1] = []time.Time{
		jerusalemAt(t, "2025-06-13T12:00"),
		jerusalemAt(t, "2025-06-14T12:00"),
		jerusalemAt(t, "2025-06-15T12:00"),
	}

	bot := &recordingBot{}
	sent, err := svc.SendReminders(context.Background(), bot)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, bot.sent)
}

func TestMilestone(t *testing.T) {
	for _, n := range Milestones {
		m, ok := Milestone(n)
		assert.True(t, ok)
		assert.Equal(t, n, m)
	}
	_, ok := Milestone(8)
	assert.False(t, ok)
	_, ok = Milestone(0)
	assert.False(t, ok)
}

func TestParseDoneArgs(t *testing.T) {
	tests := []struct {
		args     []string
		wantDate string
		wantNote string
	}{
		{nil, "", ""},
		{[]string{"gym"}, "", "gym"},
		{[]string{"2025-01-15", "run", "5k"}, "2025-01-15", "run 5k"},
		{[]string{"2025-01-15", "07:30"}, "2025-01-15T07:30", ""},
		{[]string{"2025-01-15", "07:30:15", "swim"}, "2025-01-15T07:30:15", "swim"},
		{[]string{"2025-01-15T07:30", "08:00"}, "2025-01-15T07:30", "08:00"},
	}
	for _, tt := range tests {
		date, note := ParseDoneArgs(tt.args)
		assert.Equal(t, tt.wantDate, date, "%v", tt.args)
		assert.Equal(t, tt.wantNote, note, "%v", tt.args)
	}
}
