package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/features/streak"
)

type answerRow struct {
	userID  int64
	outcome streak.Outcome
}

type fakeStore struct {
	now     time.Time
	rounds  map[uuid.UUID]*Round
	answers []answerRow
}

func (f *fakeStore) CreateRound(_ context.Context, round *Round) error {
	round.CreatedAt = f.now
	cp := *round
	f.rounds[round.ID] = &cp
	return nil
}

func (f *fakeStore) GetRound(_ context.Context, id uuid.UUID) (*Round, error) {
	r, ok := f.rounds[id]
	if !ok {
		return nil, common.ErrRoundNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) SaveAnswer(_ context.Context, round *Round, selected, correct string, at time.Time) error {
	r := f.rounds[round.ID]
	if r.AnsweredAt != nil {
		return common.ErrRoundAnswered
	}
	r.AnsweredAt = &at
	f.answers = append(f.answers, answerRow{round.UserID, streak.Outcome{Selected: selected, Correct: correct}})
	return nil
}

func (f *fakeStore) ListOutcomes(_ context.Context, userID int64) ([]streak.Outcome, error) {
	var out []streak.Outcome
	for _, a := range f.answers {
		if a.userID == userID {
			out = append(out, a.outcome)
		}
	}
	return out, nil
}

func (f *fakeStore) ListStale(_ context.Context, before time.Time) ([]*Round, error) {
	var out []*Round
	for _, r := range f.rounds {
		if r.AnsweredAt == nil && r.CreatedAt.Before(before) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) CountAnswers(context.Context) (int64, error) {
	return int64(len(f.answers)), nil
}

var testCatalogue = []Country{
	{"Israel", "Jerusalem", 31.77, 35.21},
	{"Jordan", "Amman", 31.95, 35.93},
	{"Lebanon", "Beirut", 33.89, 35.50},
	{"Egypt", "Cairo", 30.04, 31.24},
	{"Japan", "Tokyo", 35.68, 139.69},
}

func newTestService(absentAsCorrect bool) (*Service, *fakeStore) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{now: now, rounds: map[uuid.UUID]*Round{}}
	svc := NewService(store, &config.Config{QuizOptions: 4, QuizAbsentAsCorrect: absentAsCorrect})
	svc.catalogue = testCatalogue
	svc.now = func() time.Time { return now }
	svc.intn = func(int) int { return 0 }
	svc.shuffle = func(int, func(i, j int)) {}
	return svc, store
}

func TestNewRound(t *testing.T) {
	svc, store := newTestService(false)

	round, err := svc.NewRound(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Israel", round.Country)
	assert.Equal(t, "Jerusalem", round.Correct)
	assert.Equal(t, []string{"Jerusalem", "Amman", "Beirut", "Cairo"}, round.Options)
	assert.Contains(t, round.Question(), "Israel")
	assert.Contains(t, store.rounds, round.ID)
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	r1, err := svc.NewRound(ctx, 7)
	require.NoError(t, err)
	res, err := svc.Answer(ctx, 7, r1.ID, 0)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, streak.Result{Current: 1, Longest: 1}, res.Streak)

	_, err = svc.Answer(ctx, 7, r1.ID, 0)
	assert.ErrorIs(t, err, common.ErrRoundAnswered)

	r2, err := svc.NewRound(ctx, 7)
	require.NoError(t, err)
	res, err = svc.Answer(ctx, 7, r2.ID, 2)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "Beirut", res.Selected)
	assert.Equal(t, "Jerusalem", res.Answer)
	assert.Equal(t, streak.Result{Current: 0, Longest: 1}, res.Streak)

	stats, err := svc.Stats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Answered)
	assert.Equal(t, 1, stats.Right)
}

func TestAnswerRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)
	round, err := svc.NewRound(ctx, 7)
	require.NoError(t, err)

	_, err = svc.Answer(ctx, 8, round.ID, 0)
	assert.ErrorIs(t, err, common.ErrRoundNotFound, "чужой раунд")

	_, err = svc.Answer(ctx, 7, uuid.New(), 0)
	assert.ErrorIs(t, err, common.ErrRoundNotFound)

	_, err = svc.Answer(ctx, 7, round.ID, 4)
	assert.ErrorIs(t, err, common.ErrBadOption)
}

func TestCleanupStale(t *testing.T) {
	for _, tt := range []struct {
		name            string
		absentAsCorrect bool
		want            streak.Result
	}{
		{"absent is incorrect", false, streak.Result{Current: 0, Longest: 1}},
		{"absent is equal", true, streak.Result{Current: 2, Longest: 2}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, store := newTestService(tt.absentAsCorrect)

			answered, err := svc.NewRound(ctx, 7)
			require.NoError(t, err)
			_, err = svc.Answer(ctx, 7, answered.ID, 0)
			require.NoError(t, err)

			abandoned, err := svc.NewRound(ctx, 7)
			require.NoError(t, err)
			store.rounds[abandoned.ID].CreatedAt = store.now.Add(-48 * time.Hour)

			fresh, err := svc.NewRound(ctx, 7)
			require.NoError(t, err)

			closed, err := svc.CleanupStale(ctx, 24*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, 1, closed)
			assert.NotNil(t, store.rounds[abandoned.ID].AnsweredAt)
			assert.Nil(t, store.rounds[fresh.ID].AnsweredAt)

			stats, err := svc.Stats(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats.Result)

			_, err = svc.Answer(ctx, 7, abandoned.ID, 0)
			assert.ErrorIs(t, err, common.ErrRoundAnswered)
		})
	}
}
