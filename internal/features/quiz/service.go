// Package quiz — service.go содержит логику раундов: выдача вопроса,
// приём ответа, серия верных ответов и закрытие брошенных раундов.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/features/streak"
	"streak-bot/internal/metrics"
)

// Store — хранилище раундов. *Repository его реализует.
type Store interface {
	CreateRound(ctx context.Context, round *Round) error
	GetRound(ctx context.Context, id uuid.UUID) (*Round, error)
	SaveAnswer(ctx context.Context, round *Round, selected, correct string, at time.Time) error
	ListOutcomes(ctx context.Context, userID int64) ([]streak.Outcome, error)
	ListStale(ctx context.Context, before time.Time) ([]*Round, error)
	CountAnswers(ctx context.Context) (int64, error)
}

// Service управляет квизом.
type Service struct {
	repo      Store
	catalogue []Country
	options   int
	policy    streak.AbsentPolicy

	now     func() time.Time
	intn    func(n int) int
	shuffle func(n int, swap func(i, j int))
}

// NewService создаёт сервис квиза.
func NewService(repo Store, cfg *config.Config) *Service {
	policy := streak.AbsentIsIncorrect
	if cfg.QuizAbsentAsCorrect {
		policy = streak.AbsentIsEqual
	}
	return &Service{
		repo:      repo,
		catalogue: Catalogue,
		options:   cfg.QuizOptions,
		policy:    policy,
		now:       time.Now,
		intn:      rand.IntN,
		shuffle:   rand.Shuffle,
	}
}

// NewRound выбирает случайную страну и сохраняет раунд с вариантами:
// правильная столица плюс столицы ближайших стран, в случайном порядке.
func (s *Service) NewRound(ctx context.Context, userID int64) (*Round, error) {
	if len(s.catalogue) == 0 {
		return nil, errors.New("пустой справочник стран")
	}
	country := s.catalogue[s.intn(len(s.catalogue))]

	options := append([]string{country.Capital}, Distractors(country, s.catalogue, s.options-1)...)
	s.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	round := &Round{
		ID:      uuid.New(),
		UserID:  userID,
		Country: country.Name,
		Correct: country.Capital,
		Options: options,
	}
	if err := s.repo.CreateRound(ctx, round); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"round":   round.ID,
		"country": country.Name,
	}).Debug("Новый раунд квиза")
	return round, nil
}

// Answer принимает выбор варианта option в раунде roundID.
// Чужой раунд неотличим от несуществующего (common.ErrRoundNotFound).
func (s *Service) Answer(ctx context.Context, userID int64, roundID uuid.UUID, option int) (*AnswerResult, error) {
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.UserID != userID {
		return nil, fmt.Errorf("round=%s: %w", roundID, common.ErrRoundNotFound)
	}
	if round.AnsweredAt != nil {
		return nil, fmt.Errorf("round=%s: %w", roundID, common.ErrRoundAnswered)
	}
	if option < 0 || option >= len(round.Options) {
		return nil, fmt.Errorf("option=%d: %w", option, common.ErrBadOption)
	}

	selected := round.Options[option]
	if err := s.repo.SaveAnswer(ctx, round, selected, round.Correct, s.now()); err != nil {
		return nil, err
	}

	correct := selected == round.Correct
	if correct {
		metrics.QuizAnswersTotal.WithLabelValues("correct").Inc()
	} else {
		metrics.QuizAnswersTotal.WithLabelValues("wrong").Inc()
	}

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{
		Correct:  correct,
		Selected: selected,
		Answer:   round.Correct,
		Streak:   stats.Result,
	}, nil
}

// Stats считает серию верных ответов по всем ответам пользователя.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	outcomes, err := s.repo.ListOutcomes(ctx, userID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res := streak.CorrectAnswerStreak(outcomes, s.policy)
	metrics.StreakCalculationSeconds.WithLabelValues("answers").Observe(time.Since(started).Seconds())

	right := 0
	for _, o := range outcomes {
		if o.Success(s.policy) {
			right++
		}
	}
	return &Stats{Result: res, Answered: len(outcomes), Right: right}, nil
}

// CleanupStale закрывает раунды без ответа старше ttl. Они записываются
// как попытки без ответа (оба значения пустые) и учитываются по AbsentPolicy.
// Возвращает число закрытых раундов.
func (s *Service) CleanupStale(ctx context.Context, ttl time.Duration) (int, error) {
	now := s.now()
	rounds, err := s.repo.ListStale(ctx, now.Add(-ttl))
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, round := range rounds {
		if err := ctx.Err(); err != nil {
			return closed, err
		}
		err := s.repo.SaveAnswer(ctx, round, "", "", now)
		switch {
		case err == nil:
			closed++
			metrics.QuizAnswersTotal.WithLabelValues("expired").Inc()
		case errors.Is(err, common.ErrRoundAnswered):
			// пользователь успел ответить
		default:
			log.WithError(err).WithField("round", round.ID).Error("Не удалось закрыть раунд")
		}
	}

	if closed > 0 {
		log.WithField("closed", closed).Info("Брошенные раунды квиза закрыты")
	}
	return closed, nil
}

// Count — всего ответов.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.CountAnswers(ctx)
}
