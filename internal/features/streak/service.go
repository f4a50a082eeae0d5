// Package streak — service.go содержит бизнес-логику серий активности:
// запись отметок, подсчёт серии в зоне пользователя и вечерние напоминания.
package streak

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/cache"
	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/metrics"
)

// Store — хранилище активностей. *Repository его реализует.
type Store interface {
	Add(ctx context.Context, a *Activity) error
	ListAll(ctx context.Context, userID int64) ([]time.Time, error)
	ListUsersWithActivitySince(ctx context.Context, since time.Time) ([]int64, error)
	Count(ctx context.Context) (int64, error)
}

// Zones отдаёт часовую зону пользователя. Реализуется members.Service.
type Zones interface {
	Location(ctx context.Context, userID int64) (string, *time.Location, error)
}

// Service управляет сериями активности.
type Service struct {
	repo     Store
	zones    Zones
	notified cache.NotifiedSet
	cfg      *config.Config
	now      func() time.Time
}

// NewService создаёт новый сервис серий.
func NewService(repo Store, zones Zones, notified cache.NotifiedSet, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		zones:    zones,
		notified: notified,
		cfg:      cfg,
		now:      time.Now,
	}
}

// LogActivity записывает отметку и возвращает обновлённую серию.
// Пустая дата — "сейчас", иначе дата разбирается как местное время
// пользователя. Будущие даты отклоняются с common.ErrFutureDate.
func (s *Service) LogActivity(ctx context.Context, userID int64, rawDate, note string) (*Logged, error) {
	zone, loc, err := s.zones.Location(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	at := now.UTC()
	if rawDate = strings.TrimSpace(rawDate); rawDate != "" {
		at, err = common.ParseLocalTime(rawDate, zone)
		if err != nil {
			return nil, err
		}
		if at.After(now) {
			return nil, fmt.Errorf("%w: %s", common.ErrFutureDate, rawDate)
		}
	}

	a := &Activity{UserID: userID, OccurredAt: at, Note: strings.TrimSpace(note)}
	if err := s.repo.Add(ctx, a); err != nil {
		return nil, err
	}
	metrics.ActivitiesLoggedTotal.Inc()

	log.WithFields(log.Fields{
		"user_id":     userID,
		"occurred_at": at.Format(time.RFC3339),
	}).Debug("Активность записана")

	summary, err := s.summary(ctx, userID, zone, loc)
	if err != nil {
		return nil, err
	}
	return &Logged{At: at, Loc: loc, Summary: *summary}, nil
}

// Stats возвращает текущую и лучшую серию пользователя.
func (s *Service) Stats(ctx context.Context, userID int64) (*Summary, error) {
	zone, loc, err := s.zones.Location(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, userID, zone, loc)
}

func (s *Service) summary(ctx context.Context, userID int64, zone string, loc *time.Location) (*Summary, error) {
	timestamps, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	calc := NewCalculator(loc, s.now)
	started := time.Now()
	res := calc.Calculate(timestamps)
	metrics.StreakCalculationSeconds.WithLabelValues("days").Observe(time.Since(started).Seconds())

	summary := &Summary{
		Result:      res,
		ActiveToday: calc.ActiveToday(timestamps),
		Zone:        zone,
		Total:       len(timestamps),
	}
	var last time.Time
	for _, ts := range timestamps {
		if ts.After(last) {
			last = ts
		}
	}
	if !last.IsZero() {
		summary.LastDay = common.FormatDate(last, loc)
	}
	return summary, nil
}

// SendReminders напоминает пользователям с живой серией, которые ещё
// не отметились сегодня. Каждому не больше одного напоминания за местный день.
// Возвращает число отправленных напоминаний.
func (s *Service) SendReminders(ctx context.Context, out common.Messenger) (int, error) {
	// Живая серия = отметка сегодня или вчера по местному времени,
	// а начало вчерашнего дня в любой зоне не дальше 48 часов назад.
	users, err := s.repo.ListUsersWithActivitySince(ctx, s.now().Add(-48*time.Hour))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		ok, err := s.remindOne(ctx, out, userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка напоминания")
			continue
		}
		if ok {
			sent++
		}
	}

	log.WithFields(log.Fields{"candidates": len(users), "sent": sent}).Info("Напоминания разосланы")
	return sent, nil
}

func (s *Service) remindOne(ctx context.Context, out common.Messenger, userID int64) (bool, error) {
	_, loc, err := s.zones.Location(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now()
	if now.In(loc).Hour() < s.cfg.StreakReminderHour {
		return false, nil
	}

	timestamps, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return false, err
	}
	calc := NewCalculator(loc, s.now)
	if calc.ActiveToday(timestamps) {
		return false, nil
	}
	res := calc.Calculate(timestamps)
	if res.Current < s.cfg.StreakReminderThreshold {
		return false, nil
	}

	key := fmt.Sprintf("reminder:%d:%s", userID, common.DayKey(now, loc))
	first, err := s.notified.MarkIfNew(ctx, key)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	text := fmt.Sprintf("🔥 Your streak is %s. Log today with /done to keep it going!", common.FormatDays(res.Current))
	if _, err := out.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		return false, fmt.Errorf("ошибка отправки напоминания: %w", err)
	}
	metrics.RemindersSentTotal.Inc()
	return true, nil
}

// Count — всего отметок.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
