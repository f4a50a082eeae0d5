// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасные напоминания о сериях
// и закрытие брошенных раундов квиза.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

const (
	remindersSpec = "0 * * * *"
	cleanupSpec   = "*/10 * * * *"
)

// Reminders рассылает напоминания. Реализуется streak.Service.
type Reminders interface {
	SendReminders(ctx context.Context, out common.Messenger) (int, error)
}

// RoundCleaner закрывает брошенные раунды. Реализуется quiz.Service.
type RoundCleaner interface {
	CleanupStale(ctx context.Context, ttl time.Duration) (int, error)
}

// Options — что и как запускать. Пустое поле — задача не регистрируется.
type Options struct {
	Reminders Reminders
	Rounds    RoundCleaner
	RoundTTL  time.Duration
	Out       common.Messenger
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron *cron.Cron
	opts Options
	loc  *time.Location
}

// NewScheduler создаёт планировщик в зоне loc (APP_TIMEZONE).
// Если предыдущий запуск задачи ещё идёт, новый пропускается.
func NewScheduler(loc *time.Location, opts Options) *Scheduler {
	logger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{cron: c, opts: opts, loc: loc}
}

// Start регистрирует задачи и запускает планировщик.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.opts.Reminders != nil && s.opts.Out != nil {
		if _, err := s.cron.AddFunc(remindersSpec, func() { s.runReminders(ctx) }); err != nil {
			return fmt.Errorf("не удалось добавить задачу напоминаний: %w", err)
		}
	}
	if s.opts.Rounds != nil && s.opts.RoundTTL > 0 {
		if _, err := s.cron.AddFunc(cleanupSpec, func() { s.runCleanup(ctx) }); err != nil {
			return fmt.Errorf("не удалось добавить задачу очистки раундов: %w", err)
		}
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"tz":   s.loc.String(),
		"jobs": len(s.cron.Entries()),
	}).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) runReminders(ctx context.Context) {
	log.Debug("[CRON] Проверка напоминаний")
	if _, err := s.opts.Reminders.SendReminders(ctx, s.opts.Out); err != nil {
		log.WithError(err).Error("[CRON] Ошибка напоминаний")
	}
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	log.Debug("[CRON] Закрытие брошенных раундов")
	if _, err := s.opts.Rounds.CleanupStale(ctx, s.opts.RoundTTL); err != nil {
		log.WithError(err).Error("[CRON] Ошибка закрытия раундов")
	}
}
