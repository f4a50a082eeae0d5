// Package metrics объявляет Prometheus-метрики бота.
// Регистрация — один раз из main через Init.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Telegram updates received, by kind",
		},
		[]string{"kind"},
	)
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Commands routed, by command name",
		},
		[]string{"command"},
	)
	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_rate_limited_total",
			Help: "Updates dropped by the per-user rate limiter",
		},
	)
	RemindersSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_reminders_sent_total",
			Help: "Streak reminders delivered",
		},
	)
	ActivitiesLoggedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_activities_logged_total",
			Help: "Activity events stored",
		},
	)
	QuizAnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_total",
			Help: "Quiz answers, by result (correct, wrong, expired)",
		},
		[]string{"result"},
	)
	StreakCalculationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streak_calculation_seconds",
			Help:    "Time spent computing streaks, by mode (days, answers)",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"mode"},
	)
)

var registerOnce sync.Once

// Init регистрирует метрики в реестре по умолчанию. Повторный вызов безопасен.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UpdatesTotal,
			CommandsTotal,
			RateLimitedTotal,
			RemindersSentTotal,
			ActivitiesLoggedTotal,
			QuizAnswersTotal,
			StreakCalculationSeconds,
		)
	})
}
