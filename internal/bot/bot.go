// Package bot содержит главный модуль бота: polling, фильтры и маршрутизацию.
// bot.go принимает апдейты и раздаёт их обработчикам фич.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/bot/filters"
	"streak-bot/internal/bot/middleware"
	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/features/admin"
	"streak-bot/internal/features/members"
	"streak-bot/internal/features/quiz"
	"streak-bot/internal/features/streak"
	"streak-bot/internal/metrics"
)

const helpText = `Hi! I keep track of your streaks.

/done [YYYY-MM-DD [HH:MM]] [note] - log today's activity (or a past one)
/streak - current and longest streak
/timezone [Area/City] - show or change the timezone days are counted in
/quiz - capital cities quiz
/quizstats - your quiz streak`

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	out common.Messenger
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	memberService *members.Service

	memberHandler *members.Handler
	streakHandler *streak.Handler
	quizHandler   *quiz.Handler
	adminHandler  *admin.Handler

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	memberHandler *members.Handler,
	streakHandler *streak.Handler,
	quizHandler *quiz.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:           api,
		out:           api,
		cfg:           cfg,
		chatFilter:    chatFilter,
		rateLimiter:   middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		memberService: memberService,
		memberHandler: memberHandler,
		streakHandler: streakHandler,
		quizHandler:   quizHandler,
		adminHandler:  adminHandler,
		parser:        NewCommandParser(api.Self.UserName),
		inflight:      make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram и блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) {
	defer b.rateLimiter.Close()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"bot":          b.api.Self.UserName,
		"max_inflight": cap(b.inflight),
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.drain()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.drain()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// drain ждёт завершения уже запущенных обработчиков.
func (b *Bot) drain() {
	for i := 0; i < cap(b.inflight); i++ {
		b.inflight <- struct{}{}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	switch {
	case update.CallbackQuery != nil:
		metrics.UpdatesTotal.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		metrics.UpdatesTotal.WithLabelValues("message").Inc()
		b.handleMessage(ctx, update.Message)
	default:
		metrics.UpdatesTotal.WithLabelValues("other").Inc()
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	middleware.LogMessage(message)

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !b.chatFilter.CheckAccess(message, isCommand) {
		return
	}
	if !isCommand {
		common.SendText(b.out, message.Chat.ID, "Send /help to see what I can do.")
		return
	}

	if !b.rateLimiter.Allow(message.From.ID) {
		metrics.RateLimitedTotal.Inc()
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	if err := b.memberService.EnsureMember(ctx, message.From.ID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", message.From.ID).Warn("EnsureMember failed")
	}

	b.routeCommand(ctx, message, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, message *tgbotapi.Message, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":     cmd,
		"user_id": message.From.ID,
	}).Debug("routing command")

	switch cmd {
	case "start", "help":
		common.SendText(b.out, message.Chat.ID, helpText)

	case "done":
		b.streakHandler.HandleDone(ctx, message, args)
	case "streak":
		b.streakHandler.HandleStreak(ctx, message)
	case "timezone", "tz":
		b.memberHandler.HandleTimezone(ctx, message, args)

	case "quiz":
		if !b.cfg.FeatureQuizEnabled {
			common.SendText(b.out, message.Chat.ID, "🧠 Quiz is disabled for now")
			return
		}
		b.quizHandler.HandleQuiz(ctx, message)
	case "quizstats":
		if b.cfg.FeatureQuizEnabled {
			b.quizHandler.HandleStats(ctx, message)
		}

	case "login":
		b.adminHandler.HandleLogin(ctx, message, args)
	case "logout":
		b.adminHandler.HandleLogout(ctx, message)
	case "stats":
		b.adminHandler.HandleStats(ctx, message)
	case "remind":
		b.adminHandler.HandleRemind(ctx, message)

	default:
		metrics.CommandsTotal.WithLabelValues("unknown").Inc()
		common.SendText(b.out, message.Chat.ID, "Unknown command. Send /help")
		return
	}
	metrics.CommandsTotal.WithLabelValues(cmd).Inc()
}

// handleCallback направляет нажатия inline-кнопок по префиксу data.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	middleware.LogCallback(cq)
	if cq.From == nil {
		return
	}

	if !b.rateLimiter.Allow(cq.From.ID) {
		metrics.RateLimitedTotal.Inc()
		if _, err := b.out.Request(tgbotapi.NewCallback(cq.ID, "Slow down a bit")); err != nil {
			log.WithError(err).Debug("callback answer failed")
		}
		return
	}

	switch {
	case strings.HasPrefix(cq.Data, quiz.CallbackPrefix) && b.cfg.FeatureQuizEnabled:
		b.quizHandler.HandleCallback(ctx, cq)
	default:
		if _, err := b.out.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.WithError(err).Debug("callback answer failed")
		}
	}
}
