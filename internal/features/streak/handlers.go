// Package streak — handlers.go обрабатывает команды /done и /streak.
package streak

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// Handler обрабатывает команды серий.
type Handler struct {
	service *Service
	bot     common.Messenger
}

// NewHandler создаёт новый обработчик.
func NewHandler(service *Service, bot common.Messenger) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleDone обрабатывает /done [YYYY-MM-DD [HH:MM]] [заметка].
//
// Ответ:
//
//	✅ Logged 15.01.2025 14:30
//	🔥 Current streak: 5 days
//	🏆 Longest streak: 12 days
func (h *Handler) HandleDone(ctx context.Context, msg *tgbotapi.Message, args []string) {
	rawDate, note := ParseDoneArgs(args)

	logged, err := h.service.LogActivity(ctx, msg.From.ID, rawDate, note)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidDate):
		common.SendText(h.bot, msg.Chat.ID, "I couldn't read that date. Use YYYY-MM-DD or YYYY-MM-DD HH:MM.")
		return
	case errors.Is(err, common.ErrFutureDate):
		common.SendText(h.bot, msg.Chat.ID, "That date is in the future.")
		return
	default:
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка записи активности")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Logged %s\n", common.FormatDateTime(logged.At, logged.Loc))
	writeSummary(&b, &logged.Summary)
	if m, ok := Milestone(logged.Summary.Current); ok {
		fmt.Fprintf(&b, "\n🎉 %s in a row. Milestone reached!", common.FormatDays(m))
	}
	common.SendText(h.bot, msg.Chat.ID, b.String())
}

// HandleStreak обрабатывает /streak.
func (h *Handler) HandleStreak(ctx context.Context, msg *tgbotapi.Message) {
	summary, err := h.service.Stats(ctx, msg.From.ID)
	if err != nil {
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка подсчёта серии")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
		return
	}
	if summary.Total == 0 {
		common.SendText(h.bot, msg.Chat.ID, "No activity yet. Log your first one with /done")
		return
	}

	var b strings.Builder
	writeSummary(&b, summary)
	if !summary.ActiveToday && summary.Current > 0 {
		b.WriteString("\n⏳ Not logged today yet.")
	}
	if summary.LastDay != "" {
		fmt.Fprintf(&b, "\n📅 Last logged %s", summary.LastDay)
	}
	fmt.Fprintf(&b, "\n🌍 Days are counted in %s", summary.Zone)
	common.SendText(h.bot, msg.Chat.ID, b.String())
}

func writeSummary(b *strings.Builder, s *Summary) {
	fmt.Fprintf(b, "🔥 Current streak: %s\n", common.FormatDays(s.Current))
	fmt.Fprintf(b, "🏆 Longest streak: %s", common.FormatDays(s.Longest))
}
