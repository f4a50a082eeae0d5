// Package admin — handlers.go обрабатывает /login, /logout, /stats и /remind.
// Команды принимаются только в личке (фильтр в bot).
package admin

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// Reminder рассылает напоминания немедленно. Реализуется streak.Service.
type Reminder interface {
	SendReminders(ctx context.Context, out common.Messenger) (int, error)
}

// Handler обрабатывает админ-команды.
type Handler struct {
	service  *Service
	reminder Reminder
	bot      common.Messenger
}

// NewHandler создаёт обработчик админ-команд.
func NewHandler(service *Service, reminder Reminder, bot common.Messenger) *Handler {
	return &Handler{service: service, reminder: reminder, bot: bot}
}

// HandleLogin обрабатывает /login <пароль>. Сообщение с паролем удаляется.
func (h *Handler) HandleLogin(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) > 0 {
		del := tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)
		if _, err := h.bot.Request(del); err != nil {
			log.WithError(err).Warn("Не удалось удалить сообщение с паролем")
		}
	}
	if len(args) != 1 {
		common.SendText(h.bot, msg.Chat.ID, "Usage: /login <password>")
		return
	}

	err := h.service.Login(ctx, msg.From.ID, args[0])
	switch {
	case err == nil:
		common.SendText(h.bot, msg.Chat.ID, "🔓 Logged in for 24 hours. Commands: /stats, /remind, /logout")
	case errors.Is(err, common.ErrNotAdmin):
		// не подсказываем, что команда существует
	case errors.Is(err, common.ErrWrongPassword):
		common.SendText(h.bot, msg.Chat.ID, "❌ Wrong password")
	case errors.Is(err, common.ErrTooManyAttempts):
		common.SendText(h.bot, msg.Chat.ID, "⛔ Too many attempts, try again in an hour")
	default:
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка входа администратора")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
	}
}

// HandleLogout обрабатывает /logout.
func (h *Handler) HandleLogout(ctx context.Context, msg *tgbotapi.Message) {
	if !h.authorize(ctx, msg) {
		return
	}
	if err := h.service.Logout(ctx, msg.From.ID); err != nil {
		log.WithError(err).Error("Ошибка выхода администратора")
	}
	common.SendText(h.bot, msg.Chat.ID, "🔒 Logged out")
}

// HandleStats обрабатывает /stats.
func (h *Handler) HandleStats(ctx context.Context, msg *tgbotapi.Message) {
	if !h.authorize(ctx, msg) {
		return
	}
	t, err := h.service.Totals(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения сводки")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
		return
	}
	common.SendText(h.bot, msg.Chat.ID, fmt.Sprintf(
		"📊 Totals\n\nUsers: %s\nActivities: %s\nQuiz answers: %s",
		common.FormatNumber(t.Members),
		common.FormatNumber(t.Activities),
		common.FormatNumber(t.QuizAnswers),
	))
}

// HandleRemind обрабатывает /remind — рассылка напоминаний вне расписания.
func (h *Handler) HandleRemind(ctx context.Context, msg *tgbotapi.Message) {
	if !h.authorize(ctx, msg) {
		return
	}
	sent, err := h.reminder.SendReminders(ctx, h.bot)
	if err != nil {
		log.WithError(err).Error("Ошибка ручной рассылки напоминаний")
		common.SendText(h.bot, msg.Chat.ID, "Reminder sweep failed, see logs.")
		return
	}
	common.SendText(h.bot, msg.Chat.ID, fmt.Sprintf("📨 Reminders sent: %d", sent))
}

// authorize отвечает пользователю сам, если доступа нет.
func (h *Handler) authorize(ctx context.Context, msg *tgbotapi.Message) bool {
	err := h.service.Authorize(ctx, msg.From.ID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, common.ErrNotAdmin):
	case errors.Is(err, common.ErrSessionExpired):
		common.SendText(h.bot, msg.Chat.ID, "🔐 Session expired, /login again")
	default:
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка проверки сессии")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
	}
	return false
}
