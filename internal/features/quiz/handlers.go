// Package quiz — handlers.go обрабатывает /quiz, /quizstats и нажатия на варианты.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// Handler обрабатывает команды квиза.
type Handler struct {
	service *Service
	bot     common.Messenger
}

// NewHandler создаёт новый обработчик.
func NewHandler(service *Service, bot common.Messenger) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleQuiz задаёт новый вопрос с кнопками вариантов, по одной в ряд.
func (h *Handler) HandleQuiz(ctx context.Context, msg *tgbotapi.Message) {
	round, err := h.service.NewRound(ctx, msg.From.ID)
	if err != nil {
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка создания раунда")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(round.Options))
	for i, option := range round.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, FormatCallback(round.ID, i)),
		))
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, round.Question())
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(reply); err != nil {
		log.WithError(err).Error("Ошибка отправки вопроса")
	}
}

// HandleCallback обрабатывает нажатие на вариант ответа.
func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	roundID, option, err := ParseCallback(cq.Data)
	if err != nil {
		h.answerCallback(cq.ID, "Unknown button")
		return
	}

	res, err := h.service.Answer(ctx, cq.From.ID, roundID, option)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrRoundAnswered):
		h.answerCallback(cq.ID, "Already answered")
		return
	case errors.Is(err, common.ErrRoundNotFound), errors.Is(err, common.ErrBadOption):
		h.answerCallback(cq.ID, "This question is no longer available")
		return
	default:
		log.WithError(err).WithField("user_id", cq.From.ID).Error("Ошибка приёма ответа")
		h.answerCallback(cq.ID, "Something went wrong")
		return
	}

	var b strings.Builder
	if cq.Message != nil {
		b.WriteString(cq.Message.Text)
		b.WriteString("\n\n")
	}
	if res.Correct {
		fmt.Fprintf(&b, "✅ %s is right!", res.Answer)
		h.answerCallback(cq.ID, "Correct!")
	} else {
		fmt.Fprintf(&b, "❌ %s is wrong. The answer is %s.", res.Selected, res.Answer)
		h.answerCallback(cq.ID, "Wrong")
	}
	fmt.Fprintf(&b, "\n🔥 Streak: %s", common.FormatAnswers(res.Streak.Current))

	// Убираем клавиатуру, заменяя текст вопроса итогом
	if cq.Message != nil {
		edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, b.String())
		if _, err := h.bot.Send(edit); err != nil {
			log.WithError(err).Warn("Не удалось обновить сообщение с вопросом")
		}
	}
}

// HandleStats обрабатывает /quizstats.
func (h *Handler) HandleStats(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := h.service.Stats(ctx, msg.From.ID)
	if err != nil {
		log.WithError(err).WithField("user_id", msg.From.ID).Error("Ошибка подсчёта статистики квиза")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
		return
	}
	if stats.Answered == 0 {
		common.SendText(h.bot, msg.Chat.ID, "No answers yet. Try /quiz")
		return
	}

	text := fmt.Sprintf(
		"🧠 Quiz stats\n\nAnswered: %d (right: %d)\n🔥 Current streak: %s\n🏆 Longest streak: %s",
		stats.Answered, stats.Right,
		common.FormatAnswers(stats.Current),
		common.FormatAnswers(stats.Longest),
	)
	common.SendText(h.bot, msg.Chat.ID, text)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.WithError(err).Warn("Не удалось ответить на callback")
	}
}
