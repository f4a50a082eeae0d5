// Package members — handlers.go обрабатывает команду /timezone.
package members

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// Handler обрабатывает команды участников.
type Handler struct {
	service *Service
	bot     common.Messenger
}

// NewHandler создаёт новый обработчик.
func NewHandler(service *Service, bot common.Messenger) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleTimezone: "/timezone" показывает текущую зону, "/timezone Europe/Berlin" меняет её.
func (h *Handler) HandleTimezone(ctx context.Context, msg *tgbotapi.Message, args []string) {
	userID := msg.From.ID
	if len(args) == 0 {
		zone, _, err := h.service.Location(ctx, userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Не удалось прочитать зону")
			common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
			return
		}
		common.SendText(h.bot, msg.Chat.ID, fmt.Sprintf("Your timezone: %s\nChange it with /timezone Area/City", zone))
		return
	}

	zone := args[0]
	err := h.service.SetTimezone(ctx, userID, zone)
	switch {
	case err == nil:
		common.SendText(h.bot, msg.Chat.ID, "Timezone set to "+zone)
	case errors.Is(err, common.ErrInvalidTimezone):
		common.SendText(h.bot, msg.Chat.ID, "Unknown timezone. Use an IANA name like Europe/Berlin.")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Не удалось сменить зону")
		common.SendText(h.bot, msg.Chat.ID, "Something went wrong, try again later.")
	}
}
