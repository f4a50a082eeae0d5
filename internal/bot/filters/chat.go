// Package filters решает, какие сообщения бот вообще обрабатывает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// ChatFilter пропускает только личные сообщения от пользователей.
// Серии и пароли личные, поэтому в группах бот только подсказывает
// написать ему в личку.
type ChatFilter struct {
	bot common.Messenger
}

func NewChatFilter(bot common.Messenger) *ChatFilter {
	return &ChatFilter{bot: bot}
}

// CheckAccess возвращает true, если сообщение нужно обрабатывать.
// isCommand — распознал ли парсер в сообщении команду этому боту.
func (f *ChatFilter) CheckAccess(message *tgbotapi.Message, isCommand bool) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil || message.From.IsBot {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("deny: no human sender (service/channel message?)")
		return false
	}

	if message.Chat.IsPrivate() {
		return true
	}

	// В группе отвечаем только на явные команды, и то подсказкой
	if isCommand && f.bot != nil {
		reply := tgbotapi.NewMessage(message.Chat.ID, "👋 Let's talk in private: open a chat with me and send /start")
		reply.ReplyToMessageID = message.MessageID
		if _, err := f.bot.Send(reply); err != nil {
			log.WithError(err).WithField("chat_id", message.Chat.ID).Warn("failed to send private-only hint")
		}
	}
	log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
	}).Debug("deny: not a private chat")
	return false
}
