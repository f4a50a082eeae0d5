package common

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Messenger — часть *tgbotapi.BotAPI, которая нужна обработчикам.
// В тестах подменяется записывающей заглушкой.
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SendText отправляет простое текстовое сообщение и логирует ошибку.
func SendText(m Messenger, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := m.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
