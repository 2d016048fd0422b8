package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers messages back to a chat
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// HandlerFunc processes a single update
type HandlerFunc func(update tgbotapi.Update)

// updateOrigin returns the user and chat an update came from
func updateOrigin(update tgbotapi.Update) (userID, chatID int64) {
	if update.Message != nil {
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		if update.Message.Chat != nil {
			chatID = update.Message.Chat.ID
		}
	}
	return userID, chatID
}
