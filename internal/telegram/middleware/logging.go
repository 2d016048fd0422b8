package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update before and after next runs
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next HandlerFunc) {
	start := time.Now()
	userID, chatID := updateOrigin(update)

	m.logger.Info("telegram update received",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", messageType(update)),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Duration("duration", time.Since(start)),
	)
}

func messageType(update tgbotapi.Update) string {
	switch {
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}
