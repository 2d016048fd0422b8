package middleware

import (
	"runtime/debug"

	"github.com/futig/idea-validator/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware recovers from panics and tells the user something went wrong
type RecoveryMiddleware struct {
	logger *zap.Logger
	sender Sender
}

func NewRecoveryMiddleware(logger *zap.Logger, sender Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		sender: sender,
	}
}

func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next HandlerFunc) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		m.logger.Error("panic recovered in telegram handler",
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())),
			zap.Int("update_id", update.UpdateID),
		)

		_, chatID := updateOrigin(update)
		if chatID == 0 {
			return
		}
		if _, err := m.sender.Send(tgbotapi.NewMessage(chatID, render.RenderInternalError())); err != nil {
			m.logger.Error("failed to send error message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}()

	next(update)
}
