package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// typingInterval is below the five seconds a chat action stays visible
const typingInterval = 4 * time.Second

// Requester performs Telegram API calls that return no message
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// TypingNotifier keeps the "typing" action visible while an evaluation runs
type TypingNotifier struct {
	api    Requester
	chatID int64
	done   chan struct{}
	logger *zap.Logger
}

func NewTypingNotifier(api Requester, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		api:    api,
		chatID: chatID,
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start sends the first action immediately and repeats it until Stop or ctx is done
func (t *TypingNotifier) Start(ctx context.Context) {
	t.send()

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.send()
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop must be called once after Start
func (t *TypingNotifier) Stop() {
	close(t.done)
}

func (t *TypingNotifier) send() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.api.Request(action); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
