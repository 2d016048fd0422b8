package middleware

import (
	"sync"
	"testing"

	"github.com/futig/idea-validator/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func update(userID int64) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID},
			Text: "an idea worth checking",
		},
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLoggingMiddleware(zap.New(core))

	called := false
	m.Handle(update(5), func(tgbotapi.Update) { called = true })

	assert.True(t, called)
	require.Equal(t, 2, logs.Len())
	received := logs.All()[0]
	assert.Equal(t, "telegram update received", received.Message)
	assert.Equal(t, "text", received.ContextMap()["type"])
	assert.Equal(t, "telegram update processed", logs.All()[1].Message)
}

func TestRecoveryMiddleware(t *testing.T) {
	sender := &fakeSender{}
	m := NewRecoveryMiddleware(zap.NewNop(), sender)

	assert.NotPanics(t, func() {
		m.Handle(update(5), func(tgbotapi.Update) { panic("boom") })
	})
	assert.Equal(t, []string{render.RenderInternalError()}, sender.texts)
}
