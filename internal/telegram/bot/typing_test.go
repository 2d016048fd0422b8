package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTypingNotifier_SendsImmediately(t *testing.T) {
	api := newFakeAPI()
	n := NewTypingNotifier(api, 100, zap.NewNop())

	n.Start(context.Background())
	n.Stop()

	assert.Equal(t, 1, api.actionCount())
}
