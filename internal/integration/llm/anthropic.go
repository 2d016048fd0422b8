package llm

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/avast/retry-go/v4"
	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	providerAnthropic = "anthropic"

	// Messages API has no JSON response format switch
	anthropicJSONInstruction = "Respond with a single JSON object only, without code fences or commentary."
)

// AnthropicMessager is the part of the SDK client the connector needs
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicConnector requests evaluations from the Anthropic Messages API
type AnthropicConnector struct {
	config   config.AnthropicConfig
	messages AnthropicMessager
	logger   *zap.Logger
}

func NewAnthropicConnector(cfg config.AnthropicConfig, logger *zap.Logger) *AnthropicConnector {
	// The SDK retries on its own; attempts are governed by cfg.Retry instead
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0))
	return newAnthropicConnector(cfg, &client.Messages, logger)
}

func newAnthropicConnector(cfg config.AnthropicConfig, messages AnthropicMessager, logger *zap.Logger) *AnthropicConnector {
	return &AnthropicConnector{
		config:   cfg,
		messages: messages,
		logger:   logger,
	}
}

func (c *AnthropicConnector) Provider() string { return providerAnthropic }

func (c *AnthropicConnector) Model() string { return c.config.Model }

// CompleteJSON sends the prompt and returns the concatenated text blocks
func (c *AnthropicConnector) CompleteJSON(ctx context.Context, prompt entity.Prompt) (string, error) {
	ctxzap.Info(ctx, "requesting idea evaluation via anthropic messages",
		zap.String("model", c.config.Model),
	)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   MaxTokens,
		System:      []anthropic.TextBlockParam{{Text: prompt.System + "\n\n" + anthropicJSONInstruction}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User))},
		Temperature: anthropic.Float(Temperature),
	}

	var resp *anthropic.Message
	err := c.config.Retry.Do(ctx, func() error {
		var err error
		resp, err = c.messages.New(ctx, params)
		return err
	}, retry.RetryIf(isRetryable))
	if err != nil {
		return "", transportError(providerAnthropic, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	content := stripCodeFences(sb.String())

	ctxzap.Info(ctx, "anthropic message received",
		zap.String("stop_reason", string(resp.StopReason)),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

// stripCodeFences removes a surrounding ```json fence some models add
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "JSON")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
