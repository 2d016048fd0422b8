package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/integration/common"
	pkghttp "github.com/futig/idea-validator/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const providerOpenAI = "openai"

// Connector calls an OpenAI compatible chat completion endpoint
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Provider() string { return providerOpenAI }

func (c *Connector) Model() string { return c.config.Model }

// CompleteJSON sends the prompt and returns the raw JSON text of the first choice
func (c *Connector) CompleteJSON(ctx context.Context, prompt entity.Prompt) (string, error) {
	ctxzap.Info(ctx, "requesting idea evaluation via chat completion",
		zap.String("model", c.config.Model),
	)

	req := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: prompt.System},
			{Role: entity.ChatRoleUser, Content: prompt.User},
		},
		ResponseFormat: &entity.ResponseFormat{Type: entity.ResponseFormatJSONObject},
		Temperature:    Temperature,
		MaxTokens:      MaxTokens,
	}

	var opts []pkghttp.RequestOpt
	if c.config.Organization != "" {
		opts = append(opts, pkghttp.WithHeader("OpenAI-Organization", c.config.Organization))
	}

	var resp entity.ChatCompletionResponse
	err := c.config.Retry.Do(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp, opts...)
	}, retry.RetryIf(isRetryable))
	if err != nil {
		return "", transportError(providerOpenAI, err)
	}

	if len(resp.Choices) == 0 {
		return "", transportError(providerOpenAI, errors.New("completion returned no choices"))
	}

	// Empty content is handed on and rejected by the normalizer as unparsable
	content := resp.Choices[0].Message.Content

	ctxzap.Info(ctx, "chat completion received",
		zap.String("completion_id", resp.ID),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}
