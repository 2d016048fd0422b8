package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/entity"
	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const providerGemini = "gemini"

// GeminiGenerator is satisfied by *genai.GenerativeModel
type GeminiGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiModelFactory returns a model configured with the given system instruction
type GeminiModelFactory func(system string) GeminiGenerator

// GeminiConnector requests evaluations from the Gemini API
type GeminiConnector struct {
	config   config.GeminiConfig
	client   *genai.Client
	newModel GeminiModelFactory
	logger   *zap.Logger
}

// NewGeminiConnector creates the client. The system instruction is a model
// setting, so a model handle is configured per call from the prompt.
func NewGeminiConnector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiConnector, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := newGeminiConnector(cfg, func(system string) GeminiGenerator {
		model := client.GenerativeModel(cfg.Model)
		model.SetTemperature(Temperature)
		model.SetMaxOutputTokens(MaxTokens)
		model.ResponseMIMEType = "application/json"
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
		return model
	}, logger)
	c.client = client
	return c, nil
}

func newGeminiConnector(cfg config.GeminiConfig, newModel GeminiModelFactory, logger *zap.Logger) *GeminiConnector {
	return &GeminiConnector{
		config:   cfg,
		newModel: newModel,
		logger:   logger,
	}
}

func (c *GeminiConnector) Provider() string { return providerGemini }

func (c *GeminiConnector) Model() string { return c.config.Model }

// CompleteJSON sends the prompt and returns the text parts of the first candidate
func (c *GeminiConnector) CompleteJSON(ctx context.Context, prompt entity.Prompt) (string, error) {
	ctxzap.Info(ctx, "requesting idea evaluation via gemini",
		zap.String("model", c.config.Model),
	)

	model := c.newModel(prompt.System)

	var resp *genai.GenerateContentResponse
	err := c.config.Retry.Do(ctx, func() error {
		var err error
		resp, err = model.GenerateContent(ctx, genai.Text(prompt.User))
		return err
	}, retry.RetryIf(isRetryable))
	if err != nil {
		return "", transportError(providerGemini, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", transportError(providerGemini, errors.New("gemini returned no candidates"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	content := stripCodeFences(sb.String())

	fields := []zap.Field{
		zap.String("finish_reason", resp.Candidates[0].FinishReason.String()),
		zap.Int("content_length", len(content)),
	}
	if resp.UsageMetadata != nil {
		fields = append(fields,
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}
	ctxzap.Info(ctx, "gemini response received", fields...)

	return content, nil
}

// Close releases the underlying gRPC connection
func (c *GeminiConnector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
