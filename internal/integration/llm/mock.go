package llm

import (
	"context"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	providerMock = "mock"
	mockModel    = "canned-evaluation"
)

// mockEvaluation omits overall_score so the normalizer computes it (7.0)
const mockEvaluation = `{
  "profitability": {
    "score": 7,
    "reasoning": "Recurring revenue is plausible and margins on physical goods can be healthy once volume grows.",
    "strengths": ["Predictable subscription revenue", "Low upfront inventory"],
    "weaknesses": ["Shipping costs eat into margins"],
    "recommendations": ["Test pricing tiers with an early waitlist"]
  },
  "demand": {
    "score": 8,
    "reasoning": "The target audience is underserved and actively looks for products like this.",
    "strengths": ["Clear niche audience"],
    "weaknesses": ["Market size is limited"],
    "recommendations": ["Validate demand with a landing page before building"]
  },
  "execution": {
    "score": 6,
    "reasoning": "Sourcing and logistics are manageable but require partnerships.",
    "strengths": ["Simple product scope"],
    "weaknesses": ["Supplier dependency"],
    "recommendations": ["Secure two suppliers before launch"]
  },
  "overall_assessment": "A focused niche idea with real demand. Start small and validate pricing early."
}`

// MockConnector returns a canned evaluation without calling any service
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Provider() string { return providerMock }

func (m *MockConnector) Model() string { return mockModel }

func (m *MockConnector) CompleteJSON(ctx context.Context, prompt entity.Prompt) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting idea evaluation",
		zap.Int("prompt_length", len(prompt.User)),
	)

	if err := ctx.Err(); err != nil {
		return "", transportError(providerMock, err)
	}

	return mockEvaluation, nil
}
