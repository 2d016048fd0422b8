package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/integration/llm"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/futig/idea-validator/internal/usecase/evaluation"

// EvaluationUsecase validates an idea and asks the completion service to score it
type EvaluationUsecase struct {
	validator IdeaValidator
	connector LLMConnector
	timeout   time.Duration
	tracer    trace.Tracer
	logger    *zap.Logger
	now       func() time.Time
}

// NewUsecase creates the evaluation use case. A non-positive timeout leaves
// the call bounded only by ctx and the connector's own client timeout.
func NewUsecase(
	validator IdeaValidator,
	connector LLMConnector,
	timeout time.Duration,
	logger *zap.Logger,
) *EvaluationUsecase {
	return &EvaluationUsecase{
		validator: validator,
		connector: connector,
		timeout:   timeout,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
		now:       time.Now,
	}
}

// Evaluate runs one submission end to end. Invalid input fails before any
// outbound call is made.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, rawIdea string) (*entity.Evaluation, error) {
	ctx, span := uc.tracer.Start(ctx, "evaluation.Evaluate",
		trace.WithAttributes(
			attribute.String("llm.provider", uc.connector.Provider()),
			attribute.String("llm.model", uc.connector.Model()),
		),
	)
	defer span.End()

	result, idea, err := uc.evaluate(ctx, rawIdea)
	if err != nil {
		kind := entity.KindOf(err)
		span.SetAttributes(attribute.String("error.kind", kind.String()))
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		return nil, err
	}

	evaluation := &entity.Evaluation{
		ID:        uuid.New().String(),
		Idea:      idea,
		Provider:  uc.connector.Provider(),
		Model:     uc.connector.Model(),
		Result:    result,
		CreatedAt: uc.now().UTC(),
	}

	span.SetAttributes(
		attribute.String("evaluation.id", evaluation.ID),
		attribute.Float64("evaluation.overall_score", result.OverallScore),
	)
	ctxzap.Info(ctx, "idea evaluated",
		zap.String("evaluation_id", evaluation.ID),
		zap.Float64("overall_score", result.OverallScore),
	)

	return evaluation, nil
}

func (uc *EvaluationUsecase) evaluate(ctx context.Context, rawIdea string) (*entity.EvaluationResult, string, error) {
	idea, err := uc.validator.ValidateIdea(rawIdea)
	if err != nil {
		ctxzap.Info(ctx, "idea rejected", zap.Error(err))
		return nil, "", err
	}

	ctxzap.Debug(ctx, "idea accepted", zap.Int("idea_length", len([]rune(idea))))

	prompt := llm.BuildPrompt(idea)

	callCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := uc.connector.CompleteJSON(callCtx, prompt)
	if err != nil {
		ctxzap.Error(ctx, "completion call failed",
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("evaluate idea: %w", err)
	}

	ctxzap.Info(ctx, "completion call finished",
		zap.Duration("duration", time.Since(started)),
		zap.Int("reply_length", len(raw)),
	)

	result, err := Normalize(raw)
	if err != nil {
		ctxzap.Error(ctx, "completion reply rejected",
			zap.String("error_kind", entity.KindOf(err).String()),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("normalize reply: %w", err)
	}

	return result, idea, nil
}
