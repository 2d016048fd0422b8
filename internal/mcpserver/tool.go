package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

const (
	toolName = "validate_business_idea"

	outputMarkdown = "markdown"
	outputJSON     = "json"
)

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, rawIdea string) (*entity.Evaluation, error)
}

// ValidateTool exposes idea evaluation as an MCP tool
type ValidateTool struct {
	usecase EvaluationUsecase
	logger  *zap.Logger
}

func NewValidateTool(usecase EvaluationUsecase, logger *zap.Logger) *ValidateTool {
	return &ValidateTool{usecase: usecase, logger: logger}
}

// Definition returns the MCP tool definition
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool(toolName,
		mcp.WithDescription(
			"Score a business idea from 0 to 10 on profitability, market demand and execution ease. "+
				"Returns reasoning, strengths, weaknesses and recommendations for each criterion.",
		),
		mcp.WithString("business_idea",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Description of the idea, %d to %d characters", entity.MinIdeaLength, entity.MaxIdeaLength)),
		),
		mcp.WithString("output",
			mcp.Description("Result format: markdown (default) or json"),
			mcp.Enum(outputMarkdown, outputJSON),
		),
	)
}

// Handle evaluates the idea. Failures are reported as tool errors so the
// client can show them, only validation errors carry details.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = ctxzap.ToContext(ctx, t.logger.With(zap.String("tool", toolName)))

	output := req.GetString("output", outputMarkdown)
	if output != outputMarkdown && output != outputJSON {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported output %q, use markdown or json", output)), nil
	}

	ev, err := t.usecase.Evaluate(ctx, req.GetString("business_idea", ""))
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			ctxzap.Info(ctx, "idea rejected", zap.Error(err))
		} else {
			ctxzap.Error(ctx, "evaluation failed",
				zap.Error(err),
				zap.String("kind", entity.KindOf(err).String()),
			)
		}
		return mcp.NewToolResultError(entity.UserMessage(err)), nil
	}

	if output == outputJSON {
		data, err := json.MarshalIndent(ev, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal evaluation: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	return mcp.NewToolResultText(formatter.RenderMarkdown(ev)), nil
}
