package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsecase struct {
	evaluation *entity.Evaluation
	err        error
	got        string
}

func (f *fakeUsecase) Evaluate(_ context.Context, rawIdea string) (*entity.Evaluation, error) {
	f.got = rawIdea
	return f.evaluation, f.err
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func sampleEvaluation() *entity.Evaluation {
	return &entity.Evaluation{
		ID:   "3f2b8c1e-4d5a-4b6c-9e7f-0a1b2c3d4e5f",
		Idea: "A subscription box for left-handed scissors",
		Result: &entity.EvaluationResult{
			Execution:    &entity.CriterionEvaluation{Score: 7, Strengths: []string{}, Weaknesses: []string{}, Recommendations: []string{}},
			OverallScore: 7,
		},
	}
}

func TestDefinition(t *testing.T) {
	def := NewValidateTool(&fakeUsecase{}, zap.NewNop()).Definition()

	assert.Equal(t, "validate_business_idea", def.Name)
	assert.Contains(t, def.InputSchema.Properties, "business_idea")
	assert.Contains(t, def.InputSchema.Properties, "output")
	assert.Equal(t, []string{"business_idea"}, def.InputSchema.Required)
}

func TestHandle_Markdown(t *testing.T) {
	uc := &fakeUsecase{evaluation: sampleEvaluation()}
	tool := NewValidateTool(uc, zap.NewNop())

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"business_idea": "A subscription box for left-handed scissors",
	}))

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "A subscription box for left-handed scissors", uc.got)
	assert.Contains(t, resultText(t, res), "## Execution Ease: 7.0/10")
}

func TestHandle_JSON(t *testing.T) {
	tool := NewValidateTool(&fakeUsecase{evaluation: sampleEvaluation()}, zap.NewNop())

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"business_idea": "A subscription box for left-handed scissors",
		"output":        "json",
	}))

	require.NoError(t, err)
	var got entity.Evaluation
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, 7.0, got.Result.OverallScore)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &entity.ValidationError{Field: "business_idea", Message: entity.MsgIdeaRequired}, entity.MsgIdeaRequired},
		{"transport", fmt.Errorf("%w: openai: secret detail", entity.ErrTransport), entity.MsgProcessingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewValidateTool(&fakeUsecase{err: tt.err}, zap.NewNop())

			res, err := tool.Handle(context.Background(), makeReq(map[string]any{}))

			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Equal(t, tt.want, resultText(t, res))
		})
	}
}

func TestHandle_UnsupportedOutput(t *testing.T) {
	uc := &fakeUsecase{}
	tool := NewValidateTool(uc, zap.NewNop())

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"business_idea": "A subscription box for left-handed scissors",
		"output":        "pdf",
	}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, uc.got)
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(&fakeUsecase{}, zap.NewNop()))
}
