package render

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func criterion(score float64, reasoning string, items int) *entity.CriterionEvaluation {
	list := make([]string, items)
	for i := range list {
		list[i] = fmt.Sprintf("point %d with <tags> & details", i)
	}
	return &entity.CriterionEvaluation{
		Score:           score,
		Reasoning:       strPtr(reasoning),
		Strengths:       list,
		Weaknesses:      list,
		Recommendations: list,
	}
}

func TestRenderEvaluation_EscapesHTML(t *testing.T) {
	ev := &entity.Evaluation{
		Result: &entity.EvaluationResult{
			Profitability:     criterion(8, "Margins <b>look</b> fine", 1),
			Demand:            &entity.CriterionEvaluation{Score: 3},
			OverallScore:      5.5,
			OverallAssessment: strPtr("Risky & niche"),
		},
	}

	text := RenderEvaluation(ev)

	assert.Contains(t, text, "<b>Overall: 5.5/10</b> (C)")
	assert.Contains(t, text, "Margins &lt;b&gt;look&lt;/b&gt; fine")
	assert.Contains(t, text, "Risky &amp; niche")
	assert.Contains(t, text, "• point 0 with &lt;tags&gt; &amp; details")
	assert.Contains(t, text, "🔴 <b>Market Demand: 3.0/10</b> ▓▓▓░░░░░░░")
	assert.Contains(t, text, entity.NoReasoningText)
	assert.NotContains(t, text, "Execution Ease")
}

func TestRenderEvaluation_CompactWhenTooLong(t *testing.T) {
	long := strings.Repeat("word ", 400)
	ev := &entity.Evaluation{
		Result: &entity.EvaluationResult{
			Profitability:     criterion(8, long, 10),
			Demand:            criterion(6, long, 10),
			Execution:         criterion(7, long, 10),
			OverallScore:      7,
			OverallAssessment: strPtr(long),
		},
	}

	text := RenderEvaluation(ev)

	assert.LessOrEqual(t, utf8.RuneCountInString(text), MaxMessageLength)
	assert.NotContains(t, text, "Strengths")
	assert.Contains(t, text, "…")
	assert.Contains(t, text, "Execution Ease: 7.0/10")
}

func TestRenderError(t *testing.T) {
	assert.Equal(t, "❌ "+entity.MsgIdeaRequired,
		RenderError(&entity.ValidationError{Field: "business_idea", Message: entity.MsgIdeaRequired}))
	assert.Equal(t, "❌ "+entity.MsgProcessingFailed,
		RenderError(fmt.Errorf("%w: upstream 500", entity.ErrTransport)))
}

func TestRenderScoreBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", renderScoreBar(0))
	assert.Equal(t, "▓▓▓▓▓▓▓░░░", renderScoreBar(7.3))
	assert.Equal(t, "▓▓▓▓▓▓▓▓▓▓", renderScoreBar(10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefghij", 5))
}
