package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleEvaluation() *entity.Evaluation {
	return &entity.Evaluation{
		ID:       "3f2b8c1e-4d5a-4b6c-9e7f-0a1b2c3d4e5f",
		Idea:     "A subscription box for left-handed scissors",
		Provider: "openai",
		Model:    "gpt-4o",
		Result: &entity.EvaluationResult{
			Profitability: &entity.CriterionEvaluation{
				Score:           8,
				Reasoning:       strPtr("Loyal niche customers"),
				Strengths:       []string{"Recurring revenue"},
				Weaknesses:      []string{},
				Recommendations: []string{"Bundle accessories"},
			},
			Demand: &entity.CriterionEvaluation{
				Score:           6,
				Strengths:       []string{},
				Weaknesses:      []string{"Small market"},
				Recommendations: []string{},
			},
			OverallAssessment: strPtr("Viable niche subscription"),
			OverallScore:      7,
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory()

	for _, format := range entity.ReportFormats {
		fm, err := f.Create(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, fm.ContentType())
		assert.True(t, strings.HasPrefix(fm.FileExtension(), "."))
	}

	_, err := f.Create("xlsx")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestMarkdownFormatter_Format(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleEvaluation())
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Business Idea Evaluation")
	assert.Contains(t, md, "> A subscription box for left-handed scissors")
	assert.Contains(t, md, "**Overall score:** 7.0/10")
	assert.Contains(t, md, "## Profitability: 8.0/10")
	assert.Contains(t, md, "## Market Demand: 6.0/10")
	assert.Contains(t, md, entity.NoReasoningText)
	assert.Contains(t, md, "- Bundle accessories")
	assert.NotContains(t, md, "Execution Ease")
	assert.Contains(t, md, "Evaluated by openai (gpt-4o)")
}

func TestHTMLFormatter_EscapesRawHTML(t *testing.T) {
	ev := sampleEvaluation()
	ev.Idea = "A <script>alert(1)</script> marketplace for tutors"

	out, err := NewHTMLFormatter().Format(ev)
	require.NoError(t, err)

	page := string(out)
	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "<h1>Business Idea Evaluation</h1>")
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "<li>Recurring revenue</li>")
}

func TestPDFFormatter_Format(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleEvaluation())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDecodeEvaluation(t *testing.T) {
	md := []byte(`{"id":"x","idea":"A subscription box","result":{"demand":{"score":6,"strengths":[],"weaknesses":[],"recommendations":[]},"overall_score":6}}`)

	ev, err := DecodeEvaluation(md)
	require.NoError(t, err)
	assert.Equal(t, 6.0, ev.Result.Demand.Score)

	for _, bad := range []string{
		`not json`,
		`{"idea":"no result"}`,
		`{"result":{"demand":{"score":11}}}`,
	} {
		_, err := DecodeEvaluation([]byte(bad))
		assert.ErrorIs(t, err, entity.ErrInvalidEvaluation, bad)
	}
}

func TestFilename(t *testing.T) {
	ev := sampleEvaluation()

	assert.Equal(t, "idea-evaluation-3f2b8c1e.pdf", Filename(ev, NewPDFFormatter()))

	ev.ID = "../../etc/passwd"
	assert.Equal(t, "idea-evaluation.md", Filename(ev, NewMarkdownFormatter()))
}
