package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/futig/idea-validator/internal/entity"
)

// section is one criterion of a report in display form
type section struct {
	Title           string
	Score           string
	Reasoning       string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

// report is the format independent view every formatter renders
type report struct {
	Title             string
	Idea              string
	OverallScore      string
	OverallAssessment string
	Sections          []section
	Footer            string
}

func buildReport(ev *entity.Evaluation) report {
	r := report{
		Title:        baseTitle,
		Idea:         ev.Idea,
		OverallScore: FormatScore(ev.Result.OverallScore),
	}
	if ev.Result.OverallAssessment != nil {
		r.OverallAssessment = *ev.Result.OverallAssessment
	}

	for _, c := range entity.Criteria {
		ce := ev.Result.Criterion(c)
		if ce == nil {
			continue
		}
		r.Sections = append(r.Sections, section{
			Title:           c.Label(),
			Score:           FormatScore(ce.Score),
			Reasoning:       ce.ReasoningText(),
			Strengths:       ce.Strengths,
			Weaknesses:      ce.Weaknesses,
			Recommendations: ce.Recommendations,
		})
	}

	if ev.Provider != "" {
		r.Footer = fmt.Sprintf("Evaluated by %s (%s)", ev.Provider, ev.Model)
		if !ev.CreatedAt.IsZero() {
			r.Footer += " on " + ev.CreatedAt.Format("2006-01-02 15:04 MST")
		}
	}

	return r
}

// FormatScore renders a score as "7.5/10"
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f/10", score)
}

// DecodeEvaluation parses an evaluation posted back for export. Scores are
// checked again since the payload round-trips through the client.
func DecodeEvaluation(data []byte) (*entity.Evaluation, error) {
	var ev entity.Evaluation
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidEvaluation, err)
	}
	if ev.Result == nil {
		return nil, fmt.Errorf("%w: missing result", entity.ErrInvalidEvaluation)
	}

	for _, c := range entity.Criteria {
		ce := ev.Result.Criterion(c)
		if ce != nil && (ce.Score < entity.MinScore || ce.Score > entity.MaxScore) {
			return nil, fmt.Errorf("%w: %s score out of range", entity.ErrInvalidEvaluation, c)
		}
	}

	return &ev, nil
}
