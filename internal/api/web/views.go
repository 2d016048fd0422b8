package web

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
)

const flashError = "error"

type flash struct {
	Category string
	Message  string
}

// formView backs index.html
type formView struct {
	Idea      string
	Errors    []string
	Flashes   []flash
	MinLength int
	MaxLength int
}

func newFormView(idea string) formView {
	return formView{
		Idea:      idea,
		MinLength: entity.MinIdeaLength,
		MaxLength: entity.MaxIdeaLength,
	}
}

type listView struct {
	Title string
	Items []string
}

type criterionView struct {
	Title     string
	Score     string
	Rating    string
	Tone      entity.Tone
	Percent   int
	Reasoning string
	Lists     []listView
}

// resultsView backs results.html
type resultsView struct {
	Idea              string
	OverallScore      string
	OverallAssessment string
	Grade             entity.Grade
	Criteria          []criterionView
	Formats           []entity.ReportFormat
	EvaluationJSON    string
	Footer            string
	Flashes           []flash
}

func newResultsView(ev *entity.Evaluation) (resultsView, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return resultsView{}, fmt.Errorf("marshal evaluation: %w", err)
	}

	v := resultsView{
		Idea:           ev.Idea,
		OverallScore:   formatter.FormatScore(ev.Result.OverallScore),
		Grade:          entity.GradeFor(ev.Result.OverallScore),
		Formats:        entity.ReportFormats,
		EvaluationJSON: string(payload),
	}
	if ev.Result.OverallAssessment != nil {
		v.OverallAssessment = *ev.Result.OverallAssessment
	}
	if ev.Provider != "" {
		v.Footer = fmt.Sprintf("Evaluated by %s (%s)", ev.Provider, ev.Model)
	}

	for _, c := range entity.Criteria {
		ce := ev.Result.Criterion(c)
		if ce == nil {
			continue
		}
		v.Criteria = append(v.Criteria, criterionView{
			Title:     c.Label(),
			Score:     formatter.FormatScore(ce.Score),
			Rating:    entity.RatingFor(ce.Score),
			Tone:      entity.ToneFor(ce.Score),
			Percent:   int(math.Round(ce.Score * 10)),
			Reasoning: ce.ReasoningText(),
			Lists: []listView{
				{Title: "Strengths", Items: ce.Strengths},
				{Title: "Weaknesses", Items: ce.Weaknesses},
				{Title: "Recommendations", Items: ce.Recommendations},
			},
		})
	}

	return v, nil
}
