package entity

import "time"

const (
	MinIdeaLength = 10
	MaxIdeaLength = 2000

	MinScore = 0
	MaxScore = 10
)

// Criterion names one of the evaluated dimensions of an idea
type Criterion string

const (
	CriterionProfitability Criterion = "profitability"
	CriterionDemand        Criterion = "demand"
	CriterionExecution     Criterion = "execution"
)

// Criteria lists the evaluated dimensions in presentation order
var Criteria = []Criterion{
	CriterionProfitability,
	CriterionDemand,
	CriterionExecution,
}

// Label returns the human readable criterion title
func (c Criterion) Label() string {
	switch c {
	case CriterionProfitability:
		return "Profitability"
	case CriterionDemand:
		return "Market Demand"
	case CriterionExecution:
		return "Execution Ease"
	default:
		return string(c)
	}
}

// IdeaSubmission is the validated form input. Never persisted.
type IdeaSubmission struct {
	BusinessIdea string `json:"business_idea" validate:"required,min=10,max=2000"`
}

// NoReasoningText stands in for a criterion reasoning the model did not return
const NoReasoningText = "No reasoning provided."

// CriterionEvaluation holds the normalized evaluation of one criterion.
// Reasoning stays nil when the model did not return it.
type CriterionEvaluation struct {
	Score           float64  `json:"score"`
	Reasoning       *string  `json:"reasoning,omitempty"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// ReasoningText returns the reasoning or NoReasoningText when it is absent
func (c *CriterionEvaluation) ReasoningText() string {
	if c == nil || c.Reasoning == nil || *c.Reasoning == "" {
		return NoReasoningText
	}
	return *c.Reasoning
}

// EvaluationResult is the normalized model reply. A nil criterion means the
// reply did not contain it.
type EvaluationResult struct {
	Profitability     *CriterionEvaluation `json:"profitability,omitempty"`
	Demand            *CriterionEvaluation `json:"demand,omitempty"`
	Execution         *CriterionEvaluation `json:"execution,omitempty"`
	OverallAssessment *string              `json:"overall_assessment,omitempty"`
	OverallScore      float64              `json:"overall_score"`
}

// Criterion returns the evaluation for c or nil when it is absent
func (r *EvaluationResult) Criterion(c Criterion) *CriterionEvaluation {
	if r == nil {
		return nil
	}
	switch c {
	case CriterionProfitability:
		return r.Profitability
	case CriterionDemand:
		return r.Demand
	case CriterionExecution:
		return r.Execution
	default:
		return nil
	}
}

// Evaluation wraps a normalized result with request metadata for presentation
type Evaluation struct {
	ID        string            `json:"id"`
	Idea      string            `json:"idea"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Result    *EvaluationResult `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
}

// Prompt is the two-message instruction sent to the completion service
type Prompt struct {
	System string
	User   string
}
