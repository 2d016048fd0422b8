package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/futig/idea-validator/internal/entity"
)

// rawCriterion mirrors one criterion of the model reply. Pointers keep
// absent fields distinguishable from zero values.
type rawCriterion struct {
	Score           *float64 `json:"score"`
	Reasoning       *string  `json:"reasoning"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

type rawReply struct {
	Profitability     *rawCriterion `json:"profitability"`
	Demand            *rawCriterion `json:"demand"`
	Execution         *rawCriterion `json:"execution"`
	OverallAssessment *string       `json:"overall_assessment"`
	OverallScore      *float64      `json:"overall_score"`
}

// Normalize turns the raw completion text into an EvaluationResult.
//
// Text that is not JSON at all fails with ErrParse. JSON of the wrong shape,
// including a criterion without a score, fails with ErrInternal. Scores are
// clamped to [MinScore, MaxScore], missing lists become empty and a missing
// overall score is the mean of the present criterion scores.
func Normalize(raw string) (*entity.EvaluationResult, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrParse, err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: reply is not a JSON object", entity.ErrInternal)
	}
	for _, c := range entity.Criteria {
		if v, present := fields[string(c)]; present && v == nil {
			return nil, fmt.Errorf("%w: %s is null", entity.ErrInternal, c)
		}
	}

	var reply rawReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("%w: unexpected reply shape: %w", entity.ErrInternal, err)
	}

	result := &entity.EvaluationResult{
		OverallAssessment: reply.OverallAssessment,
	}

	var err error
	if result.Profitability, err = normalizeCriterion(entity.CriterionProfitability, reply.Profitability); err != nil {
		return nil, err
	}
	if result.Demand, err = normalizeCriterion(entity.CriterionDemand, reply.Demand); err != nil {
		return nil, err
	}
	if result.Execution, err = normalizeCriterion(entity.CriterionExecution, reply.Execution); err != nil {
		return nil, err
	}

	if reply.OverallScore != nil {
		result.OverallScore = *reply.OverallScore
	} else {
		result.OverallScore = overallScore(result)
	}

	return result, nil
}

func normalizeCriterion(name entity.Criterion, raw *rawCriterion) (*entity.CriterionEvaluation, error) {
	if raw == nil {
		return nil, nil
	}
	if raw.Score == nil {
		return nil, fmt.Errorf("%w: %s has no score", entity.ErrInternal, name)
	}

	return &entity.CriterionEvaluation{
		Score:           clampScore(*raw.Score),
		Reasoning:       raw.Reasoning,
		Strengths:       orEmpty(raw.Strengths),
		Weaknesses:      orEmpty(raw.Weaknesses),
		Recommendations: orEmpty(raw.Recommendations),
	}, nil
}

func clampScore(score float64) float64 {
	return math.Max(entity.MinScore, math.Min(entity.MaxScore, score))
}

// overallScore is the mean of present criterion scores rounded to one
// decimal on its exact binary value, exact ties to even. Zero when no
// criterion is present.
func overallScore(result *entity.EvaluationResult) float64 {
	var sum float64
	var n int
	for _, c := range entity.Criteria {
		if ce := result.Criterion(c); ce != nil {
			sum += ce.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundOneDecimal(sum / float64(n))
}

// roundOneDecimal rounds through strconv, which formats the exact binary
// value. Scaling by 10 first would turn 6.65 into a tie and round it down.
func roundOneDecimal(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
