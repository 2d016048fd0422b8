package entity

// Tone is the visual emphasis of a grade
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Grade is the letter summary of an overall score
type Grade struct {
	Letter  string
	Tone    Tone
	Message string
}

var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{8.5, Grade{"A+", ToneSuccess, "Outstanding potential!"}},
	{8, Grade{"A", ToneSuccess, "Excellent opportunity"}},
	{7.5, Grade{"B+", ToneSuccess, "Very promising"}},
	{7, Grade{"B", ToneWarning, "Good potential"}},
	{6.5, Grade{"B-", ToneWarning, "Decent opportunity"}},
	{6, Grade{"C+", ToneWarning, "Some potential"}},
	{5.5, Grade{"C", ToneWarning, "Average potential"}},
}

// GradeFor maps an overall score on the 0..10 scale to a grade
func GradeFor(score float64) Grade {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return Grade{"D", ToneDanger, "Needs improvement"}
}

// RatingFor labels a single criterion score
func RatingFor(score float64) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	default:
		return "Needs Work"
	}
}

// ToneFor colors a single criterion score the same way as RatingFor
func ToneFor(score float64) Tone {
	switch {
	case score >= 8:
		return ToneSuccess
	case score >= 6:
		return ToneWarning
	default:
		return ToneDanger
	}
}
