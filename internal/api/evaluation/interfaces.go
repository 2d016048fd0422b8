package evaluation

import (
	"context"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
)

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, rawIdea string) (*entity.Evaluation, error)
}

type FormatterFactory interface {
	Create(format entity.ReportFormat) (formatter.Formatter, error)
}
