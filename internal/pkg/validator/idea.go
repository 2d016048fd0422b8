package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/futig/idea-validator/internal/entity"
	playground "github.com/go-playground/validator/v10"
)

const businessIdeaField = "business_idea"

// Validator validates idea submissions
type Validator struct {
	validate *playground.Validate
}

func NewIdeaValidator() *Validator {
	return &Validator{validate: playground.New()}
}

// ValidateIdea trims raw and checks presence and length in characters.
// The trimmed text is returned as is, no escaping is applied.
func (v *Validator) ValidateIdea(raw string) (string, error) {
	submission := entity.IdeaSubmission{BusinessIdea: strings.TrimSpace(raw)}

	err := v.validate.Struct(submission)
	if err == nil {
		return submission.BusinessIdea, nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "", fmt.Errorf("%w: %v", entity.ErrInternal, err)
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return "", &entity.ValidationError{Field: businessIdeaField, Message: entity.MsgIdeaRequired}
	default:
		return "", &entity.ValidationError{Field: businessIdeaField, Message: entity.MsgIdeaLength}
	}
}
