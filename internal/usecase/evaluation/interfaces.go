package evaluation

import (
	"context"

	"github.com/futig/idea-validator/internal/entity"
)

// LLMConnector sends a prompt to a completion service and returns the raw
// JSON text of the reply
type LLMConnector interface {
	CompleteJSON(ctx context.Context, prompt entity.Prompt) (string, error)
	Provider() string
	Model() string
}

type IdeaValidator interface {
	ValidateIdea(raw string) (string, error)
}
