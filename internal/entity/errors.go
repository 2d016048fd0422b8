package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Submitted idea is missing or out of bounds
	ErrValidation = errors.New("validation failed")

	// Completion service unreachable, rejected the request or timed out
	ErrTransport = errors.New("completion service call failed")

	// Completion reply is not well-formed JSON
	ErrParse = errors.New("failed to parse AI response")

	// Anything else that broke normalization
	ErrInternal = errors.New("failed to validate business idea")

	// Report export errors
	ErrInvalidFormat     = errors.New("invalid format")
	ErrInvalidEvaluation = errors.New("invalid evaluation payload")
)

// User facing messages
const (
	MsgIdeaRequired     = "Please enter your business idea."
	MsgIdeaLength       = "Your idea should be between 10 and 2000 characters."
	MsgProcessingFailed = "Sorry, there was an error processing your request. Please try again."
	MsgInternalError    = "An internal error occurred. Please try again."
)

// ValidationError describes a rejected idea submission
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorKind classifies an evaluation failure for the presentation layers
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindTransport
	KindParse
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "internal"
	}
}

// KindOf returns the kind of err. Unclassified errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindInternal
	}
}

// UserMessage returns the text that may be shown to an end user for err.
// Only validation errors expose their own message.
func UserMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return MsgProcessingFailed
}
