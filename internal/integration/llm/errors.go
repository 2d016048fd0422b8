package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/idea-validator/internal/entity"
	pkghttp "github.com/futig/idea-validator/pkg/http"
)

// transportError tags err as a completion service failure
func transportError(provider string, err error) error {
	if errors.Is(err, entity.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", entity.ErrTransport, provider, err)
}

// isRetryable reports whether another attempt may succeed. It only matters
// when more than one attempt is configured.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"):
		return true
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return true
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "overloaded"):
		return true
	default:
		return false
	}
}
