package retry

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 1
	defaultDelay    = 500 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

// RetryConfig controls how often an outbound call is attempted.
// One attempt means the call is never retried.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"500ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions(ctx context.Context) []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		// retry-go treats zero as "retry forever"
		attempts = defaultAttempts
	}

	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}),
	}
}

// Do runs fn under the configured policy. Extra options override the defaults.
func (rc *RetryConfig) Do(ctx context.Context, fn func() error, opts ...retry.Option) error {
	return retry.Do(fn, append(rc.ToRetryOptions(ctx), opts...)...)
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
