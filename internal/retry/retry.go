// Package retry implements retry with exponential backoff as an explicit,
// testable policy object.
package retry

import (
	"context"
	"math"
	"time"
)

// Config configures the retry behavior.
type Config struct {
	// MaxAttempts is the maximum number of attempts, including the initial one.
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 1s
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 8s
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier applied per attempt.
	// Default: 2.0
	Multiplier float64

	// RetryIf determines whether an error should trigger a retry.
	// Default: all non-nil errors trigger retry.
	RetryIf func(err error) bool

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Policy runs operations under a fixed retry configuration.
type Policy struct {
	config Config
}

// New creates a retry policy, applying defaults for unset fields.
func New(config Config) *Policy {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = time.Second
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 8 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}

	return &Policy{config: config}
}

// Do runs op until it succeeds, exhausts the attempt budget, or fails with a
// non-retryable error. The last error is returned unchanged.
func (p *Policy) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !p.config.RetryIf(err) {
			return err
		}
		if attempt >= p.config.MaxAttempts {
			break
		}

		delay := p.delay(attempt)
		if p.config.OnRetry != nil {
			p.config.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (p *Policy) delay(attempt int) time.Duration {
	delay := float64(p.config.InitialDelay) * math.Pow(p.config.Multiplier, float64(attempt-1))
	if delay > float64(p.config.MaxDelay) {
		return p.config.MaxDelay
	}
	return time.Duration(delay)
}
