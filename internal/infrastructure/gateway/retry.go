package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/config"
)

// RetryDecider wraps a decider with bounded retries for transient failures.
// Declines are decisions, not failures, so they pass through untouched.
type RetryDecider struct {
	inner      application.GatewayDecider
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryDecider(inner application.GatewayDecider, cfg config.RetryConfig) *RetryDecider {
	return &RetryDecider{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryDecider) Decide(ctx context.Context, req application.DecisionRequest) (*application.Decision, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		decision, err := r.inner.Decide(ctx, req)
		if err == nil {
			return decision, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.IsRetryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryDecider) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.IntN(1000)) * time.Millisecond

	return base + jitter
}

var _ application.GatewayDecider = (*RetryDecider)(nil)
