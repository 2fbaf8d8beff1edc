package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// WithRetry wraps a Provider so that transient failures (rate limits,
// outages, flaky networks) are retried with exponential backoff before the
// error reaches the quiz session. A schema-invalid response is re-asked
// exactly once; a second bad answer to the same prompt goes back to the
// caller.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{next: p, cfg: cfg}
}

type retryProvider struct {
	next Provider
	cfg  RetryConfig
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	reaskedInvalid := false

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &reaskedInvalid) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retryProvider) ModelID() string {
	return r.next.ModelID()
}

func retryable(err error, reaskedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Hitting the token cap means the request itself is misconfigured.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	// One re-ask for a schema-invalid answer, then give up.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *reaskedInvalid {
			return false
		}
		*reaskedInvalid = true
		return true
	}

	// Everything else (429s, 5xx, network) is assumed transient.
	return true
}

// wait picks the backoff before the next attempt. Rate limits that carry a
// Retry-After hint use it verbatim; otherwise exponential backoff with ±20%
// jitter, capped at MaxWait.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	d = min(d, float64(r.cfg.MaxWait))
	d += d * 0.2 * (2*rand.Float64() - 1)
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
