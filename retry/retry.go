// Package retry defines the backoff policy used by the spiris client when a
// request fails with a transient or rate-limited outcome.
//
// The policy is deterministic: given the same attempt number it always yields
// the same interval, which keeps retry behavior exactly reproducible in tests.
// Jitter can be enabled on top of the deterministic schedule for callers that
// share a rate-limit budget across many processes.
//
// Example usage:
//
//	policy := retry.DefaultPolicy().
//	    WithMaxAttempts(5).
//	    WithInitialInterval(500 * time.Millisecond)
//	client, err := spiris.NewClient(token, spiris.WithRetryPolicy(policy))
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Policy bounds the retry behavior of one logical request.
// The zero value is not valid; start from DefaultPolicy.
type Policy struct {
	// MaxAttempts is the maximum number of physical attempts,
	// including the initial one. 1 disables retries entirely.
	MaxAttempts int

	// InitialInterval is the wait before the first retry.
	InitialInterval time.Duration

	// MaxInterval caps the wait between attempts regardless of
	// multiplier growth.
	MaxInterval time.Duration

	// Multiplier is the exponential growth factor. Must be > 1.0.
	Multiplier float64

	// Jitter randomizes each computed interval between 50% and 100%
	// of its deterministic value. Off by default.
	Jitter bool
}

// DefaultPolicy returns the policy used when none is configured:
// 3 attempts, 500ms initial interval, 5s ceiling, doubling, no jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
	}
}

// Validate reports whether the policy is usable. An invalid policy is a
// configuration error and must be rejected before the first request.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry policy: max attempts must be >= 1, got %d", p.MaxAttempts)
	}
	if p.InitialInterval <= 0 {
		return fmt.Errorf("retry policy: initial interval must be positive, got %s", p.InitialInterval)
	}
	if p.MaxInterval < p.InitialInterval {
		return fmt.Errorf("retry policy: max interval %s is below initial interval %s", p.MaxInterval, p.InitialInterval)
	}
	if p.Multiplier <= 1.0 {
		return fmt.Errorf("retry policy: multiplier must be > 1.0, got %g", p.Multiplier)
	}
	return nil
}

// Backoff returns the wait before resending after the given retry attempt.
// Attempt is 1-indexed: the first retry is attempt 1, not the original try.
// The result is min(MaxInterval, InitialInterval * Multiplier^(attempt-1)),
// with optional jitter applied afterwards.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	interval := float64(p.InitialInterval) * math.Pow(p.Multiplier, float64(attempt-1))
	if interval > float64(p.MaxInterval) {
		interval = float64(p.MaxInterval)
	}

	if p.Jitter {
		interval = interval/2 + rand.Float64()*interval/2
	}

	return time.Duration(interval)
}

// WithMaxAttempts returns a copy of the policy with the given attempt limit.
func (p Policy) WithMaxAttempts(attempts int) Policy {
	p.MaxAttempts = attempts
	return p
}

// WithInitialInterval returns a copy of the policy with the given initial wait.
func (p Policy) WithInitialInterval(d time.Duration) Policy {
	p.InitialInterval = d
	return p
}

// WithMaxInterval returns a copy of the policy with the given wait ceiling.
func (p Policy) WithMaxInterval(d time.Duration) Policy {
	p.MaxInterval = d
	return p
}

// WithMultiplier returns a copy of the policy with the given growth factor.
func (p Policy) WithMultiplier(m float64) Policy {
	p.Multiplier = m
	return p
}

// WithJitter returns a copy of the policy with jitter enabled.
func (p Policy) WithJitter() Policy {
	p.Jitter = true
	return p
}

// Wait suspends the calling goroutine for d, returning early with the
// context's error if the caller abandons the request during the wait.
// Only this goroutine's logical request is suspended; no shared state
// is held across the wait.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
