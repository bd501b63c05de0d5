// Package resilience wraps outbound broker and service calls with bounded
// retries and a per-operation circuit breaker. Callers classify their own
// errors: only retryable classifications re-enter the retry loop, and only
// recorded failures count against the breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

type ErrorClassifier func(err error) ErrorClassification

type Executor struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(cfg Config) *Executor {
	return &Executor{
		cfg:      cfg.normalize(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Execute runs fn under the retry policy, behind the operation's circuit
// breaker when breaking is enabled. The classifier decides per error whether
// to retry and whether the breaker should count the failure.
func (e *Executor) Execute(
	ctx context.Context,
	operation string,
	fn func(context.Context) error,
	classify ErrorClassifier,
) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	op := strings.TrimSpace(operation)
	if op == "" {
		op = "unknown"
	}
	if classify == nil {
		classify = func(error) ErrorClassification {
			return ErrorClassification{RecordFailure: true}
		}
	}

	if !e.cfg.Breaker.Enabled {
		return e.retry(ctx, op, fn, classify)
	}

	_, err := e.breaker(op, classify).Execute(func() (any, error) {
		return nil, e.retry(ctx, op, fn, classify)
	})
	return err
}

func (e *Executor) retry(
	ctx context.Context,
	operation string,
	fn func(context.Context) error,
	classify ErrorClassifier,
) error {
	policy := e.cfg.Retry
	backoff := policy.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !classify(lastErr).Retryable || attempt == policy.MaxAttempts {
			return lastErr
		}

		slog.Warn("retry_attempt",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"backoff_ms", float64(backoff.Microseconds())/1000.0,
			"error", lastErr,
		)
		if !sleepOrDone(ctx, backoff) {
			return lastErr
		}
		backoff = policy.nextBackoff(backoff)
	}
	return lastErr
}

// sleepOrDone waits out the backoff; returns false when the context ends
// first.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Executor) breaker(operation string, classify ErrorClassifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if breaker, ok := e.breakers[operation]; ok {
		return breaker
	}

	policy := e.cfg.Breaker
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        operation,
		MaxRequests: policy.HalfOpenMaxCalls,
		Timeout:     policy.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < policy.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= policy.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change",
				"operation", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[operation] = breaker
	return breaker
}

// IsCircuitOpen reports whether err came from an open or saturated breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
