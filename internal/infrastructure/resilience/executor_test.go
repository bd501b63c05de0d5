package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func retryOnlyConfig(maxAttempts int) Config {
	return Config{
		Retry: RetryPolicy{
			MaxAttempts:    maxAttempts,
			InitialBackoff: 1 * time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
			Multiplier:     2,
		},
	}
}

func TestExecuteRetriesTemporaryFailure(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig(3))

	attempts := 0
	errTemp := errors.New("temporary")
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemp
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{
			Retryable:     errors.Is(err, errTemp),
			RecordFailure: true,
		}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteDoesNotRetryPermanentFailure(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig(3))

	attempts := 0
	errPermanent := errors.New("permanent")
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{}
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteStopsRetryingOnContextCancel(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig(5))

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	errTemp := errors.New("temporary")
	err := exec.Execute(ctx, "op", func(context.Context) error {
		attempts++
		cancel()
		return errTemp
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if !errors.Is(err, errTemp) {
		t.Fatalf("expected last attempt error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	cfg := retryOnlyConfig(1)
	cfg.Breaker = BreakerPolicy{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      50 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	}
	exec := NewExecutor(cfg)

	errTemp := errors.New("temporary")
	classify := func(error) ErrorClassification {
		return ErrorClassification{RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "op", func(context.Context) error {
			return errTemp
		}, classify)
		if !errors.Is(err, errTemp) {
			t.Fatalf("expected temporary error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, classify)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen should report the open breaker")
	}
}
