package resilience

import "time"

// RetryPolicy bounds the retry loop for one operation.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// BreakerPolicy configures the per-operation circuit breaker.
type BreakerPolicy struct {
	Enabled          bool
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

type Config struct {
	Retry   RetryPolicy
	Breaker BreakerPolicy
}

func DefaultConfig() Config {
	return Config{
		Retry: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: 100 * time.Millisecond,
			MaxBackoff:     400 * time.Millisecond,
			Multiplier:     2.0,
		},
		Breaker: BreakerPolicy{
			Enabled:          true,
			MinRequests:      10,
			FailureRatio:     0.5,
			OpenTimeout:      30 * time.Second,
			HalfOpenMaxCalls: 2,
		},
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()

	if out.Retry.MaxAttempts <= 0 {
		out.Retry.MaxAttempts = def.Retry.MaxAttempts
	}
	if out.Retry.InitialBackoff <= 0 {
		out.Retry.InitialBackoff = def.Retry.InitialBackoff
	}
	if out.Retry.MaxBackoff < out.Retry.InitialBackoff {
		out.Retry.MaxBackoff = out.Retry.InitialBackoff
	}
	if out.Retry.Multiplier < 1.0 {
		out.Retry.Multiplier = def.Retry.Multiplier
	}

	if out.Breaker.MinRequests == 0 {
		out.Breaker.MinRequests = def.Breaker.MinRequests
	}
	if out.Breaker.FailureRatio <= 0 || out.Breaker.FailureRatio > 1 {
		out.Breaker.FailureRatio = def.Breaker.FailureRatio
	}
	if out.Breaker.OpenTimeout <= 0 {
		out.Breaker.OpenTimeout = def.Breaker.OpenTimeout
	}
	if out.Breaker.HalfOpenMaxCalls == 0 {
		out.Breaker.HalfOpenMaxCalls = def.Breaker.HalfOpenMaxCalls
	}

	return out
}

// nextBackoff grows a backoff by the policy multiplier, capped at
// MaxBackoff.
func (p RetryPolicy) nextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.Multiplier)
	if next > p.MaxBackoff {
		next = p.MaxBackoff
	}
	return next
}
