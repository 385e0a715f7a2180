package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/sony/gobreaker"
)

var Logger = logger.GetLogger("policy")

// --------------------------------------------------------------------------
// Fire and forget
// --------------------------------------------------------------------------

type fireAndForget struct{}

// NewFireAndForget returns the default policy: exactly one attempt, no retry.
func NewFireAndForget() ISyncPolicy {
	return fireAndForget{}
}

func (fireAndForget) Attempt(ctx context.Context, name string, op Operation) Outcome {
	start := time.Now()
	err := op(ctx)
	return Outcome{Name: name, Attempts: 1, Duration: time.Since(start), Err: err}
}

func (fireAndForget) Name() string {
	return "none"
}

// --------------------------------------------------------------------------
// Retry with exponential backoff
// --------------------------------------------------------------------------

type retryPolicy struct {
	maxTries        uint
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewRetry returns a policy that retries a failed operation with exponential
// backoff, at most maxTries times in total. Pending retries live in memory only
// and are lost when the process exits.
func NewRetry(maxTries int, initialInterval time.Duration) ISyncPolicy {
	if maxTries < 1 {
		maxTries = 1
	}
	if initialInterval <= 0 {
		initialInterval = 500 * time.Millisecond
	}
	return &retryPolicy{
		maxTries:        uint(maxTries),
		initialInterval: initialInterval,
		maxElapsed:      2 * time.Minute,
	}
}

func (p *retryPolicy) Attempt(ctx context.Context, name string, op Operation) Outcome {
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialInterval

	attempts := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		err := op(ctx)
		if IsPermanent(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.maxTries),
		backoff.WithMaxElapsedTime(p.maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			Logger.Debugf("%s failed (attempt %d/%d), retrying in %s: %v", name, attempts, p.maxTries, next, err)
		}),
	)

	return Outcome{Name: name, Attempts: attempts, Duration: time.Since(start), Err: err}
}

func (p *retryPolicy) Name() string {
	return "retry"
}

// --------------------------------------------------------------------------
// Circuit breaker
// --------------------------------------------------------------------------

type breakerPolicy struct {
	inner ISyncPolicy
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner in a circuit breaker. After threshold consecutive
// failed attempts the breaker opens and rejects operations without calling the
// service for openFor, then lets a single probe through.
func NewBreaker(inner ISyncPolicy, name string, threshold int, openFor time.Duration) ISyncPolicy {
	if inner == nil {
		inner = NewFireAndForget()
	}
	if threshold < 1 {
		threshold = 1
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			Logger.Warningf("Circuit breaker %s changed from %s to %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			// the service answered, it is not down
			return err == nil || IsPermanent(err)
		},
	})
	return &breakerPolicy{inner: inner, cb: cb}
}

func (p *breakerPolicy) Attempt(ctx context.Context, name string, op Operation) Outcome {
	start := time.Now()

	var outcome Outcome
	_, err := p.cb.Execute(func() (interface{}, error) {
		outcome = p.inner.Attempt(ctx, name, op)
		return nil, outcome.Err
	})
	if outcome.Name == "" {
		// rejected without calling the inner policy
		return Outcome{Name: name, Attempts: 0, Duration: time.Since(start), Err: fmt.Errorf("%s skipped: %w", name, err)}
	}
	return outcome
}

func (p *breakerPolicy) Name() string {
	return "breaker(" + p.inner.Name() + ")"
}

// --------------------------------------------------------------------------
// Factory
// --------------------------------------------------------------------------

// ByName creates the policy with the given name ("none", "retry" or "breaker").
// attempts is the number of tries of the retry policy, the breaker wraps a retry
// policy with the same number of tries.
func ByName(name string, attempts int) (ISyncPolicy, error) {
	switch name {
	case "none", "":
		return NewFireAndForget(), nil
	case "retry":
		return NewRetry(attempts, 0), nil
	case "breaker":
		return NewBreaker(NewRetry(attempts, 0), "feedback-sync", 3, 30*time.Second), nil
	default:
		return nil, fmt.Errorf("invalid sync policy %s", name)
	}
}
