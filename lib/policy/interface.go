package policy

import (
	"context"
	"errors"
	"time"
)

// Operation is one attempt of a remote write.
type Operation func(ctx context.Context) error

// Outcome describes how a sync attempt ended.
type Outcome struct {
	Name     string        // name of the operation (e.g. "append")
	Attempts int           // number of times the operation was invoked
	Duration time.Duration // total time including waits between attempts
	Err      error         // nil on success
}

// ISyncPolicy decides how a background remote write is attempted.
// Attempt blocks until the policy gives up or the operation succeeds;
// callers that must not block run it on their own goroutine.
type ISyncPolicy interface {
	// Attempt runs op according to the policy and reports the outcome.
	Attempt(ctx context.Context, name string, op Operation) Outcome
	// Name returns the name of the policy (e.g. "none")
	Name() string
}

// --------------------------------------------------------------------------
// Permanent errors
// --------------------------------------------------------------------------

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying (e.g. an unknown id).
// Policies stop at a permanent error and do not count it as a service failure.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
