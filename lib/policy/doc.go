/*
Package policy decides how background writes to the remote feedback service
are attempted.

The feedback store never waits for the remote side: a local write returns at
once and the remote write is handed to an ISyncPolicy on a separate goroutine.
The policy only decides how often and when the operation is tried. The result
is reported as an Outcome and is never shown to the caller of the store.

Policies:

  - NewFireAndForget: one attempt, no retry (default)
  - NewRetry:         exponential backoff (github.com/cenkalti/backoff/v5); pending
    retries are kept in memory only and are lost when the process exits
  - NewBreaker:       wraps another policy in a circuit breaker (github.com/sony/gobreaker)
    so a service that is known to be down is not called again for a while

Errors that retrying can not fix (e.g. an unknown id) should be wrapped with
Permanent. Retry stops at them and the breaker does not count them as failures.
*/
package policy
