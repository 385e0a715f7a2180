package policy

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDown = errors.New("service down")

// failing returns an operation that fails n times and then succeeds
func failing(n int, calls *int) Operation {
	return func(ctx context.Context) error {
		*calls++
		if *calls <= n {
			return errDown
		}
		return nil
	}
}

func TestFireAndForget(t *testing.T) {
	calls := 0
	out := NewFireAndForget().Attempt(context.Background(), "append", failing(1, &calls))
	if out.Err == nil || calls != 1 || out.Attempts != 1 {
		t.Errorf("Expected one failed attempt, got calls=%d outcome=%+v", calls, out)
	}
	if out.Name != "append" {
		t.Errorf("Expected outcome name append, got %s", out.Name)
	}
}

func TestRetrySucceeds(t *testing.T) {
	calls := 0
	out := NewRetry(5, time.Millisecond).Attempt(context.Background(), "append", failing(2, &calls))
	if out.Err != nil {
		t.Fatalf("Expected success after retries, got %v", out.Err)
	}
	if calls != 3 || out.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got calls=%d attempts=%d", calls, out.Attempts)
	}
}

func TestRetryGivesUp(t *testing.T) {
	calls := 0
	out := NewRetry(3, time.Millisecond).Attempt(context.Background(), "append", failing(10, &calls))
	if !errors.Is(out.Err, errDown) {
		t.Errorf("Expected last error, got %v", out.Err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
}

func TestRetryStopsAtPermanentError(t *testing.T) {
	calls := 0
	notFound := errors.New("ID not found")
	out := NewRetry(5, time.Millisecond).Attempt(context.Background(), "update_status", func(ctx context.Context) error {
		calls++
		return Permanent(notFound)
	})
	if calls != 1 {
		t.Errorf("Expected a single attempt, got %d", calls)
	}
	if !errors.Is(out.Err, notFound) {
		t.Errorf("Expected wrapped not found error, got %v", out.Err)
	}
}

func TestBreakerOpens(t *testing.T) {
	p := NewBreaker(NewFireAndForget(), "test", 2, time.Hour)
	calls := 0
	op := failing(100, &calls)

	for i := 0; i < 2; i++ {
		if out := p.Attempt(context.Background(), "append", op); out.Err == nil {
			t.Fatalf("Expected failure on attempt %d", i)
		}
	}

	out := p.Attempt(context.Background(), "append", op)
	if out.Err == nil || out.Attempts != 0 {
		t.Errorf("Expected open breaker to reject without calling, got %+v", out)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls to the service, got %d", calls)
	}
}

func TestBreakerIgnoresPermanentErrors(t *testing.T) {
	p := NewBreaker(NewFireAndForget(), "test-permanent", 1, time.Hour)
	calls := 0
	op := func(ctx context.Context) error {
		calls++
		return Permanent(errors.New("ID not found"))
	}

	for i := 0; i < 3; i++ {
		p.Attempt(context.Background(), "update_status", op)
	}
	if calls != 3 {
		t.Errorf("Expected breaker to stay closed for permanent errors, got %d calls", calls)
	}
}

func TestBreakerRecovers(t *testing.T) {
	p := NewBreaker(NewFireAndForget(), "test-recover", 1, 20*time.Millisecond)
	calls := 0
	op := failing(1, &calls)

	p.Attempt(context.Background(), "append", op)
	if out := p.Attempt(context.Background(), "append", op); out.Attempts != 0 {
		t.Fatalf("Expected breaker to be open")
	}

	time.Sleep(40 * time.Millisecond)
	if out := p.Attempt(context.Background(), "append", op); out.Err != nil {
		t.Errorf("Expected probe to succeed after the open period, got %v", out.Err)
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{"": "none", "none": "none", "retry": "retry", "breaker": "breaker(retry)"} {
		p, err := ByName(name, 3)
		if err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
		if p.Name() != want {
			t.Errorf("ByName(%q): expected %s, got %s", name, want, p.Name())
		}
	}
	if _, err := ByName("forever", 3); err == nil {
		t.Errorf("Expected error for unknown policy")
	}
}
