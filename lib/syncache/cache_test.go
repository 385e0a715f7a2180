package syncache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/fbstore/lib/cache"
	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/serializer"
)

type fakeRemote struct {
	mu      sync.Mutex
	entries []feedback.Entry
	err     error
	fetches int
}

func (f *fakeRemote) FetchAll(ctx context.Context) ([]feedback.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]feedback.Entry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeRemote) AppendEntry(ctx context.Context, e feedback.Entry) (string, error) {
	return e.ID, nil
}

func (f *fakeRemote) UpdateStatus(ctx context.Context, id string, status feedback.Status) error {
	return nil
}

func (f *fakeRemote) Close() error { return nil }

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// clock is a manually advanced time source
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(remote *fakeRemote) (*Cache, *clock, cache.ILocalCache) {
	local := cache.NewLocalCache(cache.NewMemoryBackend(), serializer.NewJSONSerializer())
	c := New(remote, local, 0)
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clk.now
	return c, clk, local
}

func TestAtMostOneFetchWithinBound(t *testing.T) {
	remote := &fakeRemote{entries: []feedback.Entry{{ID: "a"}}}
	c, clk, _ := newTestCache(remote)

	for i := 0; i < 5; i++ {
		entries, ok := c.Read(context.Background())
		if !ok || len(entries) != 1 {
			t.Fatalf("Read %d: expected 1 entry, got ok=%v entries=%v", i, ok, entries)
		}
		clk.advance(time.Second)
	}
	if remote.count() != 1 {
		t.Errorf("Expected 1 fetch within the bound, got %d", remote.count())
	}

	clk.advance(DefaultBound)
	c.Read(context.Background())
	if remote.count() != 2 {
		t.Errorf("Expected a new fetch after the bound, got %d fetches", remote.count())
	}
}

func TestInvalidateForcesFetch(t *testing.T) {
	remote := &fakeRemote{entries: []feedback.Entry{{ID: "a"}}}
	c, _, _ := newTestCache(remote)

	c.Read(context.Background())
	remote.entries = append(remote.entries, feedback.Entry{ID: "b"})
	c.Invalidate()

	entries, ok := c.Read(context.Background())
	if !ok || len(entries) != 2 {
		t.Errorf("Expected fresh data with 2 entries, got ok=%v entries=%v", ok, entries)
	}
	if remote.count() != 2 {
		t.Errorf("Expected 2 fetches, got %d", remote.count())
	}
}

func TestFailureReportsNoFreshData(t *testing.T) {
	remote := &fakeRemote{err: errors.New("offline")}
	c, _, local := newTestCache(remote)
	if err := local.Save([]feedback.Entry{{ID: "local"}}); err != nil {
		t.Fatal(err)
	}

	entries, ok := c.Read(context.Background())
	if ok || entries != nil {
		t.Errorf("Expected no fresh data, got ok=%v entries=%v", ok, entries)
	}
	if got := local.Load(); len(got) != 1 || got[0].ID != "local" {
		t.Errorf("Expected local cache to be untouched, got %v", got)
	}

	// a failed fetch does not count as a snapshot
	remote.err = nil
	remote.entries = []feedback.Entry{{ID: "r"}}
	if _, ok := c.Read(context.Background()); !ok {
		t.Errorf("Expected fetch to succeed once the remote is back")
	}
	if remote.count() != 2 {
		t.Errorf("Expected 2 fetches, got %d", remote.count())
	}
}

func TestFailureKeepsOldSnapshot(t *testing.T) {
	remote := &fakeRemote{entries: []feedback.Entry{{ID: "a"}}}
	c, clk, _ := newTestCache(remote)

	c.Read(context.Background())
	clk.advance(DefaultBound)
	remote.err = errors.New("offline")
	if _, ok := c.Read(context.Background()); ok {
		t.Errorf("Expected stale snapshot to not count as fresh data")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.snapshot) != 1 {
		t.Errorf("Expected old snapshot to be kept, got %v", c.snapshot)
	}
}

func TestEmptyRemoteIsFreshData(t *testing.T) {
	remote := &fakeRemote{}
	c, _, local := newTestCache(remote)
	if err := local.Save([]feedback.Entry{{ID: "old"}}); err != nil {
		t.Fatal(err)
	}

	entries, ok := c.Read(context.Background())
	if !ok || entries == nil || len(entries) != 0 {
		t.Fatalf("Expected empty fresh snapshot, got ok=%v entries=%v", ok, entries)
	}
	if got := local.Load(); len(got) != 0 {
		t.Errorf("Expected local cache to mirror the empty remote, got %v", got)
	}

	c.Read(context.Background())
	if remote.count() != 1 {
		t.Errorf("Expected empty snapshot to be cached, got %d fetches", remote.count())
	}
}

func TestReadMirrorsIntoLocal(t *testing.T) {
	remote := &fakeRemote{entries: []feedback.Entry{{ID: "a"}, {ID: "b"}}}
	c, _, local := newTestCache(remote)

	c.Read(context.Background())
	if got := local.Load(); len(got) != 2 {
		t.Errorf("Expected 2 mirrored entries, got %d", len(got))
	}
}

func TestReturnedSliceIsACopy(t *testing.T) {
	remote := &fakeRemote{entries: []feedback.Entry{{ID: "a"}}}
	c, _, _ := newTestCache(remote)

	entries, _ := c.Read(context.Background())
	entries[0].ID = "changed"
	again, _ := c.Read(context.Background())
	if again[0].ID != "a" {
		t.Errorf("Expected snapshot to be isolated from callers, got %s", again[0].ID)
	}
}
