package syncache

import (
	"context"
	"sync"
	"time"

	"github.com/ValentinKolb/fbstore/lib/cache"
	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/rpc/client"
	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("sync")

// DefaultBound is how long a fetched snapshot is served without asking the remote again.
const DefaultBound = 10 * time.Second

var (
	hits   = vmetrics.NewCounter("fbstore_sync_cache_hits_total")
	misses = vmetrics.NewCounter("fbstore_sync_cache_misses_total")
)

// Cache is a short lived copy of the remote collection. It bounds how often
// the remote service is asked for the full table.
//
// Thread-safety: all methods are safe for concurrent use. An Invalidate that
// happens while a fetch is in flight does not cancel that fetch, its result
// still replaces the snapshot when it arrives.
type Cache struct {
	remote client.IRemoteClient
	local  cache.ILocalCache
	bound  time.Duration
	now    func() time.Time

	mu        sync.Mutex
	snapshot  []feedback.Entry // nil means "no valid snapshot"
	timestamp time.Time
}

// New creates a sync cache in front of remote. Every successful fetch is also
// written to local (which may be nil). A bound <= 0 selects DefaultBound.
func New(remote client.IRemoteClient, local cache.ILocalCache, bound time.Duration) *Cache {
	if bound <= 0 {
		bound = DefaultBound
	}
	return &Cache{
		remote: remote,
		local:  local,
		bound:  bound,
		now:    time.Now,
	}
}

// Read returns the remote collection. A snapshot younger than the bound is
// returned without a network call. Otherwise the remote is asked; on success
// the snapshot is replaced, mirrored into the local cache and returned.
// The boolean is false if no fresh data could be obtained, the caller should
// then keep using the local collection. This is not an error.
func (c *Cache) Read(ctx context.Context) ([]feedback.Entry, bool) {
	c.mu.Lock()
	if c.snapshot != nil && c.now().Sub(c.timestamp) < c.bound {
		out := clone(c.snapshot)
		c.mu.Unlock()
		hits.Inc()
		return out, true
	}
	c.mu.Unlock()
	misses.Inc()

	if c.remote == nil {
		return nil, false
	}

	entries, err := c.remote.FetchAll(ctx)
	if err != nil {
		Logger.Warningf("Failed to fetch feedback from remote: %v", err)
		return nil, false
	}
	if entries == nil {
		entries = []feedback.Entry{}
	}

	c.mu.Lock()
	c.snapshot = entries
	c.timestamp = c.now()
	c.mu.Unlock()

	if c.local != nil {
		if err := c.local.Save(entries); err != nil {
			Logger.Warningf("Failed to mirror remote feedback locally: %v", err)
		}
	}
	Logger.Debugf("Fetched %d entries from remote", len(entries))
	return clone(entries), true
}

// Invalidate drops the snapshot, the next Read asks the remote again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.timestamp = time.Time{}
	c.mu.Unlock()
}

// Bound returns the staleness bound of the cache.
func (c *Cache) Bound() time.Duration {
	return c.bound
}

func clone(entries []feedback.Entry) []feedback.Entry {
	out := make([]feedback.Entry, len(entries))
	copy(out, entries)
	return out
}
