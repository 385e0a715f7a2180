package fbstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ValentinKolb/fbstore/lib/cache"
	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/policy"
	"github.com/ValentinKolb/fbstore/lib/syncache"
	"github.com/ValentinKolb/fbstore/rpc/client"
	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport/http"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("fbstore")

// Store is the offline first feedback store. Reads are answered from the local
// cache only and never touch the network. Writes are applied to the local cache
// synchronously and sent to the remote service in the background.
//
// Thread-safety: all methods are safe for concurrent use. The local
// load -> mutate -> save sequence of one Store is atomic, background remote
// writes are not ordered relative to each other.
type Store struct {
	source string
	local  cache.ILocalCache
	remote client.IRemoteClient // nil if no remote is configured
	sync   *syncache.Cache
	policy policy.ISyncPolicy
	now    func() time.Time

	mu sync.Mutex     // guards the local load -> mutate -> save path
	wg sync.WaitGroup // in flight background writes
}

// NewStore creates a store on top of a local cache.
// remote may be nil, the store then works purely locally. syncPolicy may be
// nil and defaults to policy.NewFireAndForget. source is the client tag written
// into new entries. cacheTTL is the bound of the sync cache (<= 0 for the default).
func NewStore(
	local cache.ILocalCache,
	remote client.IRemoteClient,
	syncPolicy policy.ISyncPolicy,
	source string,
	cacheTTL time.Duration,
) *Store {
	if syncPolicy == nil {
		syncPolicy = policy.NewFireAndForget()
	}
	if source == "" {
		source = feedback.DefaultSource
	}
	s := &Store{
		source: source,
		local:  local,
		remote: remote,
		policy: syncPolicy,
		now:    time.Now,
	}
	s.sync = syncache.New(remote, lockedCache{s}, cacheTTL)
	return s
}

// FromConfig creates a store with the local cache, remote client and sync
// policy described by the configuration. A configuration without remote
// endpoints yields a local only store.
func FromConfig(config common.StoreConfig) (*Store, error) {
	local, err := cache.FromConfig(config)
	if err != nil {
		return nil, err
	}

	syncPolicy, err := policy.ByName(config.SyncPolicy, config.SyncAttempts)
	if err != nil {
		_ = local.Close()
		return nil, err
	}

	var remote client.IRemoteClient
	if config.Client.Enabled() {
		remote, err = client.NewRemoteClient(config.Client, http.NewHttpClientTransport())
		if err != nil {
			_ = local.Close()
			return nil, err
		}
	} else {
		Logger.Infof("No remote endpoint configured, working locally only")
	}

	return NewStore(local, remote, syncPolicy, config.Source, config.CacheTTL), nil
}

// --------------------------------------------------------------------------
// Write operations
// --------------------------------------------------------------------------

// ErrDuplicateID is returned by AddFeedback if the supplied id already exists locally.
var ErrDuplicateID = errors.New("id already exists")

// AddFeedback creates a new open entry from fields and appends it to the local
// cache, where it is visible to the next read. The remote append runs in the
// background, its failure is only logged. An error is returned if the fields
// are out of range (e.g. a rating of 7), the supplied id is already taken or
// the local cache can not be read or written; in that case nothing is stored.
func (s *Store) AddFeedback(fields feedback.Fields) (feedback.Entry, error) {
	e := fields.Build(s.now(), s.source)
	if err := feedback.Validate(e); err != nil {
		return feedback.Entry{}, err
	}

	s.mu.Lock()
	entries, err := s.local.LoadStrict()
	if err == nil && containsID(entries, e.ID) {
		err = fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	if err == nil {
		err = s.local.Save(append(entries, e))
	}
	s.mu.Unlock()
	if err != nil {
		Logger.Errorf("Failed to save feedback %s locally: %v", e.ID, err)
		return feedback.Entry{}, err
	}

	s.background("append", func(ctx context.Context) error {
		_, err := s.remote.AppendEntry(ctx, e)
		return err
	})
	return e, nil
}

// UpdateStatus sets the status of the entry with the given id. The local change
// is applied at once if the id is known locally; the remote update is sent in
// the background in any case. An unknown id is not an error, locally or remotely.
// An invalid status, or a local cache that can not be read, drops the update.
func (s *Store) UpdateStatus(id string, status feedback.Status) {
	if !status.Valid() {
		Logger.Warningf("Ignoring status update of %s: invalid status %q", id, status)
		return
	}

	s.mu.Lock()
	entries, err := s.local.LoadStrict()
	if err == nil {
		for i := range entries {
			if entries[i].ID == id {
				entries[i].Status = status
				err = s.local.Save(entries)
				break
			}
		}
	}
	s.mu.Unlock()
	if err != nil {
		Logger.Errorf("Failed to update status of %s locally: %v", id, err)
		return
	}

	s.background("update_status", func(ctx context.Context) error {
		err := s.remote.UpdateStatus(ctx, id, status)
		if errors.Is(err, common.ErrIDNotFound) {
			return policy.Permanent(err)
		}
		return err
	})
}

// SyncFromRemote replaces the local collection with the remote one.
// It returns true if a remote snapshot was obtained (possibly from the sync
// cache) and written locally. On false the local collection is unchanged.
// Local entries that never reached the remote are lost by a successful sync.
func (s *Store) SyncFromRemote(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}

	// the fetch runs without the lock, local reads stay available meanwhile
	entries, ok := s.sync.Read(ctx)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.local.Save(entries); err != nil {
		Logger.Errorf("Failed to overwrite local feedback: %v", err)
		return false
	}
	Logger.Infof("Synced %d entries from remote", len(entries))
	return true
}

// Wait blocks until all background remote writes have finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close waits for background remote writes and releases the local cache and
// the remote client.
func (s *Store) Close() error {
	s.Wait()

	var errs []error
	if s.remote != nil {
		errs = append(errs, s.remote.Close())
	}
	errs = append(errs, s.local.Close())
	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// lockedCache gives the sync cache access to the local cache under the store lock
type lockedCache struct {
	s *Store
}

func (c lockedCache) Load() []feedback.Entry {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.local.Load()
}

func (c lockedCache) LoadStrict() ([]feedback.Entry, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.local.LoadStrict()
}

func (c lockedCache) Save(entries []feedback.Entry) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.local.Save(entries)
}

func (c lockedCache) Close() error {
	return nil
}

func containsID(entries []feedback.Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// background hands a remote write to the sync policy on its own goroutine.
// A successful write invalidates the sync cache.
func (s *Store) background(name string, op policy.Operation) {
	if s.remote == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// detached from any caller, remote writes are never cancelled
		out := s.policy.Attempt(context.Background(), name, op)
		switch {
		case out.Err == nil:
			s.sync.Invalidate()
			Logger.Debugf("Remote %s succeeded after %d attempt(s) in %s", out.Name, out.Attempts, out.Duration)
		case policy.IsPermanent(out.Err):
			Logger.Warningf("Remote %s rejected: %v", out.Name, out.Err)
		default:
			Logger.Warningf("Remote %s failed after %d attempt(s), change is local only: %v", out.Name, out.Attempts, out.Err)
		}
	}()
}
