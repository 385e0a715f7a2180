package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/serializer"
)

func sampleEntries() []feedback.Entry {
	return []feedback.Entry{
		{ID: "a", PageID: "p1", ElementID: "chart", Round: 1, Author: "x", Comment: "hi", Rating: 4,
			Status: feedback.StatusOpen, CreatedAt: "2025-03-14T09:26:53.589Z", Source: "test"},
		{ID: "b", PageID: "p2", Round: 2, Rating: 3, Status: feedback.StatusResolved,
			CreatedAt: "2025-03-15T09:26:53.589Z", Source: "test"},
	}
}

// runCacheTests exercises a local cache on top of the backend created by factory.
func runCacheTests(t *testing.T, name string, factory func(t *testing.T) IBackend) {
	t.Run(name, func(t *testing.T) {
		for _, s := range []serializer.IEntrySerializer{serializer.NewJSONSerializer(), serializer.NewGOBSerializer()} {
			t.Run(s.Name()+"/EmptyLoad", func(t *testing.T) {
				c := NewLocalCache(factory(t), s)
				if got := c.Load(); got == nil || len(got) != 0 {
					t.Errorf("Expected empty non-nil collection, got %v", got)
				}
			})

			t.Run(s.Name()+"/SaveLoad", func(t *testing.T) {
				c := NewLocalCache(factory(t), s)
				want := sampleEntries()
				if err := c.Save(want); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				got := c.Load()
				if len(got) != len(want) {
					t.Fatalf("Expected %d entries, got %d", len(want), len(got))
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], got[i])
					}
				}
			})

			t.Run(s.Name()+"/SaveReplaces", func(t *testing.T) {
				c := NewLocalCache(factory(t), s)
				if err := c.Save(sampleEntries()); err != nil {
					t.Fatal(err)
				}
				if err := c.Save(sampleEntries()[:1]); err != nil {
					t.Fatal(err)
				}
				if got := c.Load(); len(got) != 1 {
					t.Errorf("Expected 1 entry after overwrite, got %d", len(got))
				}
			})
		}

		t.Run("CorruptValue", func(t *testing.T) {
			backend := factory(t)
			if err := backend.Set(StorageKey, []byte("{not json")); err != nil {
				t.Fatal(err)
			}
			c := NewLocalCache(backend, serializer.NewJSONSerializer())
			if got := c.Load(); got == nil || len(got) != 0 {
				t.Errorf("Expected empty collection for corrupt data, got %v", got)
			}
			if got, err := c.LoadStrict(); err != nil || len(got) != 0 {
				t.Errorf("Expected LoadStrict to read corrupt data as empty, got %v, %v", got, err)
			}
		})

		t.Run("LoadStrictMissingKey", func(t *testing.T) {
			c := NewLocalCache(factory(t), nil)
			got, err := c.LoadStrict()
			if err != nil {
				t.Fatalf("Expected no error for a missing key, got %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Expected empty non-nil collection, got %v", got)
			}
		})
	})
}

func TestMemoryBackend(t *testing.T) {
	runCacheTests(t, "memory", func(t *testing.T) IBackend { return NewMemoryBackend() })
}

func TestFileBackend(t *testing.T) {
	runCacheTests(t, "file", func(t *testing.T) IBackend {
		b, err := NewFileBackend(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		return b
	})
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("FBSTORE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FBSTORE_TEST_REDIS_ADDR not set")
	}
	runCacheTests(t, "redis", func(t *testing.T) IBackend {
		b := NewRedisBackend(addr, 0, "fbstore-test:"+t.Name()+":")
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := b.Set(StorageKey, []byte("[]")); err != nil {
			t.Fatal(err)
		}
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*"))
	if len(files) != 1 {
		t.Errorf("Expected exactly one file, got %v", files)
	}
}

type failingBackend struct{}

func (failingBackend) Get(string) ([]byte, bool, error) { return nil, false, errors.New("unavailable") }
func (failingBackend) Set(string, []byte) error         { return errors.New("unavailable") }
func (failingBackend) Close() error                     { return nil }
func (failingBackend) Name() string                     { return "failing" }

func TestUnavailableBackend(t *testing.T) {
	c := NewLocalCache(failingBackend{}, nil)
	if got := c.Load(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty collection, got %v", got)
	}
	if err := c.Save(sampleEntries()); err == nil {
		t.Errorf("Expected Save to report the backend error")
	}
	if got, err := c.LoadStrict(); err == nil {
		t.Errorf("Expected LoadStrict to report the backend error, got %v", got)
	}
}
