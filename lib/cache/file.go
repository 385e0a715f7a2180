package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type fileBackend struct {
	dir string
}

// NewFileBackend creates a backend that keeps one file per key inside dir.
// The directory is created if it does not exist.
func NewFileBackend(dir string) (IBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("file backend: no data directory given")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file backend: %w", err)
	}
	return &fileBackend{dir: dir}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache.IBackend)
// --------------------------------------------------------------------------

func (b *fileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *fileBackend) Set(key string, value []byte) error {
	return WriteFileAtomic(b.path(key), value)
}

func (b *fileBackend) Close() error {
	return nil
}

func (b *fileBackend) Name() string {
	return "file"
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (b *fileBackend) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(b.dir, name+".data")
}

// WriteFileAtomic writes data to a temporary file next to path and renames it,
// so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
