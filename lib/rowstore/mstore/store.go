package mstore

import (
	"fmt"
	"sync"

	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	mu     sync.RWMutex
	table  [][]string                // table[0] is the header row
	index  *xsync.MapOf[string, int] // id -> position of the first row with that id
	closed bool
}

// NewMemoryStore creates a new in memory row store.
// The table starts with the header row (rowstore.Columns), like a fresh spreadsheet.
//
// Thread-safety: all methods are safe for concurrent use.
func NewMemoryStore() rowstore.IRowStore {
	header := make([]string, len(rowstore.Columns))
	copy(header, rowstore.Columns)
	return &storeImpl{
		table: [][]string{header},
		index: xsync.NewMapOf[string, int](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see rowstore.IRowStore)
// --------------------------------------------------------------------------

func (s *storeImpl) AppendRow(row rowstore.Row) error {
	r, err := rowstore.Normalize(row)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return rowstore.NewError(rowstore.RetCClosed, "store is closed")
	}

	pos := len(s.table)
	s.table = append(s.table, r)
	if id := r.ID(); id != "" {
		// keep the first row for duplicate ids
		s.index.LoadOrStore(id, pos)
	}
	return nil
}

func (s *storeImpl) FindRow(id string) (rowstore.Row, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, rowstore.NewError(rowstore.RetCClosed, "store is closed")
	}

	pos, ok := s.lookup(id)
	if !ok {
		return nil, false, nil
	}
	out := make(rowstore.Row, len(s.table[pos]))
	copy(out, s.table[pos])
	return out, true, nil
}

func (s *storeImpl) UpdateCell(id string, col rowstore.Column, value string) (bool, error) {
	if !col.Valid() || col == rowstore.ColID {
		return false, rowstore.NewError(rowstore.RetCInvalidOperation, fmt.Sprintf("column %s can not be updated", col.Name()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, rowstore.NewError(rowstore.RetCClosed, "store is closed")
	}

	pos, ok := s.lookup(id)
	if !ok {
		return false, nil
	}
	s.table[pos][col] = value
	return true, nil
}

func (s *storeImpl) Rows() ([]rowstore.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, rowstore.NewError(rowstore.RetCClosed, "store is closed")
	}

	rows := make([]rowstore.Row, 0, len(s.table)-1)
	for _, r := range s.table[1:] {
		if rowstore.Row(r).ID() == "" {
			continue
		}
		out := make(rowstore.Row, len(r))
		copy(out, r)
		rows = append(rows, out)
	}
	return rows, nil
}

func (s *storeImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.table = nil
	s.index.Clear()
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// lookup returns the table position of the first row with the given id.
// The caller must hold the lock.
func (s *storeImpl) lookup(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	return s.index.Load(id)
}
