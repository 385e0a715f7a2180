package mstore

import (
	"testing"

	"github.com/ValentinKolb/fbstore/lib/rowstore"
	rstesting "github.com/ValentinKolb/fbstore/lib/rowstore/testing"
)

func TestMemoryStore(t *testing.T) {
	rstesting.RunRowStoreTests(t, "MemoryStore", func(t *testing.T) rowstore.IRowStore {
		return NewMemoryStore()
	})
}

func TestHeaderRowIsNotReturned(t *testing.T) {
	s := NewMemoryStore().(*storeImpl)
	if len(s.table) != 1 || s.table[0][0] != "id" {
		t.Fatalf("Expected table to start with the header row, got %v", s.table)
	}
	rows, err := s.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no data rows, got %v", rows)
	}
}
