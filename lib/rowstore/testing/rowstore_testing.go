package testing

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/fbstore/lib/rowstore"
)

// StoreFactory creates a new, empty row store for one test
type StoreFactory func(t *testing.T) rowstore.IRowStore

// RunRowStoreTests runs the conformance test suite for an IRowStore implementation.
func RunRowStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Append&Rows", func(t *testing.T) {
			testAppendRows(t, factory(t))
		})

		t.Run("EmptyIDSkipped", func(t *testing.T) {
			testEmptyIDSkipped(t, factory(t))
		})

		t.Run("FindFirstMatch", func(t *testing.T) {
			testFindFirstMatch(t, factory(t))
		})

		t.Run("UpdateCell", func(t *testing.T) {
			testUpdateCell(t, factory(t))
		})

		t.Run("InvalidOperations", func(t *testing.T) {
			testInvalidOperations(t, factory(t))
		})

		t.Run("RowsAreCopies", func(t *testing.T) {
			testRowsAreCopies(t, factory(t))
		})

		t.Run("ConcurrentAppends", func(t *testing.T) {
			testConcurrentAppends(t, factory(t))
		})

		t.Run("Closed", func(t *testing.T) {
			testClosed(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func row(id, comment, status string) rowstore.Row {
	return rowstore.Row{id, "page", "", "1", "author", comment, "3", status, "2025-01-01T00:00:00.000Z", "test"}
}

func mustAppend(t *testing.T, s rowstore.IRowStore, rows ...rowstore.Row) {
	t.Helper()
	for _, r := range rows {
		if err := s.AppendRow(r); err != nil {
			t.Fatalf("AppendRow(%v) failed: %v", r, err)
		}
	}
}

func mustRows(t *testing.T, s rowstore.IRowStore) []rowstore.Row {
	t.Helper()
	rows, err := s.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	return rows
}

func expectCode(t *testing.T, err error, code rowstore.RetCode) {
	t.Helper()
	var rsErr *rowstore.Error
	if !errors.As(err, &rsErr) {
		t.Fatalf("Expected *rowstore.Error, got %v", err)
	}
	if rsErr.Code != code {
		t.Errorf("Expected code %d, got %d (%v)", code, rsErr.Code, rsErr)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testAppendRows(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	if rows := mustRows(t, s); len(rows) != 0 {
		t.Fatalf("Expected empty store, got %v", rows)
	}

	mustAppend(t, s, row("a", "first", "open"), row("b", "second", "open"), row("c", "third", "resolved"))

	rows := mustRows(t, s)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"a", "b", "c"} {
		if rows[i].ID() != want {
			t.Errorf("Row %d: expected id %s, got %s", i, want, rows[i].ID())
		}
		if len(rows[i]) != len(rowstore.Columns) {
			t.Errorf("Row %d: expected %d cells, got %d", i, len(rowstore.Columns), len(rows[i]))
		}
	}
	if rows[2].Get(rowstore.ColStatus) != "resolved" {
		t.Errorf("Expected status resolved, got %s", rows[2].Get(rowstore.ColStatus))
	}

	// short rows are padded
	mustAppend(t, s, rowstore.Row{"d", "page-d"})
	got, found, err := s.FindRow("d")
	if err != nil || !found {
		t.Fatalf("Expected to find padded row, found=%v err=%v", found, err)
	}
	if got.Get(rowstore.ColPageID) != "page-d" || got.Get(rowstore.ColSource) != "" || len(got) != len(rowstore.Columns) {
		t.Errorf("Unexpected padded row %v", got)
	}
}

func testEmptyIDSkipped(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	mustAppend(t, s, row("a", "x", "open"), row("", "blank", "open"), row("b", "y", "open"))

	rows := mustRows(t, s)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if _, found, _ := s.FindRow(""); found {
		t.Errorf("Expected empty id to never match")
	}
	if ok, _ := s.UpdateCell("", rowstore.ColStatus, "resolved"); ok {
		t.Errorf("Expected update of empty id to match nothing")
	}
}

func testFindFirstMatch(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	mustAppend(t, s, row("dup", "first", "open"), row("other", "x", "open"), row("dup", "second", "open"))

	got, found, err := s.FindRow("dup")
	if err != nil || !found {
		t.Fatalf("Expected to find row, found=%v err=%v", found, err)
	}
	if got.Get(rowstore.ColComment) != "first" {
		t.Errorf("Expected first matching row, got comment %q", got.Get(rowstore.ColComment))
	}

	if _, found, err := s.FindRow("missing"); found || err != nil {
		t.Errorf("Expected missing id to be not found without error, found=%v err=%v", found, err)
	}
}

func testUpdateCell(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	mustAppend(t, s, row("dup", "first", "open"), row("dup", "second", "open"))

	updated, err := s.UpdateCell("dup", rowstore.ColStatus, "resolved")
	if err != nil || !updated {
		t.Fatalf("Expected update to succeed, updated=%v err=%v", updated, err)
	}

	rows := mustRows(t, s)
	if rows[0].Get(rowstore.ColStatus) != "resolved" {
		t.Errorf("Expected first row to be resolved, got %s", rows[0].Get(rowstore.ColStatus))
	}
	if rows[1].Get(rowstore.ColStatus) != "open" {
		t.Errorf("Expected second row to stay open, got %s", rows[1].Get(rowstore.ColStatus))
	}
	for c := range rowstore.Columns {
		col := rowstore.Column(c)
		if col == rowstore.ColStatus {
			continue
		}
		if want := row("dup", "first", "open").Get(col); rows[0].Get(col) != want {
			t.Errorf("Expected column %s unchanged (%q), got %q", col.Name(), want, rows[0].Get(col))
		}
	}

	updated, err = s.UpdateCell("missing", rowstore.ColStatus, "resolved")
	if err != nil || updated {
		t.Errorf("Expected no update for unknown id, updated=%v err=%v", updated, err)
	}
}

func testInvalidOperations(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	mustAppend(t, s, row("a", "x", "open"))

	_, err := s.UpdateCell("a", rowstore.ColID, "b")
	expectCode(t, err, rowstore.RetCInvalidOperation)

	_, err = s.UpdateCell("a", rowstore.Column(len(rowstore.Columns)), "b")
	expectCode(t, err, rowstore.RetCInvalidOperation)

	tooLong := append(row("z", "x", "open"), "extra")
	expectCode(t, s.AppendRow(tooLong), rowstore.RetCInvalidOperation)

	if rows := mustRows(t, s); len(rows) != 1 {
		t.Errorf("Expected failed operations to leave the table unchanged, got %d rows", len(rows))
	}
}

func testRowsAreCopies(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	r := row("a", "original", "open")
	mustAppend(t, s, r)
	r[rowstore.ColComment] = "changed by caller"

	rows := mustRows(t, s)
	rows[0][rowstore.ColComment] = "changed again"

	got, _, _ := s.FindRow("a")
	if got.Get(rowstore.ColComment) != "original" {
		t.Errorf("Expected stored row to be isolated from callers, got %q", got.Get(rowstore.ColComment))
	}
}

func testConcurrentAppends(t *testing.T, s rowstore.IRowStore) {
	defer s.Close()

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.AppendRow(row(fmt.Sprintf("w%d-%d", w, i), "c", "open")); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Concurrent append failed: %v", err)
	}

	if rows := mustRows(t, s); len(rows) != workers*perWorker {
		t.Errorf("Expected %d rows, got %d", workers*perWorker, len(rows))
	}
}

func testClosed(t *testing.T, s rowstore.IRowStore) {
	mustAppend(t, s, row("a", "x", "open"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	expectCode(t, s.AppendRow(row("b", "x", "open")), rowstore.RetCClosed)
	_, err := s.Rows()
	expectCode(t, err, rowstore.RetCClosed)
}
