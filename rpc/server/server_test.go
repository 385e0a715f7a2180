package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/ValentinKolb/fbstore/lib/rowstore/mstore"
	"github.com/ValentinKolb/fbstore/rpc/common"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func newTestServer(t *testing.T) (*RPCServer, rowstore.IRowStore) {
	t.Helper()
	rows := mstore.NewMemoryStore()
	s := NewRPCServer(common.ServerConfig{Path: "/feedback", DefaultSource: "sheet"}, nil, rows)
	s.adapter.(*rowStoreServerAdapterImpl).now = func() time.Time { return fixedNow }
	t.Cleanup(func() { _ = s.Close() })
	return s, rows
}

func decode(t *testing.T, raw []byte) common.Response {
	t.Helper()
	var resp common.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("Failed to decode response %s: %v", raw, err)
	}
	return resp
}

func read(t *testing.T, s *RPCServer) []feedback.Entry {
	t.Helper()
	resp := decode(t, s.HandleRead())
	if err := resp.Err(); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	out := make([]feedback.Entry, 0, len(resp.Data))
	for _, p := range resp.Data {
		out = append(out, p.ToEntry())
	}
	return out
}

func TestAppendWithDefaults(t *testing.T) {
	s, _ := newTestServer(t)

	resp := decode(t, s.HandleWrite([]byte(`{"page_id":"exec"}`)))
	if resp.Status != common.StatusOK || resp.ID == "" {
		t.Fatalf("Expected ok response with id, got %+v", resp)
	}

	entries := read(t, s)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != resp.ID {
		t.Errorf("Expected id %s, got %s", resp.ID, e.ID)
	}
	if e.PageID != "exec" || !e.IsPageLevel() || e.Author != "" || e.Comment != "" {
		t.Errorf("Unexpected string fields: %+v", e)
	}
	if e.Round != 1 || e.Rating != 3 || e.Status != feedback.StatusOpen {
		t.Errorf("Expected round 1, rating 3, status open, got %d, %d, %s", e.Round, e.Rating, e.Status)
	}
	if e.Source != "sheet" {
		t.Errorf("Expected default source sheet, got %s", e.Source)
	}
	if e.CreatedAt != "2025-03-14T09:26:53.589Z" {
		t.Errorf("Expected created_at of the server clock, got %s", e.CreatedAt)
	}
}

func TestAppendKeepsClientValues(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"id":"abc","page_id":"p","element_id":"chart","round":2,"author":"A","comment":"c, \"q\"","rating":"5","status":"open","created_at":"2025-01-01T00:00:00.000Z","source":"react"}`
	resp := decode(t, s.HandleWrite([]byte(body)))
	if resp.ID != "abc" {
		t.Fatalf("Expected client id to be kept, got %+v", resp)
	}

	e := read(t, s)[0]
	want := feedback.Entry{ID: "abc", PageID: "p", ElementID: "chart", Round: 2, Author: "A", Comment: `c, "q"`,
		Rating: 5, Status: feedback.StatusOpen, CreatedAt: "2025-01-01T00:00:00.000Z", Source: "react"}
	if e != want {
		t.Errorf("Expected %+v, got %+v", want, e)
	}
}

func TestAppendCoercesNumbers(t *testing.T) {
	s, _ := newTestServer(t)

	decode(t, s.HandleWrite([]byte(`{"id":"a","round":"abc","rating":0}`)))
	e := read(t, s)[0]
	if e.Round != 1 || e.Rating != 3 {
		t.Errorf("Expected defaults for unusable numbers, got round=%d rating=%d", e.Round, e.Rating)
	}
}

func TestUpdateStatus(t *testing.T) {
	s, rows := newTestServer(t)

	decode(t, s.HandleWrite([]byte(`{"id":"dup","comment":"first"}`)))
	decode(t, s.HandleWrite([]byte(`{"id":"dup","comment":"second"}`)))
	before, _, _ := rows.FindRow("dup")

	raw := s.HandleWrite([]byte(`{"action":"update_status","id":"dup","status":"resolved"}`))
	if string(raw) != `{"status":"ok","updated":"dup"}` {
		t.Fatalf("Unexpected response %s", raw)
	}

	entries := read(t, s)
	if entries[0].Status != feedback.StatusResolved || entries[1].Status != feedback.StatusOpen {
		t.Errorf("Expected only the first match to be resolved, got %s and %s", entries[0].Status, entries[1].Status)
	}

	after, _, _ := rows.FindRow("dup")
	for c := range rowstore.Columns {
		col := rowstore.Column(c)
		if col != rowstore.ColStatus && before.Get(col) != after.Get(col) {
			t.Errorf("Expected column %s to be unchanged, got %q -> %q", col.Name(), before.Get(col), after.Get(col))
		}
	}
}

func TestUpdateNumericID(t *testing.T) {
	s, rows := newTestServer(t)
	if err := rows.AppendRow(rowstore.Row{"12345", "p"}); err != nil {
		t.Fatal(err)
	}

	resp := decode(t, s.HandleWrite([]byte(`{"action":"update_status","id":12345,"status":"resolved"}`)))
	if resp.Updated != "12345" {
		t.Errorf("Expected numeric id to match its string form, got %+v", resp)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	raw := s.HandleWrite([]byte(`{"action":"update_status","id":"nope","status":"resolved"}`))
	if string(raw) != `{"status":"error","message":"ID not found"}` {
		t.Errorf("Unexpected response %s", raw)
	}
	resp := decode(t, raw)
	if err := resp.Err(); err != common.ErrIDNotFound {
		t.Errorf("Expected ErrIDNotFound, got %v", err)
	}
}

func TestUpdateInvalidStatus(t *testing.T) {
	s, _ := newTestServer(t)
	decode(t, s.HandleWrite([]byte(`{"id":"a"}`)))

	resp := decode(t, s.HandleWrite([]byte(`{"action":"update_status","id":"a","status":"done"}`)))
	if resp.Status != common.StatusError {
		t.Errorf("Expected error for unknown status, got %+v", resp)
	}
	if read(t, s)[0].Status != feedback.StatusOpen {
		t.Errorf("Expected status to stay open")
	}
}

func TestReadSkipsRowsWithoutID(t *testing.T) {
	s, rows := newTestServer(t)
	for _, r := range []rowstore.Row{{"a", "p", "", "2", "", "", "x"}, {"", "p"}, {"b", "p", "", "", "", "", "4"}} {
		if err := rows.AppendRow(r); err != nil {
			t.Fatal(err)
		}
	}

	raw := s.HandleRead()
	if strings.Count(string(raw), `"id"`) != 2 {
		t.Errorf("Expected 2 rows in %s", raw)
	}

	entries := read(t, s)
	if entries[0].Round != 2 || entries[0].Rating != 3 {
		t.Errorf("Expected round 2 and defaulted rating, got %d, %d", entries[0].Round, entries[0].Rating)
	}
	if entries[1].Round != 1 || entries[1].Rating != 4 {
		t.Errorf("Expected defaulted round and rating 4, got %d, %d", entries[1].Round, entries[1].Rating)
	}
}

func TestEmptyTable(t *testing.T) {
	s, _ := newTestServer(t)
	if raw := s.HandleRead(); string(raw) != `{"status":"ok","data":[]}` {
		t.Errorf("Unexpected response %s", raw)
	}
}

func TestMalformedRequest(t *testing.T) {
	s, _ := newTestServer(t)
	resp := decode(t, s.HandleWrite([]byte(`not json`)))
	if resp.Status != common.StatusError || resp.Message == "" {
		t.Errorf("Expected error response, got %+v", resp)
	}
}

func TestNewRowStore(t *testing.T) {
	rows, err := NewRowStore(common.ServerConfig{RowStore: "sqlite", DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Expected sqlite row store, got %v", err)
	}
	_ = rows.Close()

	if _, err := NewRowStore(common.ServerConfig{RowStore: "sheets"}); err == nil {
		t.Errorf("Expected error for unknown row store")
	}
}
