package feedback

import (
	"encoding/json"
	"regexp"
	"strconv"
	"testing"
	"time"
)

func TestBuildAppliesDefaults(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	e := Fields{PageID: "exec", Author: "Ana", Comment: "Great"}.Build(now, "cli")

	if e.ID == "" {
		t.Errorf("Expected a generated id")
	}
	if e.Status != StatusOpen {
		t.Errorf("Expected status %s, got %s", StatusOpen, e.Status)
	}
	if e.Round != DefaultRound {
		t.Errorf("Expected round %d, got %d", DefaultRound, e.Round)
	}
	if e.Rating != DefaultRating {
		t.Errorf("Expected rating %d, got %d", DefaultRating, e.Rating)
	}
	if e.Source != "cli" {
		t.Errorf("Expected source cli, got %s", e.Source)
	}
	if e.CreatedAt != "2025-03-14T09:26:53.589Z" {
		t.Errorf("Unexpected created_at %s", e.CreatedAt)
	}
	if !e.IsPageLevel() {
		t.Errorf("Expected a page-level entry")
	}
}

func TestBuildKeepsSuppliedValues(t *testing.T) {
	e := Fields{ID: "abc", ElementID: "kpi-1", Round: 2, Rating: 5, Source: "react"}.Build(time.Now(), "cli")
	if e.ID != "abc" || e.ElementID != "kpi-1" || e.Round != 2 || e.Rating != 5 || e.Source != "react" {
		t.Errorf("Supplied fields were overwritten: %+v", e)
	}
}

func TestBuildFallsBackToDefaultSource(t *testing.T) {
	e := Fields{}.Build(time.Now(), "")
	if e.Source != DefaultSource {
		t.Errorf("Expected source %s, got %s", DefaultSource, e.Source)
	}
}

func TestNewIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := NewIDAt(now)
	prefix := strconv.FormatInt(now.UnixMilli(), 36)

	if !regexp.MustCompile("^" + prefix + "[0-9a-z]{5}$").MatchString(id) {
		t.Errorf("Unexpected id format: %s", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewIDAt(now)] = true
	}
	if len(seen) < 95 {
		t.Errorf("Expected mostly distinct ids, got %d of 100", len(seen))
	}
}

func TestElementIDJSON(t *testing.T) {
	b, err := json.Marshal(Entry{ID: "x"})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if v, ok := raw["element_id"]; !ok || v != nil {
		t.Errorf("Expected element_id null, got %v", v)
	}

	var e Entry
	if err := json.Unmarshal([]byte(`{"id":"y","element_id":"chart"}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.ElementID != "chart" {
		t.Errorf("Expected element id chart, got %q", e.ElementID)
	}
	if err := json.Unmarshal([]byte(`{"id":"y","element_id":null}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.ElementID != "" {
		t.Errorf("Expected empty element id, got %q", e.ElementID)
	}
}

func TestValidate(t *testing.T) {
	valid := Entry{ID: "a", Round: 1, Rating: 5, Status: StatusOpen}
	if err := Validate(valid); err != nil {
		t.Errorf("Expected valid entry, got %v", err)
	}

	invalid := []Entry{
		{ID: "", Round: 1, Rating: 3, Status: StatusOpen},
		{ID: "a", Round: 0, Rating: 3, Status: StatusOpen},
		{ID: "a", Round: 1, Rating: 6, Status: StatusOpen},
		{ID: "a", Round: 1, Rating: 0, Status: StatusOpen},
		{ID: "a", Round: 1, Rating: 3, Status: "done"},
	}
	for i, e := range invalid {
		if err := Validate(e); err == nil {
			t.Errorf("Expected entry %d to be invalid: %+v", i, e)
		}
	}
}

func TestStatusToggle(t *testing.T) {
	if StatusOpen.Toggle() != StatusResolved || StatusResolved.Toggle() != StatusOpen {
		t.Errorf("Toggle does not switch between open and resolved")
	}
	if Status("other").Valid() {
		t.Errorf("Unknown status reported as valid")
	}
}
