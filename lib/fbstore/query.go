package fbstore

import (
	"slices"
	"strings"

	"github.com/ValentinKolb/fbstore/lib/feedback"
)

// Filter selects entries in GetFeedback. Zero values mean "no criterion".
type Filter struct {
	PageID string
	Round  int
	// ElementID selects an element when not nil. A pointer to "" selects the
	// page level entries (no element id).
	ElementID *string
	Status    feedback.Status
}

// PageLevel returns a pointer to "" for Filter.ElementID.
func PageLevel() *string {
	s := ""
	return &s
}

// Element returns a pointer to id for Filter.ElementID.
func Element(id string) *string {
	return &id
}

func (f Filter) match(e feedback.Entry) bool {
	if f.PageID != "" && e.PageID != f.PageID {
		return false
	}
	if f.Round != 0 && e.Round != f.Round {
		return false
	}
	if f.ElementID != nil && string(e.ElementID) != *f.ElementID {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// --------------------------------------------------------------------------
// Read operations (local cache only)
// --------------------------------------------------------------------------

// GetFeedback returns the matching entries, newest first. Entries with equal
// timestamps keep their insertion order.
func (s *Store) GetFeedback(f Filter) []feedback.Entry {
	out := make([]feedback.Entry, 0)
	for _, e := range s.load() {
		if f.match(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b feedback.Entry) int {
		return compareCreated(b, a)
	})
	return out
}

// GetElementCount returns the number of entries on the page attached to the element.
func (s *Store) GetElementCount(pageID, elementID string) int {
	n := 0
	for _, e := range s.load() {
		if e.PageID == pageID && string(e.ElementID) == elementID {
			n++
		}
	}
	return n
}

// GetMaxRound returns the highest round of all entries, or 1 if there are none.
func (s *Store) GetMaxRound() int {
	highest := feedback.DefaultRound
	for _, e := range s.load() {
		highest = max(highest, e.Round)
	}
	return highest
}

// GetAllPageIDs returns the distinct page ids in order of first appearance.
func (s *Store) GetAllPageIDs() []string {
	return distinct(s.load(), false, func(e feedback.Entry) string { return e.PageID })
}

// GetAllElementIDs returns the distinct non empty element ids in order of first appearance.
func (s *Store) GetAllElementIDs() []string {
	return distinct(s.load(), true, func(e feedback.Entry) string { return string(e.ElementID) })
}

// Count returns the number of entries in the local collection.
func (s *Store) Count() int {
	return len(s.load())
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *Store) load() []feedback.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Load()
}

func distinct(entries []feedback.Entry, skipEmpty bool, key func(feedback.Entry) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range entries {
		k := key(e)
		if skipEmpty && k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// compareCreated orders entries by creation time. Timestamps that can not be
// parsed sort before all valid ones and are compared as strings.
func compareCreated(a, b feedback.Entry) int {
	ta, okA := a.CreatedTime()
	tb, okB := b.CreatedTime()
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	}
}
