package feedback

import (
	"encoding/json"
	"time"
)

// --------------------------------------------------------------------------
// Status
// --------------------------------------------------------------------------

// Status is the review state of a feedback entry.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusResolved
}

// Toggle returns the opposite state.
func (s Status) Toggle() Status {
	if s == StatusResolved {
		return StatusOpen
	}
	return StatusResolved
}

// --------------------------------------------------------------------------
// NullString
// --------------------------------------------------------------------------

// NullString is a string that is encoded as JSON null when empty.
// It is used for the element id, where null means "page-level".
type NullString string

// MarshalJSON implements the json.Marshaller interface.
func (n NullString) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(n))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// null and "" both decode to the empty value.
func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NullString(s)
	return nil
}

// --------------------------------------------------------------------------
// Entry
// --------------------------------------------------------------------------

// Entry is one comment/rating attached to a dashboard page or to an element of it.
type Entry struct {
	ID        string     `json:"id" validate:"required"`
	PageID    string     `json:"page_id"`
	ElementID NullString `json:"element_id"`
	Round     int        `json:"round" validate:"gte=1"`
	Author    string     `json:"author"`
	Comment   string     `json:"comment"`
	Rating    int        `json:"rating" validate:"gte=1,lte=5"`
	Status    Status     `json:"status" validate:"oneof=open resolved"`
	CreatedAt string     `json:"created_at"`
	Source    string     `json:"source"`
}

// IsPageLevel reports whether the entry is not attached to a specific element.
func (e Entry) IsPageLevel() bool {
	return e.ElementID == ""
}

// CreatedTime parses CreatedAt. The boolean is false if the timestamp is not valid RFC 3339.
func (e Entry) CreatedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, e.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Fields holds the caller supplied values for a new entry.
// Zero values are treated as omitted and replaced by defaults (see Fields.Build).
type Fields struct {
	ID        string
	PageID    string
	ElementID string
	Round     int
	Author    string
	Comment   string
	Rating    int
	Source    string
}

const (
	// DefaultRound is used when no round is supplied.
	DefaultRound = 1
	// DefaultRating is used when no rating is supplied.
	DefaultRating = 3
	// DefaultSource is the client tag used when neither the caller nor the configuration names one.
	DefaultSource = "fbstore"
)

// Build creates a new open entry from the fields.
// source is the calling client's tag, used when f.Source is empty.
func (f Fields) Build(now time.Time, source string) Entry {
	e := Entry{
		ID:        f.ID,
		PageID:    f.PageID,
		ElementID: NullString(f.ElementID),
		Round:     f.Round,
		Author:    f.Author,
		Comment:   f.Comment,
		Rating:    f.Rating,
		Status:    StatusOpen,
		CreatedAt: FormatTime(now),
		Source:    f.Source,
	}
	if e.ID == "" {
		e.ID = NewIDAt(now)
	}
	if e.Round == 0 {
		e.Round = DefaultRound
	}
	if e.Rating == 0 {
		e.Rating = DefaultRating
	}
	if e.Source == "" {
		e.Source = source
	}
	if e.Source == "" {
		e.Source = DefaultSource
	}
	return e
}

// FormatTime renders t the way created_at timestamps are stored (UTC, millisecond precision).
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
