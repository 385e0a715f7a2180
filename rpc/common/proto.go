package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/fbstore/lib/feedback"
)

var (
	// ErrIDNotFound is returned by a status update for an id the service does not know.
	ErrIDNotFound = errors.New("ID not found")
	// ErrRemoteDisabled is returned when no remote endpoint is configured.
	ErrRemoteDisabled = errors.New("remote feedback service not configured")
)

// --------------------------------------------------------------------------
// Response Structure
// --------------------------------------------------------------------------

// ResponseStatus is the status field of every service response.
type ResponseStatus string

const (
	StatusOK    ResponseStatus = "ok"
	StatusError ResponseStatus = "error"
)

// Response is the body of every service reply. Which fields are used depends
// on the request that was answered.
type Response struct {
	Status  ResponseStatus `json:"status"`
	Data    []RowPayload   `json:"data,omitempty"`    // Used for: read
	ID      string         `json:"id,omitempty"`      // Used for: append
	Updated string         `json:"updated,omitempty"` // Used for: update_status
	Message string         `json:"message,omitempty"` // Empty if no error, otherwise contains the error message
}

// Err converts an error response into a Go error (nil for ok responses).
func (r *Response) Err() error {
	if r.Status == StatusOK {
		return nil
	}
	if r.Message == ErrIDNotFound.Error() {
		return ErrIDNotFound
	}
	if r.Message == "" {
		return fmt.Errorf("remote error (status %q)", r.Status)
	}
	return fmt.Errorf("remote error: %s", r.Message)
}

// NewReadResponse creates a new read response
func NewReadResponse(rows []RowPayload) *Response {
	if rows == nil {
		rows = []RowPayload{}
	}
	return &Response{Status: StatusOK, Data: rows}
}

// NewAppendResponse creates a new append response
func NewAppendResponse(id string) *Response {
	return &Response{Status: StatusOK, ID: id}
}

// NewUpdateResponse creates a new update_status response
func NewUpdateResponse(id string) *Response {
	return &Response{Status: StatusOK, Updated: id}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(msg string) *Response {
	return &Response{Status: StatusError, Message: msg}
}

// MarshalJSON makes sure a read response always carries a data array.
func (r Response) MarshalJSON() ([]byte, error) {
	type alias Response
	if r.Data != nil {
		return json.Marshal(struct {
			alias
			Data []RowPayload `json:"data"`
		}{alias(r), r.Data})
	}
	return json.Marshal(alias(r))
}

// --------------------------------------------------------------------------
// Request Structure
// --------------------------------------------------------------------------

// Action selects what a POST request does. Anything other than
// ActionUpdateStatus appends a row.
type Action string

const (
	ActionAppend       Action = ""
	ActionUpdateStatus Action = "update_status"
)

// Request is the body of a POST request.
type Request struct {
	Action Action `json:"action,omitempty"`
	RowPayload
}

// NewAppendRequest creates a new append request carrying the whole entry
func NewAppendRequest(e feedback.Entry) *Request {
	return &Request{
		Action:     ActionAppend,
		RowPayload: PayloadFromEntry(e),
	}
}

// NewUpdateStatusRequest creates a new update_status request
func NewUpdateStatusRequest(id string, status feedback.Status) *Request {
	return &Request{
		Action: ActionUpdateStatus,
		RowPayload: RowPayload{
			ID:     FlexString(id),
			Status: status,
		},
	}
}

// --------------------------------------------------------------------------
// Row payload (one table row on the wire)
// --------------------------------------------------------------------------

// RowPayload is the loosely typed wire form of one row. Numbers may arrive as
// JSON numbers or strings and ids may arrive as numbers; they are coerced by
// ToEntry.
type RowPayload struct {
	ID        FlexString          `json:"id,omitempty"`
	PageID    string              `json:"page_id,omitempty"`
	ElementID feedback.NullString `json:"element_id,omitempty"`
	Round     FlexInt             `json:"round,omitzero"`
	Author    string              `json:"author,omitempty"`
	Comment   string              `json:"comment,omitempty"`
	Rating    FlexInt             `json:"rating,omitzero"`
	Status    feedback.Status     `json:"status,omitempty"`
	CreatedAt string              `json:"created_at,omitempty"`
	Source    string              `json:"source,omitempty"`
}

// PayloadFromEntry converts an entry into its wire form
func PayloadFromEntry(e feedback.Entry) RowPayload {
	return RowPayload{
		ID:        FlexString(e.ID),
		PageID:    e.PageID,
		ElementID: e.ElementID,
		Round:     FlexInt{Value: e.Round, Valid: true},
		Author:    e.Author,
		Comment:   e.Comment,
		Rating:    FlexInt{Value: e.Rating, Valid: true},
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		Source:    e.Source,
	}
}

// ToEntry converts a row received from the service into an entry.
// A round or rating that is missing, zero or not numeric falls back to
// feedback.DefaultRound / feedback.DefaultRating, so no invalid number leaks
// into sorting or arithmetic.
func (p RowPayload) ToEntry() feedback.Entry {
	return feedback.Entry{
		ID:        string(p.ID),
		PageID:    p.PageID,
		ElementID: p.ElementID,
		Round:     p.Round.Or(feedback.DefaultRound),
		Author:    p.Author,
		Comment:   p.Comment,
		Rating:    p.Rating.Or(feedback.DefaultRating),
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		Source:    p.Source,
	}
}

// --------------------------------------------------------------------------
// Coercion helpers
// --------------------------------------------------------------------------

// FlexInt is an integer that accepts JSON numbers, numeric strings and null.
// Valid is false if the value was absent or could not be converted.
type FlexInt struct {
	Value int
	Valid bool
}

// ParseFlexInt converts a cell value the way the service does.
func ParseFlexInt(s string) FlexInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexInt{}
	}
	if i, err := strconv.Atoi(s); err == nil {
		return FlexInt{Value: i, Valid: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FlexInt{Value: int(f), Valid: true}
	}
	return FlexInt{}
}

// Or returns the value, or def if it is invalid or zero.
func (f FlexInt) Or(def int) int {
	if !f.Valid || f.Value == 0 {
		return def
	}
	return f.Value
}

// IsZero reports whether the value is unset (used by the omitzero tag).
func (f FlexInt) IsZero() bool {
	return !f.Valid
}

// MarshalJSON implements the json.Marshaller interface.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = ParseFlexInt(s)
		return nil
	}
	if len(data) > 0 && (data[0] == 't' || data[0] == 'f') {
		*f = FlexInt{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = ParseFlexInt(n.String())
	return nil
}

// FlexString is a string that also accepts JSON numbers (ids written by
// spreadsheets are sometimes numeric).
type FlexString string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
