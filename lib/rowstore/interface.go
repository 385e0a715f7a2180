package rowstore

import "fmt"

// --------------------------------------------------------------------------
// Table layout
// --------------------------------------------------------------------------

// Column is the position of a cell within a row.
type Column int

const (
	ColID Column = iota
	ColPageID
	ColElementID
	ColRound
	ColAuthor
	ColComment
	ColRating
	ColStatus
	ColCreatedAt
	ColSource
)

// Columns is the header row of the table, in column order.
var Columns = []string{
	"id",
	"page_id",
	"element_id",
	"round",
	"author",
	"comment",
	"rating",
	"status",
	"created_at",
	"source",
}

// Name returns the header name of the column.
func (c Column) Name() string {
	if c < 0 || int(c) >= len(Columns) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return Columns[c]
}

// Valid reports whether c is a column of the table.
func (c Column) Valid() bool {
	return c >= 0 && int(c) < len(Columns)
}

// ColumnByName returns the column with the given header name.
func ColumnByName(name string) (Column, bool) {
	for i, n := range Columns {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// Row is one table row, one string cell per column.
type Row []string

// NewRow returns an empty row with one cell per column.
func NewRow() Row {
	return make(Row, len(Columns))
}

// Get returns the cell of column c (empty if the row is too short).
func (r Row) Get(c Column) string {
	if !c.Valid() || int(c) >= len(r) {
		return ""
	}
	return r[c]
}

// ID returns the id cell of the row.
func (r Row) ID() string {
	return r.Get(ColID)
}

// Normalize returns a copy of r with exactly one cell per column.
// Missing cells are empty, an error is returned if r has too many cells.
func Normalize(r Row) (Row, error) {
	if len(r) > len(Columns) {
		return nil, NewError(RetCInvalidOperation, fmt.Sprintf("row has %d cells, table has %d columns", len(r), len(Columns)))
	}
	out := NewRow()
	copy(out, r)
	return out, nil
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IRowStore is an append only table with a fixed column layout.
// Rows are kept in insertion order. Ids are compared as strings and are not
// required to be unique: lookups always act on the first matching row.
type IRowStore interface {
	// AppendRow appends a row at the end of the table.
	AppendRow(row Row) (err error)
	// FindRow returns the first row whose id matches. The boolean reports whether a row was found.
	FindRow(id string) (row Row, found bool, err error)
	// UpdateCell overwrites one cell of the first row whose id matches.
	// The boolean reports whether a row was found. The id column can not be updated.
	UpdateCell(id string, col Column, value string) (updated bool, err error)
	// Rows returns all rows in insertion order. Rows with an empty id are skipped.
	Rows() (rows []Row, err error)
	// Close releases the underlying storage.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	case RetCClosed:
		errorCode = "Closed"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("RowStoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new RowStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                   // 1: Operation failed due to an internal (storage) error.
	RetCInvalidOperation                // 2: Invalid operation (e.g. malformed row, unknown column).
	RetCClosed                          // 3: The store has been closed.
)
