package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/lni/dragonboat/v4/logger"

	_ "modernc.org/sqlite"
)

var Logger = logger.GetLogger("rowstore")

// queryTimeout bounds every statement
const queryTimeout = 5 * time.Second

type storeImpl struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the feedback table in the SQLite database at path.
// Use ":memory:" for a private in memory database.
func NewSQLiteStore(path string) (rowstore.IRowStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// a single connection serializes writers and keeps ":memory:" databases alive
	db.SetMaxOpenConns(1)

	s := &storeImpl{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init feedback table: %w", err)
	}
	Logger.Infof("Using sqlite row store at %s", path)
	return s, nil
}

func (s *storeImpl) migrate() error {
	cols := make([]string, len(rowstore.Columns))
	for i, c := range rowstore.Columns {
		cols[i] = c + " TEXT NOT NULL DEFAULT ''"
	}
	query := `CREATE TABLE IF NOT EXISTS feedback (` + strings.Join(cols, ", ") + `);
	CREATE INDEX IF NOT EXISTS feedback_id ON feedback (id);`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// --------------------------------------------------------------------------
// Interface Methods (docu see rowstore.IRowStore)
// --------------------------------------------------------------------------

func (s *storeImpl) AppendRow(row rowstore.Row) error {
	r, err := rowstore.Normalize(row)
	if err != nil {
		return err
	}

	args := make([]any, len(r))
	for i, v := range r {
		args[i] = v
	}
	query := `INSERT INTO feedback (` + strings.Join(rowstore.Columns, ", ") + `) VALUES (?` +
		strings.Repeat(", ?", len(rowstore.Columns)-1) + `)`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *storeImpl) FindRow(id string) (rowstore.Row, bool, error) {
	if id == "" {
		return nil, false, nil
	}
	query := `SELECT ` + strings.Join(rowstore.Columns, ", ") + ` FROM feedback WHERE id = ? ORDER BY rowid LIMIT 1`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, false, wrap(err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, false, wrap(rows.Err())
	}
	r, err := scanRow(rows)
	if err != nil {
		return nil, false, wrap(err)
	}
	return r, true, nil
}

func (s *storeImpl) UpdateCell(id string, col rowstore.Column, value string) (bool, error) {
	if !col.Valid() || col == rowstore.ColID {
		return false, rowstore.NewError(rowstore.RetCInvalidOperation, fmt.Sprintf("column %s can not be updated", col.Name()))
	}
	if id == "" {
		return false, nil
	}
	// col comes from the fixed column list, never from user input
	query := `UPDATE feedback SET ` + col.Name() + ` = ?
		WHERE rowid = (SELECT rowid FROM feedback WHERE id = ? ORDER BY rowid LIMIT 1)`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return false, wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err)
	}
	return n > 0, nil
}

func (s *storeImpl) Rows() ([]rowstore.Row, error) {
	query := `SELECT ` + strings.Join(rowstore.Columns, ", ") + ` FROM feedback WHERE id <> '' ORDER BY rowid`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]rowstore.Row, 0)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (s *storeImpl) Close() error {
	return s.db.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func scanRow(rows *sql.Rows) (rowstore.Row, error) {
	r := rowstore.NewRow()
	dest := make([]any, len(r))
	for i := range r {
		dest[i] = &r[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return r, nil
}

// wrap converts a database error into a *rowstore.Error (nil stays nil)
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return rowstore.NewError(rowstore.RetCClosed, err.Error())
	}
	return rowstore.NewError(rowstore.RetCInternalError, err.Error())
}
