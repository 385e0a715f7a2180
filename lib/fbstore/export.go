package fbstore

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ValentinKolb/fbstore/lib/cache"
	"github.com/ValentinKolb/fbstore/lib/feedback"
)

// ExportFormat selects the encoding of an export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat converts a format name (csv or json) into an ExportFormat.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(name)); f {
	case ExportCSV, ExportJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format %s. must be one of csv, json", name)
	}
}

// DefaultFileName returns the default file name of an export (feedback.csv or feedback.json).
func (f ExportFormat) DefaultFileName() string {
	return "feedback." + string(f)
}

// csvHeader is the header line of a CSV export
var csvHeader = []string{"id", "page_id", "element_id", "round", "author", "comment", "rating", "status", "created_at", "source"}

// ExportCSV writes the local collection as CSV. Fields containing commas,
// quotes or line breaks are quoted, embedded quotes are doubled.
func (s *Store) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range s.load() {
		record := []string{
			e.ID,
			e.PageID,
			string(e.ElementID),
			strconv.Itoa(e.Round),
			e.Author,
			e.Comment,
			strconv.Itoa(e.Rating),
			string(e.Status),
			e.CreatedAt,
			e.Source,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the local collection as a JSON array indented with two spaces.
func (s *Store) ExportJSON(w io.Writer) error {
	entries := s.load()
	if entries == nil {
		entries = []feedback.Entry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// Export writes the local collection in the given format.
func (s *Store) Export(w io.Writer, format ExportFormat) error {
	switch format {
	case ExportCSV:
		return s.ExportCSV(w)
	case ExportJSON:
		return s.ExportJSON(w)
	default:
		return fmt.Errorf("invalid export format %s", format)
	}
}

// ExportFile writes an export to path. The file is replaced atomically.
func (s *Store) ExportFile(path string, format ExportFormat) error {
	var buf bytes.Buffer
	if err := s.Export(&buf, format); err != nil {
		return err
	}
	if err := cache.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	Logger.Infof("Exported feedback to %s", path)
	return nil
}
