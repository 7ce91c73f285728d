// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes report records to a file or a writer. CSV is the
// report format; JSON, YAML, a text table and a SQLite database are also
// supported.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTable  Format = "table"
	FormatSQLite Format = "sqlite"
)

// NoDataMessage is reported instead of writing an empty export.
const NoDataMessage = "No data to save."

// Options describes the export destination.
type Options struct {
	// Path is the output file. Empty means write to the caller's writer.
	Path string

	// Format overrides the format inferred from Path. Empty infers from the
	// extension, or uses FormatTable when Path is empty.
	Format Format
}

// ParseFormat validates a user-supplied format name. "" is accepted and
// means "infer".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatJSON, FormatYAML, FormatTable, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q: use csv, json, yaml, table, or sqlite", s)
	}
}

// FormatFromPath infers the format from the file extension; unknown
// extensions get CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// Export writes records according to opts. With no records it writes
// NoDataMessage to w and creates nothing. When opts.Path is empty the
// records are rendered to w. A destination that cannot be written yields
// *types.IOError.
func Export(records []types.ProcessedRecord, opts Options, w io.Writer) error {
	if len(records) == 0 {
		fmt.Fprintln(w, NoDataMessage)
		return nil
	}

	format := opts.Format
	if opts.Path == "" {
		if format == "" {
			format = FormatTable
		}
		if format == FormatSQLite {
			return fmt.Errorf("sqlite format requires an output file")
		}
		return write(w, records, format)
	}

	if format == "" {
		format = FormatFromPath(opts.Path)
	}
	if format == FormatSQLite {
		return WriteSQLite(opts.Path, records)
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return &types.IOError{Path: opts.Path, Err: err}
	}
	if err := write(f, records, format); err != nil {
		f.Close()
		return asIOError(opts.Path, err)
	}
	if err := f.Close(); err != nil {
		return &types.IOError{Path: opts.Path, Err: err}
	}
	return nil
}

func write(w io.Writer, records []types.ProcessedRecord, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	case FormatTable:
		WriteTable(w, records)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []types.ProcessedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Header()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records as indented JSON.
func WriteJSON(w io.Writer, records []types.ProcessedRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes records as a YAML list.
func WriteYAML(w io.Writer, records []types.ProcessedRecord) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}

// WriteTable writes records as a human-readable table.
func WriteTable(w io.Writer, records []types.ProcessedRecord) {
	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %s\n",
		"PubmedID", "Title", "Date", "Non-academic Authors", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, r := range records {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %s\n",
			r.PubmedID,
			truncate(r.Title, 50),
			truncate(r.PublicationDate, 12),
			truncate(strings.Join(r.NonAcademicAuthors, "; "), 30),
			r.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func asIOError(path string, err error) error {
	var ioErr *types.IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &types.IOError{Path: path, Err: err}
}
