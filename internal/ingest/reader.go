// Package ingest turns tabular test-case definitions into validated,
// grouped scenario models. It owns the table readers, the schema validator
// and the scenario grouping parser.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a raw ingested sheet: one header row and zero or more data rows.
// Rows may be shorter than the header; missing cells read as empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the trimmed value of the given column in a row, or "" when
// the row does not reach that column.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Format represents the format of an input definition file.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatCSV represents a comma-separated (.csv) definition file
	FormatCSV
	// FormatMarkdown represents a Markdown table (.md, .markdown) definition file
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Reader is the interface that all table readers must implement
type Reader interface {
	// Parse reads from an io.Reader and returns the raw table
	Parse(r io.Reader) (*Table, error)
}

// DetectFormat automatically detects the input format based on file extension
// Supported extensions:
//   - .csv -> FormatCSV
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// NewReader creates a new reader instance for the specified format
// Returns an error if the format is unknown or unsupported
func NewReader(format Format) (Reader, error) {
	switch format {
	case FormatCSV:
		return NewCSVReader(), nil
	case FormatMarkdown:
		return NewMarkdownReader(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ReadFile is a convenience function that auto-detects the format from the
// file extension, opens the file and parses it into a Table.
func ReadFile(path string) (*Table, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .csv, .md, .markdown)", path)
	}

	reader, err := NewReader(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := reader.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	return table, nil
}
