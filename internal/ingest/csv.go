package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader parses comma-separated test-case definitions. The first record
// is the header; subsequent records are data rows. Records are allowed to
// have fewer fields than the header (exports from spreadsheet tools drop
// trailing empty cells).
type CSVReader struct{}

// NewCSVReader creates a new CSVReader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Parse reads CSV content and returns the raw table.
func (p *CSVReader) Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV input: no header row")
	}

	return &Table{
		Header: records[0],
		Rows:   records[1:],
	}, nil
}
