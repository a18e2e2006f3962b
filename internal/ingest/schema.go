package ingest

import (
	"fmt"
	"strings"

	"github.com/harrison/testforge/internal/diag"
)

// Mandatory column names. Header cells are trimmed before matching.
const (
	ColScenario    = "Test Scenario"
	ColCaseID      = "Test Case ID"
	ColDescription = "Test Case Description"
	ColSteps       = "Detail Steps"
	ColData        = "Test Data"
	ColExpected    = "Expected Result"
	ColPriority    = "Testcase Priority"
)

// mandatoryColumns lists every column the schema requires, in canonical order.
var mandatoryColumns = []string{
	ColScenario,
	ColCaseID,
	ColDescription,
	ColSteps,
	ColData,
	ColExpected,
	ColPriority,
}

// validPriorities are the recognized priority literals, matched
// case-insensitively against the trimmed cell value.
var validPriorities = map[string]bool{"P1": true, "P2": true, "P3": true}

// SchemaError is the fatal validation failure class: a missing mandatory
// column or an invalid priority literal. It aborts the pipeline before any
// grouping occurs.
type SchemaError struct {
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return "schema validation failed: " + e.Message
}

// Columns maps a column name to its index in the header row.
type Columns map[string]int

// ValidateSchema checks the header for the mandatory columns and scans every
// data row for priority legality. It always scans all rows to completion
// before returning, so the diagnostics list is complete even on failure.
//
// Fatal conditions (missing columns, invalid priorities) are aggregated into
// a single SchemaError. Non-fatal irregularities (a row whose description,
// steps and expected-result cells are all empty, or a scenario cell that is
// empty before any scenario has been established) are recorded as warnings.
//
// Row numbers in messages and diagnostics are 1-based spreadsheet rows: the
// header is row 1, the first data row is row 2.
func ValidateSchema(table *Table) (Columns, *diag.List, error) {
	diags := &diag.List{}

	cols := make(Columns, len(mandatoryColumns))
	for idx, name := range table.Header {
		trimmed := strings.TrimSpace(name)
		if _, seen := cols[trimmed]; !seen {
			cols[trimmed] = idx
		}
	}

	var missing []string
	for _, name := range mandatoryColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, fmt.Sprintf("%q", name))
		}
	}
	if len(missing) > 0 {
		return nil, diags, &SchemaError{
			Message: fmt.Sprintf("missing mandatory column(s): %s", strings.Join(missing, ", ")),
		}
	}

	var badPriorities []string
	scenarioSeen := false

	for i, row := range table.Rows {
		rowNum := i + 2

		if table.Cell(row, cols[ColScenario]) != "" {
			scenarioSeen = true
		} else if !scenarioSeen {
			diags.RowWarnf("schema", rowNum, "scenario cell is empty and no scenario has been established yet")
		}

		priority := table.Cell(row, cols[ColPriority])
		if priority != "" && !validPriorities[strings.ToUpper(priority)] {
			badPriorities = append(badPriorities, fmt.Sprintf("row %d (%q)", rowNum, priority))
		}

		if table.Cell(row, cols[ColDescription]) == "" &&
			table.Cell(row, cols[ColSteps]) == "" &&
			table.Cell(row, cols[ColExpected]) == "" {
			diags.RowWarnf("schema", rowNum, "description, steps and expected result are all empty")
		}
	}

	if len(badPriorities) > 0 {
		return nil, diags, &SchemaError{
			Message: fmt.Sprintf("invalid priority (expected P1, P2 or P3): %s", strings.Join(badPriorities, ", ")),
		}
	}

	return cols, diags, nil
}
