// Package diag collects non-fatal diagnostics produced while ingesting rows
// and post-processing generated files. Diagnostics never interrupt
// processing; fatal conditions are ordinary Go errors instead.
package diag

import "fmt"

// Level indicates the severity of a diagnostic.
type Level int

const (
	// LevelWarning marks a recoverable irregularity (row kept or dropped,
	// file skipped) that the caller should surface to the user.
	LevelWarning Level = iota
	// LevelError marks a dropped row or skipped correction. Still non-fatal.
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	default:
		return "warning"
	}
}

// Diagnostic is a single recorded irregularity.
type Diagnostic struct {
	Level   Level
	Source  string // Component that recorded it: "schema", "grouping", "conform"
	Row     int    // 1-based spreadsheet row, 0 when not row-scoped
	File    string // Generated file path, empty when not file-scoped
	Message string
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	switch {
	case d.Row > 0:
		return fmt.Sprintf("[%s] %s: row %d: %s", d.Level, d.Source, d.Row, d.Message)
	case d.File != "":
		return fmt.Sprintf("[%s] %s: %s: %s", d.Level, d.Source, d.File, d.Message)
	default:
		return fmt.Sprintf("[%s] %s: %s", d.Level, d.Source, d.Message)
	}
}

// List is an ordered collection of diagnostics. The zero value is ready to use.
type List struct {
	entries []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	l.entries = append(l.entries, d)
}

// Warnf records a warning-level diagnostic.
func (l *List) Warnf(source, format string, args ...interface{}) {
	l.Add(Diagnostic{Level: LevelWarning, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an error-level diagnostic.
func (l *List) Errorf(source, format string, args ...interface{}) {
	l.Add(Diagnostic{Level: LevelError, Source: source, Message: fmt.Sprintf(format, args...)})
}

// RowWarnf records a warning-level diagnostic scoped to a 1-based row.
func (l *List) RowWarnf(source string, row int, format string, args ...interface{}) {
	l.Add(Diagnostic{Level: LevelWarning, Source: source, Row: row, Message: fmt.Sprintf(format, args...)})
}

// RowErrorf records an error-level diagnostic scoped to a 1-based row.
func (l *List) RowErrorf(source string, row int, format string, args ...interface{}) {
	l.Add(Diagnostic{Level: LevelError, Source: source, Row: row, Message: fmt.Sprintf(format, args...)})
}

// FileWarnf records a warning-level diagnostic scoped to a generated file.
func (l *List) FileWarnf(source, file, format string, args ...interface{}) {
	l.Add(Diagnostic{Level: LevelWarning, Source: source, File: file, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all diagnostics from other, preserving order.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

// All returns the recorded diagnostics in order.
func (l *List) All() []Diagnostic {
	return l.entries
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	return len(l.entries)
}
