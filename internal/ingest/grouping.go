package ingest

import (
	"fmt"
	"strings"

	"github.com/harrison/testforge/internal/diag"
	"github.com/harrison/testforge/internal/models"
	"github.com/harrison/testforge/internal/naming"
)

// GroupScenarios consumes a schema-validated table and produces the ordered
// scenario groups. The table must already have passed ValidateSchema; the
// parser assumes every mandatory column exists.
//
// A blank scenario cell inherits the last non-empty scenario title
// (carry-forward), which is how merged cells in spreadsheet tools arrive
// here. Rows that cannot be grouped are dropped with a diagnostic, never
// aborting the batch; no condition in this function is fatal.
func GroupScenarios(table *Table, cols Columns) (*models.GroupSet, *diag.List) {
	set := models.NewGroupSet()
	diags := &diag.List{}

	lastTitle := ""
	for i, row := range table.Rows {
		rowNum := i + 2

		title := table.Cell(row, cols[ColScenario])
		if title == "" {
			if lastTitle == "" {
				diags.RowWarnf("grouping", rowNum, "no scenario title to carry forward; row dropped")
				continue
			}
			title = lastTitle
		} else {
			lastTitle = title
		}

		shortName := naming.ToShortFeatureName(title)
		if shortName == "" {
			diags.RowErrorf("grouping", rowNum, "scenario title %q produced an empty short feature name; row dropped", title)
			continue
		}

		group, ok := set.Get(shortName)
		if !ok {
			group = &models.ScenarioGroup{
				IdentifierName:   naming.ToCamelCase(title),
				ScenarioTitle:    title,
				ShortFeatureName: shortName,
			}
			set.Add(group)
		} else if group.ScenarioTitle != title {
			// Distinct titles reducing to the same short name merge into one
			// group. The merge is kept (short name doubles as group identity)
			// but reported so it does not pass silently.
			diags.RowWarnf("grouping", rowNum,
				"scenario %q collides with %q on short name %q; rows merged into the existing group",
				title, group.ScenarioTitle, shortName)
		}

		group.Tests = append(group.Tests, buildTestCase(table, cols, row, group))
	}

	return set, diags
}

// buildTestCase constructs a TestCase from a row's mandatory columns.
// The case number used in the placeholder title is its 1-based position
// within the group so far.
func buildTestCase(table *Table, cols Columns, row []string, group *models.ScenarioGroup) models.TestCase {
	description := table.Cell(row, cols[ColDescription])
	if description == "" {
		description = fmt.Sprintf("Test for %s - Case %d", group.ScenarioTitle, len(group.Tests)+1)
	}

	return models.TestCase{
		ID:          table.Cell(row, cols[ColCaseID]),
		Title:       description,
		Description: description,
		Steps:       splitSteps(table.Cell(row, cols[ColSteps])),
		Data:        table.Cell(row, cols[ColData]),
		Expected:    table.Cell(row, cols[ColExpected]),
		Priority:    strings.ToUpper(table.Cell(row, cols[ColPriority])),
	}
}

// splitSteps splits a Detail Steps cell on line breaks, trims each segment
// and removes empties.
func splitSteps(cell string) []string {
	var steps []string
	for _, line := range strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}
	return steps
}

// PageObjects returns the distinct PascalCase page-object identifiers
// derived from the scenario titles, in group order.
func PageObjects(set *models.GroupSet) []string {
	seen := make(map[string]bool)
	var identifiers []string
	for _, g := range set.Ordered() {
		name := naming.ToPascalCase(g.ScenarioTitle)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		identifiers = append(identifiers, name)
	}
	return identifiers
}
