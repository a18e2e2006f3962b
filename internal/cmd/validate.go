package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/testforge/internal/ingest"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definitions-file>",
		Short: "Validate a definitions file without generating anything",
		Long: `Parse and validate a test-case definitions file, checking for:
  - All mandatory columns present in the header
  - Priority cells limited to P1, P2, P3 or empty
  - Rows that would be dropped or kept with placeholder titles

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateDefinitions(args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateDefinitions runs schema validation and a dry grouping pass,
// reporting diagnostics and the scenario layout without invoking the
// producer or writing anything.
func validateDefinitions(path string, output io.Writer) error {
	table, err := ingest.ReadFile(path)
	if err != nil {
		return err
	}

	cols, schemaDiags, err := ingest.ValidateSchema(table)
	for _, d := range schemaDiags.All() {
		fmt.Fprintf(output, "  %s\n", d)
	}
	if err != nil {
		return err
	}

	groups, groupDiags := ingest.GroupScenarios(table, cols)
	for _, d := range groupDiags.All() {
		fmt.Fprintf(output, "  %s\n", d)
	}

	fmt.Fprintf(output, "Valid: %d test case(s) in %d scenario(s)\n",
		groups.TotalTests(), groups.Len())
	for _, g := range groups.Ordered() {
		fmt.Fprintf(output, "  %s -> tests/%s.spec.ts (%d case(s))\n",
			g.ScenarioTitle, g.ShortFeatureName, len(g.Tests))
	}
	return nil
}
