package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for testforge
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testforge",
		Short: "Generate conformant test projects from tabular test-case definitions",
		Long: `Testforge ingests tabular test-case definitions (CSV or Markdown tables),
groups the rows into scenarios, asks a generative producer for a Playwright
test project and then repairs the produced files so titles, tags, assertions
and fixture wiring exactly match the source definitions.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
