package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/testforge/internal/config"
	"github.com/harrison/testforge/internal/enrich"
	"github.com/harrison/testforge/internal/history"
	"github.com/harrison/testforge/internal/logger"
	"github.com/harrison/testforge/internal/pipeline"
	"github.com/harrison/testforge/internal/producer"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <definitions-file>",
		Short: "Generate a test project from a definitions file",
		Long: `Generate a test project from tabular test-case definitions.

The definitions file (CSV or Markdown table) is validated and grouped into
scenarios, the generative producer is invoked once, and the produced files
are post-processed for conformance before being written to the output
directory.

Configuration is loaded from .testforge/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  testforge generate testcases.csv
  testforge generate testcases.md --output ./e2e
  testforge generate testcases.csv --producer-binary claude --log-level debug
  testforge generate testcases.csv --enrich`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .testforge/config.yaml)")
	cmd.Flags().String("output", "", "Destination project directory")
	cmd.Flags().String("producer-binary", "", "Generative producer CLI binary")
	cmd.Flags().String("log-level", "", "Logging verbosity (trace, debug, info, warn, error)")
	cmd.Flags().Bool("enrich", false, "Enrich expected results via the analysis model")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runGenerate implements the generate command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	if binary, _ := cmd.Flags().GetString("producer-binary"); binary != "" {
		cfg.Producer.Binary = binary
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if enrichFlag, _ := cmd.Flags().GetBool("enrich"); enrichFlag {
		cfg.Enrichment.Enabled = true
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)

	inv := producer.NewInvoker()
	inv.BinaryPath = cfg.Producer.Binary
	inv.Timeout = cfg.Producer.Timeout

	p := pipeline.New(inv, log, cfg.OutputDir)

	if cfg.Enrichment.Enabled {
		apiKey := os.Getenv(cfg.Enrichment.APIKeyEnv)
		analyzer, err := enrich.NewGenAI(cmd.Context(), apiKey, cfg.Enrichment.Model)
		if err != nil {
			// Enrichment is fail-soft: a missing key or client failure
			// downgrades to no analysis, never a hard stop.
			log.LogWarn(fmt.Sprintf("enrichment disabled: %v", err))
		} else {
			p.Analyzer = analyzer
		}
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			log.LogWarn(fmt.Sprintf("run history disabled: %v", err))
		} else {
			defer store.Close()
			p.History = store
		}
	}

	result, err := p.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	log.LogJobSummary(result.Groups.Len(), result.Groups.TotalTests(),
		len(result.Files), result.Diagnostics.Len(), result.Duration)
	return nil
}

// loadConfig loads configuration from the --config flag or the default
// location, falling back to defaults when no file exists.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	return config.LoadConfigFromDir(".")
}
