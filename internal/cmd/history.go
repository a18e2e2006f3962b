package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/testforge/internal/history"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generation runs",
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withStore(cmd, func(store *history.Store) error {
				return listHistory(store, limit, cmd.OutOrStdout())
			})
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	cmd.Flags().String("config", "", "Path to config file (default: .testforge/config.yaml)")
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(store *history.Store) error {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			})
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .testforge/config.yaml)")
	return cmd
}

// withStore opens the history store from configuration, runs fn and closes
// the store.
func withStore(cmd *cobra.Command, fn func(*history.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

// listHistory renders recent jobs, newest first.
func listHistory(store *history.Store, limit int, output io.Writer) error {
	jobs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(output, "No generation runs recorded")
		return nil
	}

	for _, job := range jobs {
		status := "ok"
		if !job.Success {
			status = "failed"
		}
		fmt.Fprintf(output, "%s  %s  %s  %d scenario(s), %d case(s), %d file(s), %d warning(s)  %s\n",
			job.CreatedAt.Format("2006-01-02 15:04:05"), job.ID[:8], status,
			job.ScenarioCount, job.TestCount, job.FileCount, job.WarningCount,
			job.Duration)
		if job.ErrorMessage != "" {
			fmt.Fprintf(output, "    %s\n", job.ErrorMessage)
		}
	}
	return nil
}
