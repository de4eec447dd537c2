package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/internal/state"
)

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Limit int
	RunID string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded governance runs",
		Long: `List governance runs recorded in the run history database, newest
first. With --show, print the relationship set recorded for one run.`,
		Example: `  # List the most recent runs
  datalineage runs

  # Show the relationships recorded for a run
  datalineage runs --show 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			store := state.NewSQLiteStore()
			if err := store.Open(cfg.StatePath); err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(); err != nil {
				return err
			}

			if opts.RunID != "" {
				return showRun(cmd, store, opts.RunID, cfg.OutputFormat)
			}
			return listRuns(cmd, store, opts.Limit, cfg.OutputFormat)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&opts.RunID, "show", "", "Show the relationships recorded for a run id")

	return cmd
}

func listRuns(cmd *cobra.Command, store state.Store, limit int, format string) error {
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return printJSON(out, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run ID", "Started", "Status", "Datasets", "Relationships", "Detected"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.DatasetCount,
			run.RelationshipCount,
			run.DetectedCount,
		})
	}
	t.Render()
	return nil
}

func showRun(cmd *cobra.Command, store state.Store, runID, format string) error {
	rels, err := store.GetRunRelationships(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return printJSON(out, rels)
	}

	fmt.Fprintf(out, "Relationships recorded for run %s:\n\n", runID)
	renderRelationshipTable(out, rels)
	return nil
}
