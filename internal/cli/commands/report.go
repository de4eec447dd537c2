package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/internal/cli/config"
	"github.com/harborview-health/datalineage/internal/report"
	"github.com/harborview-health/datalineage/internal/state"
	"github.com/harborview-health/datalineage/internal/watch"
)

// Generated document file names.
const (
	reportJSONFile     = "lineage_report.json"
	reportMarkdownFile = "lineage_report.md"
	reportMermaidFile  = "lineage_diagram.mmd"
)

// ReportOptions holds options for the report command.
type ReportOptions struct {
	Watch  bool
	NoSave bool
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a full governance report",
		Long: `Run the complete pipeline: detect relationships, analyze the impact of
every dataset, and write the lineage documentation (JSON report, markdown
rendition and mermaid diagram) to the output directory. Each run is
recorded in the run history database.`,
		Example: `  # One governance run
  datalineage report

  # Re-run automatically when inputs change
  datalineage report --watch

  # Skip recording the run
  datalineage report --no-save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Watch {
				return runReportWatch(cmd, opts)
			}
			return runReport(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when CSV/YAML inputs change")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not record the run in the state database")

	return cmd
}

func runReport(cmd *cobra.Command, opts *ReportOptions) error {
	started := time.Now().UTC()

	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	builder := report.NewBuilder(p.Graph, p.Analyzer, p.Cfg.Title)
	rep, err := builder.Build(p.Catalog.All())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if err := writeDocuments(p.Cfg.OutputDir, rep); err != nil {
		return err
	}

	if !opts.NoSave {
		if err := recordRun(p, started); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch p.Cfg.OutputFormat {
	case "json":
		return printJSON(out, rep)
	case "markdown":
		_, err := io.WriteString(out, rep.Markdown())
		return err
	}

	fmt.Fprintf(out, "Report %s generated\n", rep.DocumentationID)
	fmt.Fprintf(out, "  Datasets:      %d\n", len(rep.Datasets))
	fmt.Fprintf(out, "  Relationships: %d (%d detected)\n", len(rep.Relationships), len(p.Detected))
	fmt.Fprintf(out, "  Output:        %s\n", p.Cfg.OutputDir)
	fmt.Fprintf(out, "Completed in %s\n", time.Since(started).Round(time.Millisecond))
	return nil
}

// runReportWatch runs one report, then re-runs on input changes until
// interrupted.
func runReportWatch(cmd *cobra.Command, opts *ReportOptions) error {
	cfg := getConfig()

	if err := runReport(cmd, opts); err != nil {
		// A broken input should not kill watch mode; report and wait
		// for the next change.
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	paths := []string{cfg.DataDir}
	if _, err := os.Stat(cfg.RelationshipsFile); err == nil {
		paths = append(paths, cfg.RelationshipsFile)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", cfg.DataDir)

	w := watch.New(config.GetLogger(cmd.Context()), paths...)
	return w.Run(ctx, func() {
		if err := runReport(cmd, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

// writeDocuments writes the report artifacts to the output directory.
func writeDocuments(dir string, rep *report.Report) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	files := map[string][]byte{
		reportJSONFile:     append(data, '\n'),
		reportMarkdownFile: []byte(rep.Markdown()),
		reportMermaidFile:  []byte(rep.MermaidDiagram + "\n"),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// recordRun saves the completed run and its relationship set.
func recordRun(p *Pipeline, started time.Time) error {
	stateDir := filepath.Dir(p.Cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(p.Cfg.StatePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return err
	}

	run := &state.Run{
		ID:                uuid.NewString(),
		StartedAt:         started,
		CompletedAt:       time.Now().UTC(),
		Status:            state.RunStatusCompleted,
		DatasetCount:      len(p.Columns),
		RelationshipCount: p.Catalog.Len(),
		DetectedCount:     len(p.Detected),
	}
	return store.RecordRun(run, p.Catalog.All())
}
