// Package commands implements the datalineage subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/internal/catalog"
	"github.com/harborview-health/datalineage/internal/cli/config"
	"github.com/harborview-health/datalineage/internal/detect"
	"github.com/harborview-health/datalineage/internal/impact"
	"github.com/harborview-health/datalineage/internal/lineage"
	"github.com/harborview-health/datalineage/internal/source"
	"github.com/harborview-health/datalineage/pkg/core"
)

// Pipeline holds the loaded inputs and derived structures shared by most
// commands: the relationship catalog (declared plus detected), the lineage
// graph and its impact analyzer.
type Pipeline struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Columns  map[string][]string
	Declared []core.Relationship
	Detected []core.Relationship
	Catalog  *catalog.Catalog
	Graph    *lineage.Graph
	Analyzer *impact.Analyzer
}

// buildPipeline loads all inputs and runs detection and graph construction.
// Any invalid declared relationship aborts the whole run; no partial
// catalog survives.
func buildPipeline(cmd *cobra.Command) (*Pipeline, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	columns, err := source.DiscoverColumnSets(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover datasets: %w", err)
	}
	logger.Debug("discovered datasets", "count", len(columns), "dir", cfg.DataDir)

	declared, err := source.LoadRelationships(cfg.RelationshipsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationships: %w", err)
	}
	logger.Debug("loaded declared relationships", "count", len(declared))

	cat := catalog.New()
	for _, rel := range declared {
		if err := cat.Add(rel); err != nil {
			return nil, fmt.Errorf("invalid relationship %s -> %s: %w", rel.Source, rel.Target, err)
		}
	}

	var opts []detect.Option
	if len(cfg.UtilityColumns) > 0 {
		opts = append(opts, detect.WithUtilityColumns(cfg.UtilityColumns))
	}
	detected, err := detect.New(opts...).Run(cat, columns)
	if err != nil {
		return nil, fmt.Errorf("relationship detection failed: %w", err)
	}
	logger.Debug("detected relationships", "count", len(detected))

	graph := lineage.Build(cat)

	// Datasets with column definitions but no edges are still known to
	// the analyzer; querying them yields a valid empty result rather
	// than an unknown-dataset error.
	known := make([]string, 0, len(columns))
	for name := range columns {
		known = append(known, name)
	}
	analyzer := impact.NewAnalyzer(graph,
		impact.WithThresholds(cfg.Tiers.Thresholds()),
		impact.WithKnownDatasets(known),
	)

	return &Pipeline{
		Cfg:      cfg,
		Logger:   logger,
		Columns:  columns,
		Declared: declared,
		Detected: detected,
		Catalog:  cat,
		Graph:    graph,
		Analyzer: analyzer,
	}, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		DataDir:           getEnvOrDefault("DATALINEAGE_DATA_DIR", config.DefaultDataDir),
		RelationshipsFile: getEnvOrDefault("DATALINEAGE_RELATIONSHIPS_FILE", config.DefaultRelationshipsFile),
		OutputDir:         getEnvOrDefault("DATALINEAGE_OUTPUT_DIR", config.DefaultOutputDir),
		StatePath:         getEnvOrDefault("DATALINEAGE_STATE_PATH", config.DefaultStateFile),
		Title:             getEnvOrDefault("DATALINEAGE_TITLE", config.DefaultTitle),
		Verbose:           os.Getenv("DATALINEAGE_VERBOSE") == "true",
		OutputFormat:      getEnvOrDefault("DATALINEAGE_OUTPUT", config.DefaultOutput),
		Tiers:             config.TierConfig{HighMax: 1, MediumMax: 3},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderRelationshipTable renders relationships as a terminal table.
func renderRelationshipTable(w io.Writer, rels []core.Relationship) {
	if len(rels) == 0 {
		_, _ = fmt.Fprintln(w, "(no relationships)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Target", "Type", "Joining Fields", "Method"})
	for _, rel := range rels {
		t.AppendRow(table.Row{
			rel.Source,
			rel.Target,
			string(rel.Type),
			strings.Join(rel.JoiningFields, ", "),
			string(rel.DetectionMethod),
		})
	}
	t.Render()
}
