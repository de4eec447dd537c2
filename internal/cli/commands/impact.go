package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/internal/impact"
	"github.com/harborview-health/datalineage/internal/report"
	"github.com/harborview-health/datalineage/pkg/core"
)

// NewImpactCommand creates the impact command.
func NewImpactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "impact <dataset>",
		Short: "Analyze the impact of changing a dataset",
		Long: `Traverse the lineage graph from the given dataset in both directions
and report every reachable dataset with its distance, the relationship
path to it, and an impact tier derived from the distance.

A dataset that exists but has no relationships yields an empty result;
a dataset unknown to the catalog is an error.`,
		Example: `  # Analyze a dataset
  datalineage impact patient_demographics

  # Full analysis document as JSON
  datalineage impact patient_demographics --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildPipeline(cmd)
			if err != nil {
				return err
			}
			return runImpact(cmd.OutOrStdout(), p, args[0])
		},
	}
}

func runImpact(out io.Writer, p *Pipeline, dataset string) error {
	analysis, err := p.Analyzer.Analyze(dataset)
	if err != nil {
		return err
	}

	// Sibling analyses supply the dependency counts behind the critical
	// path; only datasets with edges have them.
	all := make(map[string]*impact.Analysis, p.Graph.NodeCount())
	all[dataset] = analysis
	for _, name := range p.Graph.Nodes() {
		if name == dataset {
			continue
		}
		sibling, err := p.Analyzer.Analyze(name)
		if err != nil {
			return err
		}
		all[name] = sibling
	}
	doc := report.NewDatasetImpact(analysis, all)

	if p.Cfg.OutputFormat == "json" {
		return printJSON(out, doc)
	}

	fmt.Fprintf(out, "Impact analysis for: %s\n\n", dataset)

	fmt.Fprintf(out, "Downstream datasets (%d):\n", doc.DownstreamDependencies)
	renderEntryTable(out, dataset, doc.Downstream)
	fmt.Fprintf(out, "\nUpstream datasets (%d):\n", doc.UpstreamDependencies)
	renderEntryTable(out, dataset, doc.Upstream)

	fmt.Fprintf(out, "\nSummary: %d/%d/%d high/medium/low impact, %d/%d/%d high/medium/low dependency\n",
		doc.Summary.HighImpact, doc.Summary.MediumImpact, doc.Summary.LowImpact,
		doc.Summary.HighDependency, doc.Summary.MediumDependency, doc.Summary.LowDependency)

	if cp := doc.CriticalPath; cp != nil {
		fmt.Fprintf(out, "Critical path: %s (distance %d, %s impact, %d dependencies)\n",
			cp.Dataset, cp.Distance, cp.ImpactLevel, cp.DependencyCount)
	}

	return nil
}

// renderEntryTable renders traversal entries as a terminal table.
func renderEntryTable(w io.Writer, origin string, entries []report.EntryDocument) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Distance", "Tier", "Path"})
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.Dataset,
			entry.Distance,
			string(entry.Tier()),
			formatPath(origin, entry.Path),
		})
	}
	t.Render()
}

// formatPath renders an edge path as "a -> b -> c", walking from the
// origin to the far endpoint of each edge regardless of edge direction.
func formatPath(origin string, path []core.Relationship) string {
	parts := []string{origin}
	prev := origin
	for _, edge := range path {
		next := edge.Target
		if next == prev {
			next = edge.Source
		}
		parts = append(parts, next)
		prev = next
	}
	return strings.Join(parts, " -> ")
}
