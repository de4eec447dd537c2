package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/internal/report"
	"github.com/harborview-health/datalineage/pkg/core"
)

// GraphOptions holds options for the graph command.
type GraphOptions struct {
	Mermaid bool
}

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	opts := &GraphOptions{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the dataset lineage graph",
		Long: `Display the lineage graph built from declared and detected
relationships: every dataset with its downstream and upstream neighbors.`,
		Example: `  # Show the graph as text
  datalineage graph

  # Emit a mermaid diagram
  datalineage graph --mermaid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if opts.Mermaid {
				fmt.Fprintln(out, report.MermaidDiagram(p.Graph, p.Catalog.All()))
				return nil
			}

			if p.Cfg.OutputFormat == "json" {
				return printJSON(out, struct {
					Datasets      []string            `json:"datasets"`
					Relationships []core.Relationship `json:"relationships"`
				}{p.Graph.Nodes(), p.Catalog.All()})
			}

			fmt.Fprintf(out, "Lineage graph: %d datasets, %d relationships\n\n",
				p.Graph.NodeCount(), p.Graph.EdgeCount())

			for _, name := range p.Graph.Nodes() {
				fmt.Fprintf(out, "  %s\n", name)
				if down := neighborNames(p.Graph.Neighbors(name, core.DirectionDownstream), core.DirectionDownstream); len(down) > 0 {
					fmt.Fprintf(out, "    feeds: %s\n", strings.Join(down, ", "))
				}
				if up := neighborNames(p.Graph.Neighbors(name, core.DirectionUpstream), core.DirectionUpstream); len(up) > 0 {
					fmt.Fprintf(out, "    fed by: %s\n", strings.Join(up, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Mermaid, "mermaid", false, "Emit a mermaid diagram instead of text")

	return cmd
}

// neighborNames extracts the far endpoint of each edge for the direction.
func neighborNames(edges []core.Relationship, dir core.Direction) []string {
	names := make([]string, 0, len(edges))
	for _, edge := range edges {
		if dir == core.DirectionDownstream {
			names = append(names, edge.Target)
		} else {
			names = append(names, edge.Source)
		}
	}
	return names
}
