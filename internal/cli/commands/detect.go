package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborview-health/datalineage/pkg/core"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect dataset relationships from column overlap",
		Long: `Load dataset column definitions and declared relationships, then detect
additional relationships between dataset pairs that share non-utility
columns. Detected relationships are reported alongside the declared ones.`,
		Example: `  # Detect relationships using the default data directory
  datalineage detect

  # Use a different data directory and print JSON
  datalineage detect --data-dir warehouse/extracts --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if p.Cfg.OutputFormat == "json" {
				return printJSON(out, struct {
					Declared []core.Relationship `json:"declared"`
					Detected []core.Relationship `json:"detected"`
				}{p.Declared, p.Detected})
			}

			fmt.Fprintf(out, "Datasets: %d\n", len(p.Columns))
			fmt.Fprintf(out, "Declared relationships: %d\n", len(p.Declared))
			fmt.Fprintf(out, "Detected relationships: %d\n\n", len(p.Detected))
			renderRelationshipTable(out, p.Catalog.All())
			return nil
		},
	}
}
