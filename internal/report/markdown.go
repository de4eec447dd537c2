package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a standalone governance document:
// dataset inventory, relationship table, lineage diagram, and per-dataset
// impact summaries.
func (r *Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	fmt.Fprintf(&sb, "Version: %s | Created: %s\n\n", r.Version, r.CreatedDate.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Datasets\n\n")
	for _, dataset := range r.Datasets {
		fmt.Fprintf(&sb, "- %s\n", dataset)
	}

	sb.WriteString("\n## Dataset Relationships\n\n")
	sb.WriteString("| Source Dataset | Relationship | Target Dataset | Joining Fields | Detection |\n")
	sb.WriteString("|---------------|-------------|---------------|---------------|-----------|\n")
	for _, rel := range r.Relationships {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			rel.Source, rel.Type, rel.Target, strings.Join(rel.JoiningFields, ", "), rel.DetectionMethod)
	}

	sb.WriteString("\n## Data Lineage Diagram\n\n")
	fmt.Fprintf(&sb, "```mermaid\n%s```\n\n", r.MermaidDiagram)

	sb.WriteString("## Impact Summary\n\n")
	for _, dataset := range r.Datasets {
		doc, ok := r.Impacts[dataset]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n", dataset)
		fmt.Fprintf(&sb, "- Downstream dependencies: %d\n", doc.DownstreamDependencies)
		fmt.Fprintf(&sb, "- Upstream dependencies: %d\n", doc.UpstreamDependencies)
		fmt.Fprintf(&sb, "- High impact dependencies: %d\n", doc.Summary.HighImpact)
		fmt.Fprintf(&sb, "- Medium impact dependencies: %d\n", doc.Summary.MediumImpact)
		fmt.Fprintf(&sb, "- Low impact dependencies: %d\n", doc.Summary.LowImpact)
		if doc.CriticalPath != nil {
			fmt.Fprintf(&sb, "- Critical path: %s (distance %d, %d dependents)\n",
				doc.CriticalPath.Dataset, doc.CriticalPath.Distance, doc.CriticalPath.DependencyCount)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
