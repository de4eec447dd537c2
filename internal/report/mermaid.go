package report

import (
	"fmt"
	"strings"

	"github.com/harborview-health/datalineage/internal/lineage"
	"github.com/harborview-health/datalineage/pkg/core"
)

// MermaidDiagram renders the lineage graph as mermaid graph markup.
// Primary relationships use thick arrows (==>), referenced_by uses dotted
// arrows (-.->), and each edge is labeled with its joining fields. Nodes
// are emitted in sorted order and edges in catalog order, so the markup is
// reproducible across runs.
func MermaidDiagram(g *lineage.Graph, relationships []core.Relationship) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	nodeIDs := make(map[string]string)
	for i, name := range g.Nodes() {
		id := fmt.Sprintf("N%d", i)
		nodeIDs[name] = id
		fmt.Fprintf(&sb, "    %s[%s]\n", id, name)
	}

	for _, rel := range relationships {
		arrow := "-->"
		switch rel.Type {
		case core.RelationshipPrimary:
			arrow = "==>"
		case core.RelationshipReferencedBy:
			arrow = "-.->"
		}

		source, ok := nodeIDs[rel.Source]
		if !ok {
			continue
		}
		target, ok := nodeIDs[rel.Target]
		if !ok {
			continue
		}

		if len(rel.JoiningFields) > 0 {
			fmt.Fprintf(&sb, "    %s %s|%s| %s\n", source, arrow, strings.Join(rel.JoiningFields, ", "), target)
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", source, arrow, target)
		}
	}

	return sb.String()
}
