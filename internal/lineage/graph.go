// Package lineage builds the in-memory directed graph of dataset
// relationships for a governance run. Nodes are datasets, edges are the
// attributed relationships held by the catalog. Unlike a build DAG, the
// lineage graph may legitimately contain cycles; traversal code treats
// them as normal structure.
package lineage

import (
	"sort"

	"github.com/harborview-health/datalineage/internal/catalog"
	"github.com/harborview-health/datalineage/pkg/core"
)

// Graph is an adjacency structure over the catalog's edges. A dataset
// exists in the graph iff it appears in at least one edge. Edge lists
// preserve catalog insertion order, which downstream traversal uses as its
// deterministic tie-break.
type Graph struct {
	outgoing  map[string][]core.Relationship
	incoming  map[string][]core.Relationship
	edgeCount int
}

// Build constructs a graph from every edge in the catalog.
func Build(cat *catalog.Catalog) *Graph {
	g := &Graph{
		outgoing: make(map[string][]core.Relationship),
		incoming: make(map[string][]core.Relationship),
	}
	for _, rel := range cat.All() {
		g.outgoing[rel.Source] = append(g.outgoing[rel.Source], rel)
		g.incoming[rel.Target] = append(g.incoming[rel.Target], rel)
		if _, ok := g.incoming[rel.Source]; !ok {
			g.incoming[rel.Source] = nil
		}
		if _, ok := g.outgoing[rel.Target]; !ok {
			g.outgoing[rel.Target] = nil
		}
		g.edgeCount++
	}
	return g
}

// Neighbors returns the edges leaving (downstream) or entering (upstream)
// a dataset, in catalog insertion order.
func (g *Graph) Neighbors(dataset string, dir core.Direction) []core.Relationship {
	if dir == core.DirectionUpstream {
		return g.incoming[dataset]
	}
	return g.outgoing[dataset]
}

// Has reports whether the dataset appears in at least one edge.
func (g *Graph) Has(dataset string) bool {
	_, ok := g.outgoing[dataset]
	return ok
}

// Nodes returns all datasets referenced by any edge, sorted for
// deterministic output.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.outgoing))
	for name := range g.outgoing {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// NodeCount returns the number of datasets in the graph.
func (g *Graph) NodeCount() int {
	return len(g.outgoing)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}
