package lineage

import (
	"testing"

	"github.com/harborview-health/datalineage/internal/catalog"
	"github.com/harborview-health/datalineage/pkg/core"
)

func buildCatalog(t *testing.T, rels ...core.Relationship) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	for _, rel := range rels {
		if err := cat.Add(rel); err != nil {
			t.Fatalf("failed to add edge: %v", err)
		}
	}
	return cat
}

func rel(source, target string) core.Relationship {
	return core.Relationship{
		Source:          source,
		Target:          target,
		Type:            core.RelationshipPrimary,
		JoiningFields:   []string{"id"},
		DetectionMethod: core.DetectionStandard,
	}
}

func TestGraph_Build(t *testing.T) {
	g := Build(buildCatalog(t,
		rel("demographics", "records"),
		rel("records", "labs"),
	))

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}
}

func TestGraph_Neighbors(t *testing.T) {
	g := Build(buildCatalog(t,
		rel("demographics", "records"),
		rel("demographics", "labs"),
		rel("records", "labs"),
	))

	out := g.Neighbors("demographics", core.DirectionDownstream)
	if len(out) != 2 {
		t.Fatalf("expected 2 outgoing edges, got %d", len(out))
	}
	// Catalog insertion order must be preserved.
	if out[0].Target != "records" || out[1].Target != "labs" {
		t.Errorf("expected [records labs], got [%s %s]", out[0].Target, out[1].Target)
	}

	in := g.Neighbors("labs", core.DirectionUpstream)
	if len(in) != 2 {
		t.Fatalf("expected 2 incoming edges, got %d", len(in))
	}
	if in[0].Source != "demographics" || in[1].Source != "records" {
		t.Errorf("expected [demographics records], got [%s %s]", in[0].Source, in[1].Source)
	}
}

func TestGraph_NodesExistOnlyViaEdges(t *testing.T) {
	g := Build(buildCatalog(t, rel("a", "b")))

	if !g.Has("a") || !g.Has("b") {
		t.Error("expected both edge endpoints in the graph")
	}
	if g.Has("c") {
		t.Error("dataset without edges must not be in the graph")
	}
}

func TestGraph_NodesSorted(t *testing.T) {
	g := Build(buildCatalog(t,
		rel("zeta", "alpha"),
		rel("mid", "zeta"),
	))

	nodes := g.Nodes()
	want := []string{"alpha", "mid", "zeta"}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, name := range want {
		if nodes[i] != name {
			t.Errorf("expected node %d to be %s, got %s", i, name, nodes[i])
		}
	}
}

func TestGraph_CyclesAreLegal(t *testing.T) {
	// A->B->C->A is valid lineage structure, not an error.
	g := Build(buildCatalog(t,
		rel("a", "b"),
		rel("b", "c"),
		rel("c", "a"),
	))

	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Errorf("expected 3 nodes and 3 edges, got %d/%d", g.NodeCount(), g.EdgeCount())
	}
	for _, n := range []string{"a", "b", "c"} {
		if len(g.Neighbors(n, core.DirectionDownstream)) != 1 {
			t.Errorf("expected 1 outgoing edge for %s", n)
		}
		if len(g.Neighbors(n, core.DirectionUpstream)) != 1 {
			t.Errorf("expected 1 incoming edge for %s", n)
		}
	}
}
