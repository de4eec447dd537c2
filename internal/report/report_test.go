package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-health/datalineage/internal/catalog"
	"github.com/harborview-health/datalineage/internal/impact"
	"github.com/harborview-health/datalineage/internal/lineage"
	"github.com/harborview-health/datalineage/pkg/core"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	rels := []core.Relationship{
		{
			Source: "demographics", Target: "records",
			Type:          core.RelationshipPrimary,
			JoiningFields: []string{"patient_id", "nhs_number"}, DetectionMethod: core.DetectionStandard,
		},
		{
			Source: "records", Target: "labs",
			Type:          core.RelationshipPrimary,
			JoiningFields: []string{"record_id"}, DetectionMethod: core.DetectionStandard,
		},
		{
			Source: "staff", Target: "audit_logs",
			Type:          core.RelationshipReferencedBy,
			JoiningFields: []string{"staff_id"}, DetectionMethod: core.DetectionStandard,
		},
	}
	for _, rel := range rels {
		require.NoError(t, cat.Add(rel))
	}
	return cat
}

func buildReport(t *testing.T) *Report {
	t.Helper()
	cat := fixtureCatalog(t)
	g := lineage.Build(cat)
	b := NewBuilder(g, impact.NewAnalyzer(g), "Harborview Data Governance - Data Lineage Documentation")
	r, err := b.Build(cat.All())
	require.NoError(t, err)
	return r
}

func TestBuilder_OneAnalysisPerDataset(t *testing.T) {
	r := buildReport(t)

	assert.Len(t, r.Datasets, 5)
	assert.Len(t, r.Impacts, 5)
	for _, dataset := range r.Datasets {
		require.Contains(t, r.Impacts, dataset)
		assert.Equal(t, dataset, r.Impacts[dataset].Dataset)
	}
	assert.NotEmpty(t, r.DocumentationID)
	assert.Equal(t, DocumentVersion, r.Version)
}

func TestBuilder_EntryDocumentsCarryDirectionLabels(t *testing.T) {
	r := buildReport(t)

	demo := r.Impacts["demographics"]
	require.Len(t, demo.Downstream, 2)
	for _, entry := range demo.Downstream {
		assert.NotEmpty(t, entry.ImpactLevel)
		assert.Empty(t, entry.DependencyLevel)
	}

	labs := r.Impacts["labs"]
	require.Len(t, labs.Upstream, 2)
	for _, entry := range labs.Upstream {
		assert.NotEmpty(t, entry.DependencyLevel)
		assert.Empty(t, entry.ImpactLevel)
	}
}

func TestBuilder_CriticalPath(t *testing.T) {
	r := buildReport(t)

	// demographics -> records -> labs: records is at distance 1 and has
	// one upstream entry (demographics), so it is the critical path.
	cp := r.Impacts["demographics"].CriticalPath
	require.NotNil(t, cp)
	assert.Equal(t, "records", cp.Dataset)
	assert.Equal(t, 1, cp.Distance)
	assert.Equal(t, core.TierHigh, cp.ImpactLevel)
	assert.Equal(t, 1, cp.DependencyCount)

	// labs is a sink: no downstream entries, no critical path.
	assert.Nil(t, r.Impacts["labs"].CriticalPath)
}

func TestBuilder_CriticalPathPrefersHigherDependencyCount(t *testing.T) {
	// origin fans out to hub and leaf at distance 1. hub has two upstream
	// datasets, leaf only one, so hub wins despite equal distance.
	cat := catalog.New()
	rels := []core.Relationship{
		{Source: "origin", Target: "leaf", Type: core.RelationshipPrimary,
			JoiningFields: []string{"id"}, DetectionMethod: core.DetectionStandard},
		{Source: "origin", Target: "hub", Type: core.RelationshipPrimary,
			JoiningFields: []string{"id"}, DetectionMethod: core.DetectionStandard},
		{Source: "side", Target: "hub", Type: core.RelationshipPrimary,
			JoiningFields: []string{"id"}, DetectionMethod: core.DetectionStandard},
	}
	for _, rel := range rels {
		require.NoError(t, cat.Add(rel))
	}

	g := lineage.Build(cat)
	b := NewBuilder(g, impact.NewAnalyzer(g), "test")
	r, err := b.Build(cat.All())
	require.NoError(t, err)

	cp := r.Impacts["origin"].CriticalPath
	require.NotNil(t, cp)
	assert.Equal(t, "hub", cp.Dataset)
	assert.Equal(t, 2, cp.DependencyCount)
}

func TestMermaidDiagram(t *testing.T) {
	cat := fixtureCatalog(t)
	g := lineage.Build(cat)

	diagram := MermaidDiagram(g, cat.All())

	assert.True(t, strings.HasPrefix(diagram, "graph TD\n"))

	// Every dataset gets a node line.
	for _, name := range g.Nodes() {
		assert.Contains(t, diagram, "["+name+"]")
	}

	// Primary edges are thick, referenced_by edges dotted, both labeled
	// with their joining fields.
	assert.Contains(t, diagram, "==>|patient_id, nhs_number|")
	assert.Contains(t, diagram, "-.->|staff_id|")

	// Deterministic output.
	assert.Equal(t, diagram, MermaidDiagram(g, cat.All()))
}

func TestReport_Markdown(t *testing.T) {
	r := buildReport(t)
	md := r.Markdown()

	assert.Contains(t, md, "# Harborview Data Governance - Data Lineage Documentation")
	assert.Contains(t, md, "## Datasets")
	assert.Contains(t, md, "## Dataset Relationships")
	assert.Contains(t, md, "| demographics | primary | records | patient_id, nhs_number | standard |")
	assert.Contains(t, md, "```mermaid")
	assert.Contains(t, md, "### demographics")
	assert.Contains(t, md, "- Critical path: records (distance 1, 1 dependents)")
}
