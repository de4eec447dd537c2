// Package report aggregates per-dataset impact analyses into governance
// documents: a cross-dataset summary with critical paths, a mermaid
// lineage diagram, and a markdown rendition for compliance documentation.
// Rendering is a pure projection of the aggregated data; all graph logic
// lives in the lineage and impact packages.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborview-health/datalineage/internal/impact"
	"github.com/harborview-health/datalineage/internal/lineage"
	"github.com/harborview-health/datalineage/pkg/core"
)

// DocumentVersion identifies the governance document format.
const DocumentVersion = "1.0"

// EntryDocument is the serialized form of a traversal entry. The tier is
// labeled impact_level for downstream entries and dependency_level for
// upstream entries; only one of the two is ever set.
type EntryDocument struct {
	Dataset         string              `json:"dataset"`
	Path            []core.Relationship `json:"path"`
	Distance        int                 `json:"distance"`
	ImpactLevel     core.ImpactTier     `json:"impact_level,omitempty"`
	DependencyLevel core.ImpactTier     `json:"dependency_level,omitempty"`
}

// Tier returns whichever tier label is set on the entry.
func (e EntryDocument) Tier() core.ImpactTier {
	if e.ImpactLevel != "" {
		return e.ImpactLevel
	}
	return e.DependencyLevel
}

// CriticalPath identifies the single most structurally significant
// downstream dependency of a dataset: the entry with the smallest distance,
// breaking ties by the number of upstream entries of the candidate
// (its dependency count), then by insertion order.
type CriticalPath struct {
	Dataset         string          `json:"dataset"`
	Distance        int             `json:"distance"`
	ImpactLevel     core.ImpactTier `json:"impact_level"`
	DependencyCount int             `json:"dependency_count"`
}

// DatasetImpact is the per-dataset impact-analysis document.
type DatasetImpact struct {
	AnalysisID             string             `json:"analysis_id"`
	AnalysisDate           time.Time          `json:"analysis_date"`
	Dataset                string             `json:"dataset"`
	DownstreamDependencies int                `json:"downstream_dependencies"`
	UpstreamDependencies   int                `json:"upstream_dependencies"`
	Downstream             []EntryDocument    `json:"downstream_datasets"`
	Upstream               []EntryDocument    `json:"upstream_datasets"`
	Summary                core.ImpactSummary `json:"impact_summary"`
	CriticalPath           *CriticalPath      `json:"critical_path"`
}

// Report is the comprehensive lineage documentation for one governance run.
type Report struct {
	DocumentationID string                    `json:"documentation_id"`
	CreatedDate     time.Time                 `json:"created_date"`
	Title           string                    `json:"title"`
	Version         string                    `json:"version"`
	Datasets        []string                  `json:"datasets"`
	Relationships   []core.Relationship       `json:"relationships"`
	MermaidDiagram  string                    `json:"mermaid_diagram"`
	Impacts         map[string]*DatasetImpact `json:"impact_analyses"`
}

// Builder assembles reports from a lineage graph and its analyzer.
type Builder struct {
	graph    *lineage.Graph
	analyzer *impact.Analyzer
	title    string
}

// NewBuilder creates a report builder. The title appears in rendered
// documents.
func NewBuilder(g *lineage.Graph, a *impact.Analyzer, title string) *Builder {
	return &Builder{graph: g, analyzer: a, title: title}
}

// Build runs one impact analysis per dataset in the graph and aggregates
// the results. The relationships slice (declared plus detected, in catalog
// order) is embedded for downstream documentation consumers and drives the
// diagram's edge ordering.
func (b *Builder) Build(relationships []core.Relationship) (*Report, error) {
	datasets := b.graph.Nodes()

	analyses := make(map[string]*impact.Analysis, len(datasets))
	for _, name := range datasets {
		analysis, err := b.analyzer.Analyze(name)
		if err != nil {
			return nil, err
		}
		analyses[name] = analysis
	}

	impacts := make(map[string]*DatasetImpact, len(datasets))
	for _, name := range datasets {
		impacts[name] = NewDatasetImpact(analyses[name], analyses)
	}

	return &Report{
		DocumentationID: uuid.NewString(),
		CreatedDate:     time.Now().UTC(),
		Title:           b.title,
		Version:         DocumentVersion,
		Datasets:        datasets,
		Relationships:   relationships,
		MermaidDiagram:  MermaidDiagram(b.graph, relationships),
		Impacts:         impacts,
	}, nil
}

// NewDatasetImpact projects one analysis into its document form and
// attaches the critical path, which needs the upstream entry counts of the
// sibling analyses in all.
func NewDatasetImpact(analysis *impact.Analysis, all map[string]*impact.Analysis) *DatasetImpact {
	doc := &DatasetImpact{
		AnalysisID:             analysis.AnalysisID,
		AnalysisDate:           analysis.AnalysisDate,
		Dataset:                analysis.Dataset,
		DownstreamDependencies: analysis.DownstreamDependencies,
		UpstreamDependencies:   analysis.UpstreamDependencies,
		Downstream:             make([]EntryDocument, 0, len(analysis.Downstream)),
		Upstream:               make([]EntryDocument, 0, len(analysis.Upstream)),
		Summary:                analysis.Summary,
	}

	for _, entry := range analysis.Downstream {
		doc.Downstream = append(doc.Downstream, EntryDocument{
			Dataset:     entry.Dataset,
			Path:        entry.Path,
			Distance:    entry.Distance,
			ImpactLevel: entry.Tier,
		})
	}
	for _, entry := range analysis.Upstream {
		doc.Upstream = append(doc.Upstream, EntryDocument{
			Dataset:         entry.Dataset,
			Path:            entry.Path,
			Distance:        entry.Distance,
			DependencyLevel: entry.Tier,
		})
	}

	doc.CriticalPath = findCriticalPath(analysis.Downstream, all)
	return doc
}

// findCriticalPath picks the downstream entry with the smallest distance,
// preferring the candidate more datasets depend on. dependencyCount is the
// number of entries in the candidate's own upstream analysis; larger counts
// indicate a more structurally important node. Entries arrive ordered by
// distance then discovery order, so the first entry wins all remaining ties.
func findCriticalPath(downstream []core.ImpactEntry, all map[string]*impact.Analysis) *CriticalPath {
	if len(downstream) == 0 {
		return nil
	}

	dependencyCount := func(name string) int {
		if a, ok := all[name]; ok {
			return len(a.Upstream)
		}
		return 0
	}

	best := downstream[0]
	bestCount := dependencyCount(best.Dataset)
	for _, entry := range downstream[1:] {
		if entry.Distance > best.Distance {
			break // entries are distance-ordered
		}
		if count := dependencyCount(entry.Dataset); count > bestCount {
			best = entry
			bestCount = count
		}
	}

	return &CriticalPath{
		Dataset:         best.Dataset,
		Distance:        best.Distance,
		ImpactLevel:     best.Tier,
		DependencyCount: bestCount,
	}
}
