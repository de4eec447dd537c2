// Package impact answers "what breaks downstream/upstream, and how
// severely, if this dataset changes?". It runs a breadth-first traversal
// over the lineage graph in each direction, computing shortest edge-count
// distances, the edge path realizing each distance, and a distance-derived
// impact tier.
package impact

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborview-health/datalineage/internal/lineage"
	"github.com/harborview-health/datalineage/pkg/core"
)

// Analysis is the impact-analysis document for one origin dataset.
type Analysis struct {
	AnalysisID             string             `json:"analysis_id"`
	AnalysisDate           time.Time          `json:"analysis_date"`
	Dataset                string             `json:"dataset"`
	DownstreamDependencies int                `json:"downstream_dependencies"`
	UpstreamDependencies   int                `json:"upstream_dependencies"`
	Downstream             []core.ImpactEntry `json:"downstream_datasets"`
	Upstream               []core.ImpactEntry `json:"upstream_datasets"`
	Summary                core.ImpactSummary `json:"impact_summary"`
}

// Analyzer runs impact queries against a lineage graph. Each query uses
// its own visited set and frontier; the analyzer never mutates the graph.
type Analyzer struct {
	graph      *lineage.Graph
	known      map[string]struct{}
	thresholds core.TierThresholds
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThresholds overrides the tier policy table. The default matches the
// standard mapping (1 High, 2-3 Medium, >=4 Low).
func WithThresholds(t core.TierThresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// WithKnownDatasets extends the known-dataset universe beyond the graph's
// nodes. A query for a known dataset with no edges is a valid empty result;
// a query for anything else is an UnknownDatasetError.
func WithKnownDatasets(names []string) Option {
	return func(a *Analyzer) {
		for _, name := range names {
			a.known[name] = struct{}{}
		}
	}
}

// NewAnalyzer creates an analyzer over the given graph.
func NewAnalyzer(g *lineage.Graph, opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:      g,
		known:      make(map[string]struct{}),
		thresholds: core.DefaultTierThresholds,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the full impact analysis for the origin dataset:
// downstream and upstream traversal results plus a per-tier summary.
// Origins outside the known dataset universe fail with a
// *core.UnknownDatasetError.
func (a *Analyzer) Analyze(origin string) (*Analysis, error) {
	if !a.graph.Has(origin) {
		if _, ok := a.known[origin]; !ok {
			return nil, &core.UnknownDatasetError{Dataset: origin}
		}
	}

	analysis := &Analysis{
		AnalysisID:   uuid.NewString(),
		AnalysisDate: time.Now().UTC(),
		Dataset:      origin,
		Downstream:   a.Traverse(origin, core.DirectionDownstream),
		Upstream:     a.Traverse(origin, core.DirectionUpstream),
	}
	analysis.DownstreamDependencies = len(analysis.Downstream)
	analysis.UpstreamDependencies = len(analysis.Upstream)

	for _, entry := range analysis.Downstream {
		analysis.Summary.Add(core.DirectionDownstream, entry.Tier)
	}
	for _, entry := range analysis.Upstream {
		analysis.Summary.Add(core.DirectionUpstream, entry.Tier)
	}

	return analysis, nil
}

// Traverse runs a direction-filtered BFS from the origin and returns one
// entry per reachable dataset, ordered by distance then discovery order.
// The origin itself is never reported, and revisiting an already-discovered
// node (including via a cycle back to the origin) is a no-op, so first
// discovery distance is shortest-path distance and the traversal
// terminates on any finite graph.
func (a *Analyzer) Traverse(origin string, dir core.Direction) []core.ImpactEntry {
	type frontierNode struct {
		dataset string
		path    []core.Relationship
	}

	visited := map[string]struct{}{origin: {}}
	frontier := []frontierNode{{dataset: origin}}

	var entries []core.ImpactEntry
	for distance := 1; len(frontier) > 0; distance++ {
		var next []frontierNode
		for _, node := range frontier {
			for _, edge := range a.graph.Neighbors(node.dataset, dir) {
				reached := edge.Target
				if dir == core.DirectionUpstream {
					reached = edge.Source
				}
				if _, seen := visited[reached]; seen {
					continue
				}
				visited[reached] = struct{}{}

				path := make([]core.Relationship, 0, len(node.path)+1)
				path = append(path, node.path...)
				path = append(path, edge)

				entries = append(entries, core.ImpactEntry{
					Dataset:  reached,
					Path:     path,
					Distance: distance,
					Tier:     a.thresholds.Tier(distance),
				})
				next = append(next, frontierNode{dataset: reached, path: path})
			}
		}
		frontier = next
	}

	return entries
}
