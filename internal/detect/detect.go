// Package detect infers dataset relationships from column-name overlap.
// Detected edges are merged into the catalog with automatic provenance;
// manually curated relationships always take precedence and are never
// overwritten by detection.
package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harborview-health/datalineage/internal/catalog"
	"github.com/harborview-health/datalineage/pkg/core"
)

// defaultUtilityColumns are shared bookkeeping columns that appear in most
// datasets and never indicate a relationship.
var defaultUtilityColumns = []string{"created_at", "updated_at"}

// Detector synthesizes relationships for dataset pairs that share
// column names.
type Detector struct {
	utility map[string]struct{}
}

// Option configures a Detector.
type Option func(*Detector)

// WithUtilityColumns overrides the set of column names excluded from
// overlap detection.
func WithUtilityColumns(cols []string) Option {
	return func(d *Detector) {
		d.utility = make(map[string]struct{}, len(cols))
		for _, c := range cols {
			d.utility[c] = struct{}{}
		}
	}
}

// New creates a Detector with the default utility-column exclusions.
func New(opts ...Option) *Detector {
	d := &Detector{}
	WithUtilityColumns(defaultUtilityColumns)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run detects relationships from the per-dataset column sets and merges
// them into the catalog. For every unordered dataset pair with a non-empty
// column intersection, two directed primary edges are synthesized (one per
// direction) unless the pair was already declared with standard provenance
// in either direction. Returns the synthesized edges in the order they
// were added.
//
// Pairs are processed in lexicographic order and joining fields are sorted,
// so output is reproducible across runs with the same input.
func (d *Detector) Run(cat *catalog.Catalog, columns map[string][]string) ([]core.Relationship, error) {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	var detected []core.Relationship
	for i, a := range names {
		for _, b := range names[i+1:] {
			common := d.CommonFields(columns[a], columns[b])
			if len(common) == 0 {
				continue
			}
			if declaredStandard(cat, a, b) {
				continue
			}

			for _, pair := range [][2]string{{a, b}, {b, a}} {
				rel := core.Relationship{
					Source:          pair[0],
					Target:          pair[1],
					Type:            core.RelationshipPrimary,
					JoiningFields:   common,
					DetectionMethod: core.DetectionAutomatic,
					Description:     fmt.Sprintf("Detected relationship based on common fields: %s", strings.Join(common, ", ")),
				}
				if err := cat.Add(rel); err != nil {
					return nil, fmt.Errorf("failed to merge detected relationship %s -> %s: %w", rel.Source, rel.Target, err)
				}
				detected = append(detected, rel)
			}
		}
	}

	return detected, nil
}

// CommonFields returns the sorted intersection of two column-name sets,
// excluding utility columns. Sorting before emitting keeps joining fields
// stable regardless of input ordering.
func (d *Detector) CommonFields(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, col := range a {
		set[col] = struct{}{}
	}

	var common []string
	seen := make(map[string]struct{})
	for _, col := range b {
		if _, ok := set[col]; !ok {
			continue
		}
		if _, ok := d.utility[col]; ok {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		common = append(common, col)
	}

	sort.Strings(common)
	return common
}

// declaredStandard reports whether the pair carries a manually curated
// relationship in either direction.
func declaredStandard(cat *catalog.Catalog, a, b string) bool {
	if rel, ok := cat.Get(a, b); ok && rel.DetectionMethod == core.DetectionStandard {
		return true
	}
	if rel, ok := cat.Get(b, a); ok && rel.DetectionMethod == core.DetectionStandard {
		return true
	}
	return false
}
