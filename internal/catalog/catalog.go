// Package catalog holds the set of declared and detected dataset
// relationships for a governance run. The catalog is the single source the
// lineage graph is built from: only edges added explicitly (or by the
// detector) exist, and at most one edge is kept per ordered
// (source, target) pair.
package catalog

import "github.com/harborview-health/datalineage/pkg/core"

type pairKey struct {
	source string
	target string
}

// Catalog stores relationships keyed by ordered (source, target) pair,
// preserving insertion order. Re-adding a pair replaces the edge in place.
type Catalog struct {
	order []pairKey
	edges map[pairKey]core.Relationship
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		edges: make(map[pairKey]core.Relationship),
	}
}

// Add inserts or replaces the edge keyed by (source, target). A replaced
// edge keeps its original position in insertion order. Malformed
// relationships are rejected with a *core.ValidationError.
func (c *Catalog) Add(rel core.Relationship) error {
	if err := rel.Validate(); err != nil {
		return err
	}

	key := pairKey{source: rel.Source, target: rel.Target}
	if _, exists := c.edges[key]; !exists {
		c.order = append(c.order, key)
	}
	c.edges[key] = rel
	return nil
}

// Get returns the edge for the ordered (source, target) pair, if present.
func (c *Catalog) Get(source, target string) (core.Relationship, bool) {
	rel, ok := c.edges[pairKey{source: source, target: target}]
	return rel, ok
}

// All returns every stored edge in insertion order.
func (c *Catalog) All() []core.Relationship {
	rels := make([]core.Relationship, 0, len(c.order))
	for _, key := range c.order {
		rels = append(rels, c.edges[key])
	}
	return rels
}

// ForDataset returns edges where the dataset is source or target,
// in insertion order.
func (c *Catalog) ForDataset(name string) []core.Relationship {
	var rels []core.Relationship
	for _, key := range c.order {
		if key.source == name || key.target == name {
			rels = append(rels, c.edges[key])
		}
	}
	return rels
}

// Len returns the number of stored edges.
func (c *Catalog) Len() int {
	return len(c.order)
}
