package core

import "strings"

// =============================================================================
// Direction
// =============================================================================

// Direction selects which way an impact traversal follows edges.
type Direction string

// Traversal directions.
const (
	// DirectionDownstream follows outgoing edges: "what depends on this dataset".
	DirectionDownstream Direction = "downstream"
	// DirectionUpstream follows incoming edges: "what this dataset depends on".
	DirectionUpstream Direction = "upstream"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// TierLabel returns the label under which tiers are reported for this
// direction. Downstream entries carry an impact level, upstream entries a
// dependency level. The semantics are identical; only the terminology differs.
func (d Direction) TierLabel() string {
	if d == DirectionUpstream {
		return "dependency_level"
	}
	return "impact_level"
}

// ParseDirection converts a string to a Direction.
// Returns the direction and true if valid, or DirectionDownstream and false if invalid.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "downstream":
		return DirectionDownstream, true
	case "upstream":
		return DirectionUpstream, true
	default:
		return DirectionDownstream, false
	}
}

// =============================================================================
// ImpactTier
// =============================================================================

// ImpactTier is a coarse severity bucket derived from shortest-path distance.
type ImpactTier string

// Impact tiers.
const (
	TierHigh   ImpactTier = "High"
	TierMedium ImpactTier = "Medium"
	TierLow    ImpactTier = "Low"
)

// TierThresholds maps traversal distance to an impact tier. Distances up to
// HighMax are High, distances up to MediumMax are Medium, everything beyond
// is Low. The thresholds are a policy constant: callers may override them,
// but the default must stay fixed so existing reports remain reproducible.
type TierThresholds struct {
	HighMax   int
	MediumMax int
}

// DefaultTierThresholds is the standard policy: distance 1 is High,
// distances 2-3 are Medium, distance 4 and beyond is Low.
var DefaultTierThresholds = TierThresholds{HighMax: 1, MediumMax: 3}

// Tier returns the impact tier for a traversal distance.
func (t TierThresholds) Tier(distance int) ImpactTier {
	switch {
	case distance <= t.HighMax:
		return TierHigh
	case distance <= t.MediumMax:
		return TierMedium
	default:
		return TierLow
	}
}

// =============================================================================
// Traversal results
// =============================================================================

// ImpactEntry is one reached dataset in a traversal result: the dataset id,
// the full edge path from the origin, the shortest edge-count distance, and
// the tier derived from that distance. The tier is serialized by the report
// layer under a direction-specific key, so it carries no JSON tag here.
type ImpactEntry struct {
	Dataset  string         `json:"dataset"`
	Path     []Relationship `json:"path"`
	Distance int            `json:"distance"`
	Tier     ImpactTier     `json:"-"`
}

// ImpactSummary counts traversal entries per tier in each direction.
// Downstream counts are labeled impact, upstream counts dependency.
type ImpactSummary struct {
	HighImpact       int `json:"high_impact"`
	MediumImpact     int `json:"medium_impact"`
	LowImpact        int `json:"low_impact"`
	HighDependency   int `json:"high_dependency"`
	MediumDependency int `json:"medium_dependency"`
	LowDependency    int `json:"low_dependency"`
}

// Add counts one entry with the given tier in the given direction.
func (s *ImpactSummary) Add(dir Direction, tier ImpactTier) {
	if dir == DirectionDownstream {
		switch tier {
		case TierHigh:
			s.HighImpact++
		case TierMedium:
			s.MediumImpact++
		case TierLow:
			s.LowImpact++
		}
		return
	}
	switch tier {
	case TierHigh:
		s.HighDependency++
	case TierMedium:
		s.MediumDependency++
	case TierLow:
		s.LowDependency++
	}
}
