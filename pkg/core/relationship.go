package core

import "strings"

// =============================================================================
// RelationshipType
// =============================================================================

// RelationshipType classifies how the source dataset relates to the target.
type RelationshipType string

// Relationship types for dataset edges.
const (
	// RelationshipPrimary means the source is the authoritative reference
	// for the target.
	RelationshipPrimary RelationshipType = "primary"
	// RelationshipReferencedBy means the source is referenced by the target
	// without being authoritative for it.
	RelationshipReferencedBy RelationshipType = "referenced_by"
)

// String returns the string representation of the relationship type.
func (t RelationshipType) String() string {
	return string(t)
}

// ParseRelationshipType converts a string to a RelationshipType.
// Returns the type and true if valid, or RelationshipPrimary and false if invalid.
func ParseRelationshipType(s string) (RelationshipType, bool) {
	switch strings.ToLower(s) {
	case "primary":
		return RelationshipPrimary, true
	case "referenced_by":
		return RelationshipReferencedBy, true
	default:
		return RelationshipPrimary, false
	}
}

// =============================================================================
// DetectionMethod
// =============================================================================

// DetectionMethod records how a relationship entered the catalog.
type DetectionMethod string

// Detection methods for relationship provenance.
const (
	// DetectionStandard marks a manually curated relationship.
	DetectionStandard DetectionMethod = "standard"
	// DetectionAutomatic marks a relationship inferred from column overlap.
	DetectionAutomatic DetectionMethod = "automatic"
)

// String returns the string representation of the detection method.
func (m DetectionMethod) String() string {
	return string(m)
}

// =============================================================================
// Relationship
// =============================================================================

// Relationship is a directed, attributed edge between two datasets.
// JSON field names match the governance documents consumed by the
// documentation and dashboard layers.
type Relationship struct {
	Source          string           `json:"source_dataset"`
	Target          string           `json:"target_dataset"`
	Type            RelationshipType `json:"relationship_type"`
	JoiningFields   []string         `json:"joining_fields"`
	DetectionMethod DetectionMethod  `json:"detection_method"`
	Description     string           `json:"description,omitempty"`
}

// Validate checks that the relationship declaration is well formed.
// Returns a *ValidationError describing the first problem found.
func (r *Relationship) Validate() error {
	if r.Source == "" {
		return &ValidationError{Field: "source_dataset", Reason: "must not be empty"}
	}
	if r.Target == "" {
		return &ValidationError{Field: "target_dataset", Reason: "must not be empty"}
	}
	if len(r.JoiningFields) == 0 {
		return &ValidationError{Field: "joining_fields", Reason: "must contain at least one field"}
	}
	return nil
}
