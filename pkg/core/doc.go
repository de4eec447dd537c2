// Package core defines the shared language of the lineage engine.
//
// This package contains:
//   - Domain entities (Relationship, ImpactEntry, ImpactSummary)
//   - Enumerations (RelationshipType, DetectionMethod, Direction, ImpactTier)
//   - The impact tier policy table (TierThresholds)
//   - The error taxonomy (ValidationError, UnknownDatasetError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
