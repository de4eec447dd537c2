// Package state records completed governance runs in a local SQLite
// database. The lineage computation itself is purely in-memory and rebuilt
// from scratch each run; the store only keeps the resulting artifacts so
// past runs can be listed and audited.
package state

import (
	"time"

	"github.com/harborview-health/datalineage/pkg/core"
)

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one recorded governance run.
type Run struct {
	ID                string
	StartedAt         time.Time
	CompletedAt       time.Time
	Status            string
	DatasetCount      int
	RelationshipCount int
	DetectedCount     int
}

// Store persists governance run history.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// in-memory database.
	Open(path string) error
	// Close closes the store.
	Close() error
	// Migrate brings the schema up to date.
	Migrate() error
	// RecordRun saves a run together with its final relationship set
	// (declared plus detected, in catalog order).
	RecordRun(run *Run, relationships []core.Relationship) error
	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]Run, error)
	// GetRunRelationships returns the relationship set recorded for a run.
	GetRunRelationships(runID string) ([]core.Relationship, error)
}
