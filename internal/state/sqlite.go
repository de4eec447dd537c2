package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/harborview-health/datalineage/pkg/core"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun saves a run and its final relationship set in one transaction.
func (s *SQLiteStore) RecordRun(run *Run, relationships []core.Relationship) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, completed_at, status, dataset_count, relationship_count, detected_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.CompletedAt, run.Status,
		run.DatasetCount, run.RelationshipCount, run.DetectedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, rel := range relationships {
		fields, err := json.Marshal(rel.JoiningFields)
		if err != nil {
			return fmt.Errorf("failed to encode joining fields: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO run_relationships
				(run_id, position, source_dataset, target_dataset, relationship_type, joining_fields, detection_method, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, rel.Source, rel.Target, string(rel.Type), string(fields), string(rel.DetectionMethod), rel.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert relationship %s -> %s: %w", rel.Source, rel.Target, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, completed_at, status, dataset_count, relationship_count, detected_count
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.Status,
			&run.DatasetCount, &run.RelationshipCount, &run.DetectedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunRelationships returns the relationship set recorded for a run,
// in catalog order.
func (s *SQLiteStore) GetRunRelationships(runID string) ([]core.Relationship, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`
		SELECT source_dataset, target_dataset, relationship_type, joining_fields, detection_method, description
		FROM run_relationships WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rels []core.Relationship
	for rows.Next() {
		var rel core.Relationship
		var relType, method, fields string
		if err := rows.Scan(&rel.Source, &rel.Target, &relType, &fields, &method, &rel.Description); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &rel.JoiningFields); err != nil {
			return nil, fmt.Errorf("failed to decode joining fields: %w", err)
		}
		rel.Type = core.RelationshipType(relType)
		rel.DetectionMethod = core.DetectionMethod(method)
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}
