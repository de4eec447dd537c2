package state

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-health/datalineage/pkg/core"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func sampleRun(started time.Time) *Run {
	return &Run{
		ID:                uuid.NewString(),
		StartedAt:         started,
		CompletedAt:       started.Add(2 * time.Second),
		Status:            RunStatusCompleted,
		DatasetCount:      5,
		RelationshipCount: 7,
		DetectedCount:     4,
	}
}

func TestSQLiteStore_RecordAndListRuns(t *testing.T) {
	s := openStore(t)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	first := sampleRun(base)
	second := sampleRun(base.Add(time.Hour))

	require.NoError(t, s.RecordRun(first, nil))
	require.NoError(t, s.RecordRun(second, nil))

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, RunStatusCompleted, runs[0].Status)
	assert.Equal(t, 5, runs[0].DatasetCount)
	assert.Equal(t, 7, runs[0].RelationshipCount)
	assert.Equal(t, 4, runs[0].DetectedCount)
}

func TestSQLiteStore_ListRuns_Limit(t *testing.T) {
	s := openStore(t)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun(sampleRun(base.Add(time.Duration(i)*time.Minute)), nil))
	}

	runs, err := s.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_RunRelationshipsRoundTrip(t *testing.T) {
	s := openStore(t)

	rels := []core.Relationship{
		{
			Source: "demographics", Target: "records",
			Type:            core.RelationshipPrimary,
			JoiningFields:   []string{"patient_id", "nhs_number"},
			DetectionMethod: core.DetectionStandard,
			Description:     "Patient demographics are the primary reference for medical records",
		},
		{
			Source: "records", Target: "labs",
			Type:            core.RelationshipPrimary,
			JoiningFields:   []string{"record_id"},
			DetectionMethod: core.DetectionAutomatic,
			Description:     "Detected relationship based on common fields: record_id",
		},
	}

	run := sampleRun(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.RecordRun(run, rels))

	got, err := s.GetRunRelationships(run.ID)
	require.NoError(t, err)
	assert.Equal(t, rels, got)
}

func TestSQLiteStore_GetRunRelationships_UnknownRun(t *testing.T) {
	s := openStore(t)

	got, err := s.GetRunRelationships("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	s := NewSQLiteStore()

	assert.Error(t, s.Migrate())
	assert.Error(t, s.RecordRun(sampleRun(time.Now()), nil))
	_, err := s.ListRuns(1)
	assert.Error(t, err)
}
