package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chingu-voyage/heartbeat/schema"
)

func newSQLiteStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func TestSQLiteRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	startTime := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(startTime, map[string]any{"output": "csv"})
	require.NoError(t, err)
	assert.Positive(t, runID)

	result := &schema.MemberResult{
		Tier:           "Bears",
		Team:           "bears-01",
		Name:           "alice",
		TeamActive:     true,
		LastActivity:   time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
		TotalScore:     9,
		PercentileRank: 100.0,
	}
	require.NoError(t, store.RecordMemberScore(runID, result))

	endTime := startTime.Add(1500 * time.Millisecond)
	stats := schema.RunRecord{
		TeamCount:      1,
		MemberCount:    1,
		EventCount:     4,
		SkippedUnknown: 1,
		TaxonomySize:   37,
	}
	require.NoError(t, store.EndRun(runID, endTime, stats))

	runs, err := store.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, run.StartTime.Equal(startTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(endTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, 1, run.TeamCount)
	assert.Equal(t, 4, run.EventCount)
	assert.Equal(t, 1, run.SkippedUnknown)
	assert.Equal(t, 37, run.TaxonomySize)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"output":"csv"`)

	scores, err := store.GetMemberScores(runID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "alice", scores[0].Name)
	assert.Equal(t, "bears-01", scores[0].Team)
	assert.True(t, scores[0].TeamActive)
	assert.Equal(t, 9, scores[0].TotalScore)
	assert.InDelta(t, 100.0, scores[0].PercentileRank, 0.001)
	assert.True(t, scores[0].LastActivity.Equal(result.LastActivity))
}

func TestSQLiteRunsNewestFirst(t *testing.T) {
	store := newSQLiteStore(t)

	first, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].RunID)
	assert.Equal(t, first, runs[1].RunID)
}

func TestSQLiteStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordMemberScore(runID, &schema.MemberResult{
		Tier: "Geckos", Team: "geckos-05", Name: "bob",
		LastActivity: time.Now().UTC(),
	}))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 1, status.TableSizes[runsTable])
	assert.Equal(t, 1, status.TableSizes[memberScoresTable])

	require.NoError(t, store.Clear())

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TableSizes[memberScoresTable])
}

func TestNoneBackendIsNoop(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	assert.NoError(t, err)
	assert.Zero(t, runID)

	assert.NoError(t, store.RecordMemberScore(0, &schema.MemberResult{}))
	assert.NoError(t, store.EndRun(0, time.Now(), schema.RunRecord{}))

	runs, err := store.GetRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "heartbeat_runs", false},
		{"valid underscore prefix", "_scores", false},
		{"empty", "", true},
		{"leading digit", "1table", true},
		{"injection", "runs; DROP TABLE x", true},
		{"hyphen", "run-store", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTableName(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`heartbeat_runs`", quoteTableName("heartbeat_runs", schema.MySQLBackend))
	assert.Equal(t, `"heartbeat_runs"`, quoteTableName("heartbeat_runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"heartbeat_runs"`, quoteTableName("heartbeat_runs", schema.SQLiteBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)

	sqlite := formatTime(ts, schema.SQLiteBackend)
	assert.Equal(t, ts.Format(time.RFC3339Nano), sqlite)

	pg := formatTime(ts, schema.PostgreSQLBackend)
	assert.Equal(t, ts, pg)
}

func TestClearRunsSQLiteRemovesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath))
	// A second clear on a missing file is not an error
	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath))
}
