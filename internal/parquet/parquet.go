// Package parquet provides data structures and functions for exporting
// heartbeat run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRow represents a single aggregation run with metadata.
// This struct maps to the heartbeat_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TeamCount is the number of teams seen in this run
	TeamCount int32 `parquet:"team_count,snappy"`

	// MemberCount is the number of scored members in this run
	MemberCount int32 `parquet:"member_count,snappy"`

	// EventCount is the number of feed events processed
	EventCount int32 `parquet:"event_count,snappy"`

	// SkippedUnknown is the number of events with unknown types
	SkippedUnknown int32 `parquet:"skipped_unknown,snappy"`

	// TaxonomySize is the size of the event taxonomy at run time
	TaxonomySize int32 `parquet:"taxonomy_size,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MemberScoreRow represents one ranked member result in a run.
// This struct maps to the heartbeat_member_scores database table.
type MemberScoreRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Tier is the leading token of the team name
	Tier string `parquet:"tier,snappy"`

	// Team is the normalized team name
	Team string `parquet:"team,snappy"`

	// Name is the member account id, or the inactive placeholder
	Name string `parquet:"name,snappy"`

	// TeamActive is whether the team recorded any qualifying activity
	TeamActive bool `parquet:"team_active,snappy"`

	// LastActivity is the latest qualifying event date
	LastActivity time.Time `parquet:"last_activity,snappy"`

	// TotalScore is the accumulated weight across all event types
	TotalScore int32 `parquet:"total_score,snappy"`

	// PercentileRank is the assigned percentile rank
	PercentileRank float64 `parquet:"percentile_rank,snappy"`
}

// FromRunRecords converts stored run records into Parquet rows.
func FromRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, len(records))
	for i, rec := range records {
		rows[i] = RunRow{
			RunID:          rec.RunID,
			StartTime:      rec.StartTime,
			EndTime:        rec.EndTime,
			RunDurationMs:  rec.RunDurationMs,
			TeamCount:      int32(rec.TeamCount),
			MemberCount:    int32(rec.MemberCount),
			EventCount:     int32(rec.EventCount),
			SkippedUnknown: int32(rec.SkippedUnknown),
			TaxonomySize:   int32(rec.TaxonomySize),
			ConfigParams:   rec.ConfigParams,
		}
	}
	return rows
}

// FromMemberScoreRecords converts stored member scores into Parquet rows.
func FromMemberScoreRecords(records []schema.MemberScoreRecord) []MemberScoreRow {
	rows := make([]MemberScoreRow, len(records))
	for i, rec := range records {
		rows[i] = MemberScoreRow{
			RunID:          rec.RunID,
			Tier:           rec.Tier,
			Team:           rec.Team,
			Name:           rec.Name,
			TeamActive:     rec.TeamActive,
			LastActivity:   rec.LastActivity,
			TotalScore:     int32(rec.TotalScore),
			PercentileRank: rec.PercentileRank,
		}
	}
	return rows
}

// FromMemberResults converts in-memory ranked results into Parquet rows.
// runID is zero for results that were never stored.
func FromMemberResults(runID int64, results []*schema.MemberResult) []MemberScoreRow {
	rows := make([]MemberScoreRow, len(results))
	for i, r := range results {
		rows[i] = MemberScoreRow{
			RunID:          runID,
			Tier:           r.Tier,
			Team:           r.Team,
			Name:           r.Name,
			TeamActive:     r.TeamActive,
			LastActivity:   r.LastActivity,
			TotalScore:     int32(r.TotalScore),
			PercentileRank: r.PercentileRank,
		}
	}
	return rows
}

// WriteMemberScores writes ranked member results to w in Parquet format.
func WriteMemberScores(w io.Writer, results []*schema.MemberResult) error {
	return writeRows(w, FromMemberResults(0, results))
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeFile(outputPath, data)
}

// WriteMemberScoresParquet writes a slice of MemberScoreRow structs to a Parquet file.
func WriteMemberScoresParquet(data []MemberScoreRow, outputPath string) error {
	return writeFile(outputPath, data)
}

// writeFile creates the output file and streams rows into it.
func writeFile[T any](outputPath string, data []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return writeRows(file, data)
}

// writeRows writes rows using struct schema inference: the Parquet schema
// is derived from the row struct tags.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// MockFetchRunRows generates sample RunRow data for demonstration.
func MockFetchRunRows() []RunRow {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 45*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"output":"csv","precision":2,"extraction-date":"2026-08-15"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 55*time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"output":"json","precision":0}`

	startTime3 := now.Add(-5 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []RunRow{
		{
			RunID:          1,
			StartTime:      startTime1,
			EndTime:        &endTime1,
			RunDurationMs:  &durationMs1,
			TeamCount:      12,
			MemberCount:    48,
			EventCount:     1350,
			SkippedUnknown: 7,
			TaxonomySize:   37,
			ConfigParams:   &configParams1,
		},
		{
			RunID:          2,
			StartTime:      startTime2,
			EndTime:        &endTime2,
			RunDurationMs:  &durationMs2,
			TeamCount:      9,
			MemberCount:    31,
			EventCount:     820,
			SkippedUnknown: 2,
			TaxonomySize:   37,
			ConfigParams:   &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchMemberScoreRows generates sample MemberScoreRow data for demonstration.
func MockFetchMemberScoreRows() []MemberScoreRow {
	now := time.Now()

	return []MemberScoreRow{
		{
			RunID:          1,
			Tier:           "Bears",
			Team:           "bears-01",
			Name:           "alice",
			TeamActive:     true,
			LastActivity:   now.AddDate(0, 0, -2),
			TotalScore:     42,
			PercentileRank: 103.33,
		},
		{
			RunID:          1,
			Tier:           "Geckos",
			Team:           "geckos-05",
			Name:           "bob",
			TeamActive:     true,
			LastActivity:   now.AddDate(0, 0, -9),
			TotalScore:     17,
			PercentileRank: 66.67,
		},
		{
			RunID:          2,
			Tier:           "Toucans",
			Team:           "toucans-12",
			Name:           "*** inactive ***",
			TeamActive:     false,
			LastActivity:   time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalScore:     0,
			PercentileRank: 33.33,
		},
	}
}
