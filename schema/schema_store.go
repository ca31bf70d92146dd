package schema

import "time"

// RunRecord is one completed aggregation run as stored by the run store.
type RunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TeamCount      int
	MemberCount    int
	EventCount     int
	SkippedUnknown int
	TaxonomySize   int
	ConfigParams   *string
}

// MemberScoreRecord is one stored per-member score row belonging to a run.
type MemberScoreRecord struct {
	RunID          int64
	Tier           string
	Team           string
	Name           string
	TeamActive     bool
	LastActivity   time.Time
	TotalScore     int
	PercentileRank float64
}

// RunStatus summarizes the state of the run store for status commands.
type RunStatus struct {
	Backend    DatabaseBackend
	Location   string
	TotalRuns  int
	TableSizes map[string]int
}
