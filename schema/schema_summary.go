package schema

// MemberSummaryRow is one row of the member rollup: a member's heartbeat
// total across every team they appear on, keyed by account name only.
type MemberSummaryRow struct {
	Tier           string  `json:"tier"`
	Team           string  `json:"team"`
	Name           string  `json:"name"`
	HeartbeatTotal int     `json:"heartbeat_total"`
	PercentileRank float64 `json:"percentile_rank"`
}

// TeamSummaryRow is one row of the team rollup.
type TeamSummaryRow struct {
	Tier           string  `json:"tier"`
	Team           string  `json:"team"`
	MemberCount    int     `json:"member_count"`
	HeartbeatTotal int     `json:"heartbeat_total"`
	PercentileRank float64 `json:"percentile_rank"`
}

// TierSummary carries the tier rollup. Tier totals are evaluated by the
// spreadsheet itself through formulas over named ranges; the core only
// produces the formula rows and the range boundaries they reference.
type TierSummary struct {
	Rows   [][]any          `json:"rows"`
	Ranges []NamedRangeMeta `json:"ranges"`
}

// NamedRangeMeta describes the row/column boundaries of a named range so a
// spreadsheet sink can register it. Indices are zero-based; End* of
// NotFound means open-ended.
type NamedRangeMeta struct {
	Name        string `json:"name"`
	SheetID     int64  `json:"sheet_id"`
	StartRow    int    `json:"start_row"`
	EndRow      int    `json:"end_row"`
	StartColumn int    `json:"start_column"`
	EndColumn   int    `json:"end_column"`
}
