// Package schema has configs, models and global variables for all parts of heartbeat.
package schema

import "time"

// EventTypeDefinition describes one entry of the static event taxonomy.
// The position of a definition within the taxonomy table is its ordinal,
// which is also the index into MemberResult.Counts. Reordering the table
// is a breaking change for any stored results.
type EventTypeDefinition struct {
	EventName  string           // Raw event type name as it appears in the feed
	Title      string           // Human-readable column label (empty for deprecated events)
	Deprecated bool             // Deprecated events never qualify for scoring
	Category   ActivityCategory // Category doubles as the integer weight
}

// MemberResult accumulates the qualifying activity of one (team, member)
// pair. One Aggregator invocation exclusively owns and mutates its result
// collection; after ranking runs the collection is read-only.
type MemberResult struct {
	Tier           string    `json:"tier"`            // Leading token of the team name
	Team           string    `json:"team"`            // Normalized team name
	Name           string    `json:"name"`            // Account id, or InactiveName for placeholder rows
	TeamActive     bool      `json:"team_active"`     // True once any qualifying non-admin event is recorded
	LastActivity   time.Time `json:"last_activity"`   // Latest qualifying event date (day precision)
	Counts         []int     `json:"counts"`          // Accumulated weight per taxonomy ordinal (not occurrence counts)
	TotalScore     int       `json:"total_score"`     // Sum of Counts
	PercentileRank float64   `json:"percentile_rank"` // Assigned by the ranker after accumulation closes
}

// ThresholdBand maps an inclusive score range to a named color band.
// Band order in a configuration determines precedence: the first band
// containing a score wins, and no disjointness check exists.
type ThresholdBand struct {
	Label string    `mapstructure:"label" json:"label"`
	Low   float64   `mapstructure:"low" json:"low"`
	High  float64   `mapstructure:"high" json:"high"`
	Color BandColor `mapstructure:"color" json:"color"`
}

// BandColor is the RGBA background payload forwarded to the spreadsheet
// sink. The core never interprets it.
type BandColor struct {
	Red   float64 `mapstructure:"red" json:"red"`
	Green float64 `mapstructure:"green" json:"green"`
	Blue  float64 `mapstructure:"blue" json:"blue"`
	Alpha float64 `mapstructure:"alpha" json:"alpha"`
}
