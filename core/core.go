// Package core has the aggregation, ranking, summary and classification
// logic for heartbeat.
package core

import (
	"sort"

	"github.com/chingu-voyage/heartbeat/schema"
)

// RunStats summarizes one aggregation pass for run tracking and reports.
type RunStats struct {
	TeamCount      int `json:"team_count"`
	MemberCount    int `json:"member_count"`
	EventCount     int `json:"event_count"`
	SkippedUnknown int `json:"skipped_unknown"`
	TaxonomySize   int `json:"taxonomy_size"`
}

// ByTotalScoreDesc is the conventional ranking comparator for member
// results: descending by total score, ties left to sort stability.
func ByTotalScoreDesc(a, b *schema.MemberResult) bool {
	return a.TotalScore > b.TotalScore
}

// RunMetrics performs one full aggregation pass over the feed: accumulate,
// rank, then order rows by team for presentation. The returned collection
// is closed; callers treat it as read-only.
func RunMetrics(feed schema.EventFeed, adminAccounts []string) ([]*schema.MemberResult, RunStats) {
	agg := NewAggregator(GHEvents, NewAdminFilter(adminAccounts))
	results := agg.Aggregate(feed)

	Rank(results, ByTotalScoreDesc, func(i int, rank float64) {
		results[i].PercentileRank = rank
	})
	SortByTeam(results)

	teams := make(map[string]struct{})
	members := 0
	for _, r := range results {
		teams[r.Team] = struct{}{}
		if r.Name != schema.InactiveName {
			members++
		}
	}
	return results, RunStats{
		TeamCount:      len(teams),
		MemberCount:    members,
		EventCount:     agg.EventCount(),
		SkippedUnknown: agg.SkippedUnknown(),
		TaxonomySize:   len(GHEvents),
	}
}

// SortByTeam orders results by team name, then member name, for display.
// Ranks are assigned before this runs, so the ordering is cosmetic.
func SortByTeam(results []*schema.MemberResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Team != results[j].Team {
			return results[i].Team < results[j].Team
		}
		return results[i].Name < results[j].Name
	})
}
