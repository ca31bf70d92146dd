package core

import (
	"testing"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunMetrics tests the full aggregate-rank-sort pass.
func TestRunMetrics(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("toucans-03", map[string]schema.RawEvent{
			"0": {Actor: "carol", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
		}),
		"1": feedTeam("bears-01", map[string]schema.RawEvent{
			"0": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
			"1": {Actor: "alice", Type: "PullRequestEvent", CreatedAt: "2025-03-02T10:00:00Z"},
			"2": {Actor: "org-admin", Type: "PushEvent", CreatedAt: "2025-03-03T10:00:00Z"},
		}),
		"2": feedTeam("geckos-02", map[string]schema.RawEvent{}),
	}

	results, stats := RunMetrics(feed, []string{"org-admin"})
	require.Len(t, results, 3)

	// Display order is by team, not rank.
	assert.Equal(t, "bears-01", results[0].Team)
	assert.Equal(t, "geckos-02", results[1].Team)
	assert.Equal(t, "toucans-03", results[2].Team)

	// alice outscores carol, so her rank is higher; the placeholder
	// trails both.
	var alice, carol, placeholder *schema.MemberResult
	for _, r := range results {
		switch r.Name {
		case "alice":
			alice = r
		case "carol":
			carol = r
		case schema.InactiveName:
			placeholder = r
		}
	}
	require.NotNil(t, alice)
	require.NotNil(t, carol)
	require.NotNil(t, placeholder)
	assert.Equal(t, 6, alice.TotalScore)
	assert.Equal(t, 3, carol.TotalScore)
	assert.Greater(t, alice.PercentileRank, carol.PercentileRank)
	assert.Greater(t, carol.PercentileRank, placeholder.PercentileRank)

	assert.Equal(t, RunStats{
		TeamCount:      3,
		MemberCount:    2,
		EventCount:     4,
		SkippedUnknown: 0,
		TaxonomySize:   len(GHEvents),
	}, stats)
}

// TestSortByTeam tests the presentation ordering.
func TestSortByTeam(t *testing.T) {
	results := []*schema.MemberResult{
		{Team: "geckos-01", Name: "zed"},
		{Team: "bears-01", Name: "bob"},
		{Team: "bears-01", Name: "alice"},
	}

	SortByTeam(results)

	assert.Equal(t, "alice", results[0].Name)
	assert.Equal(t, "bob", results[1].Name)
	assert.Equal(t, "geckos-01", results[2].Team)
}
