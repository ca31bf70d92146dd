package core

import (
	"testing"
	"time"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedTeam(name string, events map[string]schema.RawEvent) schema.RawTeam {
	return schema.RawTeam{Repo: schema.RawRepo{
		Name:    name,
		HTMLURL: "https://github.com/chingu-voyages/" + name,
		Events:  events,
	}}
}

// TestAggregateScoring tests weight accrual for a single active member.
func TestAggregateScoring(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("bears-01", map[string]schema.RawEvent{
			"0": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
			"1": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-02T10:00:00Z"},
			"2": {Actor: "alice", Type: "IssuesEvent", CreatedAt: "2025-03-03T10:00:00Z"},
			"3": {Actor: "alice", Type: "WatchEvent", CreatedAt: "2025-03-04T10:00:00Z"},
		}),
	}

	agg := NewAggregator(GHEvents, NewAdminFilter(nil))
	results := agg.Aggregate(feed)
	require.Len(t, results, 1)

	alice := results[0]
	assert.Equal(t, "bears", alice.Tier)
	assert.Equal(t, "bears-01", alice.Team)
	assert.True(t, alice.TeamActive)

	pushIdx := LookupQualifyingEvent(GHEvents, "PushEvent")
	issuesIdx := LookupQualifyingEvent(GHEvents, "IssuesEvent")
	watchIdx := LookupQualifyingEvent(GHEvents, "WatchEvent")
	assert.Equal(t, 6, alice.Counts[pushIdx], "two pushes at weight 3")
	assert.Equal(t, 2, alice.Counts[issuesIdx])
	assert.Equal(t, 1, alice.Counts[watchIdx])

	// Total score always equals the sum of the count cells.
	sum := 0
	for _, c := range alice.Counts {
		sum += c
	}
	assert.Equal(t, sum, alice.TotalScore)
	assert.Equal(t, 9, alice.TotalScore)

	assert.Equal(t, 4, agg.EventCount())
	assert.Zero(t, agg.SkippedUnknown())
}

// TestAggregateLastActivity tests that the newest qualifying event day
// wins regardless of feed order.
func TestAggregateLastActivity(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("bears-01", map[string]schema.RawEvent{
			"0": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-05T10:00:00Z"},
			"1": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
		}),
	}

	results := NewAggregator(GHEvents, NewAdminFilter(nil)).Aggregate(feed)
	require.Len(t, results, 1)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), results[0].LastActivity)
}

// TestAggregateMalformedEventDate tests that an unparseable created_at
// still scores but falls back to the epoch sentinel instead of leaving a
// zero-time LastActivity, and that a later parseable event replaces it.
func TestAggregateMalformedEventDate(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("bears-01", map[string]schema.RawEvent{
			"0": {Actor: "alice", Type: "PushEvent", CreatedAt: "not-a-date"},
		}),
		"1": feedTeam("geckos-02", map[string]schema.RawEvent{
			"0": {Actor: "bob", Type: "PushEvent", CreatedAt: "garbage"},
			"1": {Actor: "bob", Type: "PushEvent", CreatedAt: "2025-03-02T10:00:00Z"},
		}),
	}

	results := NewAggregator(GHEvents, NewAdminFilter(nil)).Aggregate(feed)
	require.Len(t, results, 2)

	alice := results[0]
	assert.Equal(t, 3, alice.TotalScore)
	assert.Equal(t, schema.EpochDate, alice.LastActivity)
	assert.True(t, alice.TeamActive)

	bob := results[1]
	assert.Equal(t, 6, bob.TotalScore)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), bob.LastActivity)
}

// TestAggregateAdminExclusion tests that admin events neither score nor
// mark a team active.
func TestAggregateAdminExclusion(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("bears-01", map[string]schema.RawEvent{
			"0": {Actor: "org-admin", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
		}),
	}

	agg := NewAggregator(GHEvents, NewAdminFilter([]string{"org-admin"}))
	results := agg.Aggregate(feed)
	require.Len(t, results, 1)

	placeholder := results[0]
	assert.Equal(t, schema.InactiveName, placeholder.Name)
	assert.False(t, placeholder.TeamActive)
	assert.Equal(t, schema.EpochDate, placeholder.LastActivity)
	assert.Zero(t, placeholder.TotalScore)
}

// TestAggregateInactiveTeam tests the placeholder row for a team whose
// only events are non-qualifying.
func TestAggregateInactiveTeam(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("geckos-02", map[string]schema.RawEvent{
			"0": {Actor: "bob", Type: "ForkEvent", CreatedAt: "2025-03-01T10:00:00Z"},
			"1": {Actor: "bob", Type: "NoSuchEvent", CreatedAt: "2025-03-02T10:00:00Z"},
		}),
	}

	agg := NewAggregator(GHEvents, NewAdminFilter(nil))
	results := agg.Aggregate(feed)
	require.Len(t, results, 1)

	assert.Equal(t, schema.InactiveName, results[0].Name)
	assert.Equal(t, "geckos-02", results[0].Team)
	assert.Len(t, results[0].Counts, len(GHEvents))
	assert.Equal(t, 2, agg.EventCount())
	assert.Equal(t, 1, agg.SkippedUnknown(), "only the absent type is tallied")
}

// TestAggregateTwoTeams tests a mixed active/inactive feed end to end.
func TestAggregateTwoTeams(t *testing.T) {
	feed := schema.EventFeed{
		"0": feedTeam("bears-1", map[string]schema.RawEvent{
			"0": {Actor: "alice", Type: "PushEvent", CreatedAt: "2025-03-01T10:00:00Z"},
		}),
		"1": feedTeam("geckos-02", map[string]schema.RawEvent{}),
	}

	results := NewAggregator(GHEvents, NewAdminFilter(nil)).Aggregate(feed)
	require.Len(t, results, 2)

	assert.Equal(t, "bears-01", results[0].Team, "single digit team number is zero padded")
	assert.Equal(t, "alice", results[0].Name)
	assert.Equal(t, 3, results[0].TotalScore)
	assert.Equal(t, "geckos-02", results[1].Team)
	assert.Equal(t, schema.InactiveName, results[1].Name)
}

// TestTeamNameFromRepo tests html_url precedence over the declared name.
func TestTeamNameFromRepo(t *testing.T) {
	tests := []struct {
		name string
		repo schema.RawRepo
		want string
	}{
		{"url wins on rename", schema.RawRepo{Name: "old-name", HTMLURL: "https://github.com/org/bears-03"}, "bears-03"},
		{"url matches name", schema.RawRepo{Name: "bears-03", HTMLURL: "https://github.com/org/bears-03"}, "bears-03"},
		{"no url", schema.RawRepo{Name: "bears-03"}, "bears-03"},
		{"trailing slash", schema.RawRepo{Name: "bears-03", HTMLURL: "https://github.com/org/bears-04/"}, "bears-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamNameFromRepo(tt.repo))
		})
	}
}

// TestNormalizeTeamName tests zero padding of trailing team numbers.
func TestNormalizeTeamName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bears-9", "bears-09"},
		{"bears-19", "bears-19"},
		{"bears-09", "bears-09"},
		{"solo", "solo"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTeamName(tt.in))
	}
}

// TestTierOf tests tier extraction from team names.
func TestTierOf(t *testing.T) {
	assert.Equal(t, "bears", TierOf("bears-01"))
	assert.Equal(t, "toucans", TierOf("toucans-12"))
	assert.Equal(t, "solo", TierOf("solo"))
}
