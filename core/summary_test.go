package core

import (
	"testing"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFixture() []*schema.MemberResult {
	return []*schema.MemberResult{
		{Tier: "bears", Team: "bears-01", Name: "alice", TeamActive: true, TotalScore: 9},
		{Tier: "bears", Team: "bears-01", Name: "bob", TeamActive: true, TotalScore: 4},
		{Tier: "bears", Team: "bears-02", Name: "alice", TeamActive: true, TotalScore: 3},
		{Tier: "geckos", Team: "geckos-01", Name: schema.InactiveName, TeamActive: false},
	}
}

// TestBuildMemberSummary tests cross-team grouping by member name.
func TestBuildMemberSummary(t *testing.T) {
	rows := BuildMemberSummary(summaryFixture())
	require.Len(t, rows, 3)

	// alice collapses into one row under her first-seen team.
	assert.Equal(t, "alice", rows[0].Name)
	assert.Equal(t, "bears-01", rows[0].Team)
	assert.Equal(t, 12, rows[0].HeartbeatTotal)
	assert.Equal(t, "bob", rows[1].Name)
	assert.Equal(t, 4, rows[1].HeartbeatTotal)
	assert.Equal(t, schema.InactiveName, rows[2].Name)

	// Descending rank by heartbeat total.
	assert.Greater(t, rows[0].PercentileRank, rows[1].PercentileRank)
	assert.Greater(t, rows[1].PercentileRank, rows[2].PercentileRank)
}

// TestBuildTeamSummary tests per-team rollups and placeholder handling.
func TestBuildTeamSummary(t *testing.T) {
	rows := BuildTeamSummary(summaryFixture())
	require.Len(t, rows, 3)

	assert.Equal(t, "bears-01", rows[0].Team)
	assert.Equal(t, 2, rows[0].MemberCount)
	assert.Equal(t, 13, rows[0].HeartbeatTotal)
	assert.Equal(t, "bears-02", rows[1].Team)
	assert.Equal(t, 1, rows[1].MemberCount)

	// The inactive team still gets a row, with zero members.
	assert.Equal(t, "geckos-01", rows[2].Team)
	assert.Zero(t, rows[2].MemberCount)
	assert.Zero(t, rows[2].HeartbeatTotal)
}

// TestBuildTierSummary tests formula rows and named range metadata.
func TestBuildTierSummary(t *testing.T) {
	teamRows := BuildTeamSummary(summaryFixture())
	summary := BuildTierSummary(teamRows, 42, 1)

	// Blank row, header, one formula row per tier, trailing blank.
	require.Len(t, summary.Rows, 2+2+1)
	assert.Equal(t, []any{"Tier", "No. Teams", "Heartbeat Total"}, summary.Rows[1])

	bears := summary.Rows[2]
	assert.Equal(t, "Bears", bears[0])
	assert.Equal(t, `=COUNTIF(UNIQUE(Voyage_Teams),"Bears*")`, bears[1])
	assert.Equal(t, `=SUMIF(Voyage_Metrics,"Bears",Voyage_Team_Total)`, bears[2])

	geckos := summary.Rows[3]
	assert.Equal(t, "Geckos", geckos[0])

	require.Len(t, summary.Ranges, 3)
	for _, r := range summary.Ranges {
		assert.EqualValues(t, 42, r.SheetID)
		assert.Equal(t, 1, r.StartRow)
		assert.Equal(t, 1+len(teamRows), r.EndRow)
	}
	teams, ok := findRange(summary.Ranges, RangeTeams)
	require.True(t, ok)
	assert.Equal(t, 1, teams.StartColumn)
	assert.Equal(t, 2, teams.EndColumn)

	// The total range sits on the Heartbeat Total column of the five-column
	// summary grid, one left of Percentile Rank.
	total, ok := findRange(summary.Ranges, RangeTeamTotal)
	require.True(t, ok)
	assert.Equal(t, 3, total.StartColumn)
	assert.Equal(t, 4, total.EndColumn)
}

func findRange(ranges []schema.NamedRangeMeta, name string) (schema.NamedRangeMeta, bool) {
	for _, r := range ranges {
		if r.Name == name {
			return r, true
		}
	}
	return schema.NamedRangeMeta{}, false
}
