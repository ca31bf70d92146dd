package core

import (
	"fmt"
	"strings"

	"github.com/chingu-voyage/heartbeat/schema"
)

// Named ranges registered on the team summary sheet. Tier formulas
// reference these, so the names are part of the spreadsheet contract.
const (
	RangeTeams     = "Voyage_Teams"
	RangeMetrics   = "Voyage_Metrics"
	RangeTeamTotal = "Voyage_Team_Total"
)

// Column positions on the team summary sheet that the named ranges cover.
const (
	teamSummaryTierCol  = 0
	teamSummaryTeamCol  = 1
	teamSummaryTotalCol = 3
)

// BuildMemberSummary groups the ranked result set by member name across
// all teams, sums each member's total score into a heartbeat total, and
// re-ranks descending on that total. The grouping key is the name alone; a
// member appearing on several teams collapses into one row carrying the
// first-seen tier and team.
func BuildMemberSummary(results []*schema.MemberResult) []schema.MemberSummaryRow {
	var rows []schema.MemberSummaryRow
	index := make(map[string]int)

	for _, r := range results {
		if i, ok := index[r.Name]; ok {
			rows[i].HeartbeatTotal += r.TotalScore
			continue
		}
		index[r.Name] = len(rows)
		rows = append(rows, schema.MemberSummaryRow{
			Tier:           r.Tier,
			Team:           r.Team,
			Name:           r.Name,
			HeartbeatTotal: r.TotalScore,
		})
	}

	Rank(rows,
		func(a, b schema.MemberSummaryRow) bool { return a.HeartbeatTotal > b.HeartbeatTotal },
		func(i int, rank float64) { rows[i].PercentileRank = rank })
	return rows
}

// BuildTeamSummary groups the ranked result set by team, counting members
// and summing scores, then re-ranks descending on the heartbeat total.
// Inactive placeholder rows contribute the team itself but no members.
func BuildTeamSummary(results []*schema.MemberResult) []schema.TeamSummaryRow {
	var rows []schema.TeamSummaryRow
	index := make(map[string]int)

	for _, r := range results {
		i, ok := index[r.Team]
		if !ok {
			i = len(rows)
			index[r.Team] = i
			rows = append(rows, schema.TeamSummaryRow{Tier: r.Tier, Team: r.Team})
		}
		if r.Name != schema.InactiveName {
			rows[i].MemberCount++
			rows[i].HeartbeatTotal += r.TotalScore
		}
	}

	Rank(rows,
		func(a, b schema.TeamSummaryRow) bool { return a.HeartbeatTotal > b.HeartbeatTotal },
		func(i int, rank float64) { rows[i].PercentileRank = rank })
	return rows
}

// BuildTierSummary produces the tier rollup for the spreadsheet. Tier
// totals are not computed here: each row carries COUNTIF/SUMIF formulas
// over the named ranges registered on the team summary sheet, and the
// range boundary metadata needed to register them. teamRowOffset is the
// zero-based row on the team summary sheet where team data rows begin.
func BuildTierSummary(teamRows []schema.TeamSummaryRow, sheetID int64, teamRowOffset int) schema.TierSummary {
	var tiers []string
	seen := make(map[string]struct{})
	for _, row := range teamRows {
		if _, ok := seen[row.Tier]; ok {
			continue
		}
		seen[row.Tier] = struct{}{}
		tiers = append(tiers, row.Tier)
	}

	rows := [][]any{
		{"", "", ""},
		{"Tier", "No. Teams", "Heartbeat Total"},
	}
	for _, tier := range tiers {
		display := titleCase(tier)
		rows = append(rows, []any{
			display,
			fmt.Sprintf("=COUNTIF(UNIQUE(%s),%q)", RangeTeams, display+"*"),
			fmt.Sprintf("=SUMIF(%s,%q,%s)", RangeMetrics, display, RangeTeamTotal),
		})
	}
	rows = append(rows, []any{"", "", ""})

	endRow := teamRowOffset + len(teamRows)
	ranges := []schema.NamedRangeMeta{
		{Name: RangeTeams, SheetID: sheetID, StartRow: teamRowOffset, EndRow: endRow, StartColumn: teamSummaryTeamCol, EndColumn: teamSummaryTeamCol + 1},
		{Name: RangeMetrics, SheetID: sheetID, StartRow: teamRowOffset, EndRow: endRow, StartColumn: teamSummaryTierCol, EndColumn: teamSummaryTierCol + 1},
		{Name: RangeTeamTotal, SheetID: sheetID, StartRow: teamRowOffset, EndRow: endRow, StartColumn: teamSummaryTotalCol, EndColumn: teamSummaryTotalCol + 1},
	}

	return schema.TierSummary{Rows: rows, Ranges: ranges}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
