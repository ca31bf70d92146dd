package sheet

import (
	"fmt"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/schema"
)

// Sheet layout constants.
const (
	membersSheetID int64 = 1
	summarySheetID int64 = 2

	membersSheetTitle = "Voyage Teams & Participants"
	summarySheetTitle = "Voyage Team Summary"

	summaryRankCol = 4

	sheetLocale = "en"
	maxSheets   = 2
)

// BuildHeartbeatPayload assembles the full spreadsheet creation payload:
// the per-member results sheet, the team summary sheet with its tier
// rollup formulas, the named ranges those formulas reference, and one
// conditional format rule per threshold band on the rank columns.
func BuildHeartbeatPayload(cfg *contract.Config, results []*schema.MemberResult) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to publish")
	}

	builder := NewBuilder()
	if err := builder.SetSpreadsheetProps(cfg.SheetTitle, sheetLocale, maxSheets); err != nil {
		return nil, err
	}

	// Members sheet
	memberValues := memberGrid(results)
	if err := builder.SetSheetProps(0, SheetProperties{
		SheetID: membersSheetID,
		Title:   membersSheetTitle,
		Index:   0,
		GridProperties: &GridProperties{
			RowCount:    len(memberValues),
			ColumnCount: len(memberValues[0]),
		},
	}); err != nil {
		return nil, err
	}
	if err := builder.SetSheetValues(0, 0, 0, memberValues); err != nil {
		return nil, err
	}

	// Summary sheet: team rows followed by the tier rollup
	teamRows := core.BuildTeamSummary(results)
	tierSummary := core.BuildTierSummary(teamRows, summarySheetID, 1)
	summaryValues := summaryGrid(teamRows, tierSummary)
	if err := builder.SetSheetProps(1, SheetProperties{
		SheetID: summarySheetID,
		Title:   summarySheetTitle,
		Index:   1,
		GridProperties: &GridProperties{
			RowCount:    len(summaryValues),
			ColumnCount: summaryRankCol + 1,
		},
	}); err != nil {
		return nil, err
	}
	if err := builder.SetSheetValues(1, 0, 0, summaryValues); err != nil {
		return nil, err
	}

	for _, meta := range tierSummary.Ranges {
		if err := builder.CreateNamedRange(meta); err != nil {
			return nil, err
		}
	}

	// One rule per band, coloring the rank columns on both sheets
	memberRankCol := len(memberValues[0]) - 1
	for _, band := range cfg.Thresholds {
		if err := builder.AddFormatRule(0, membersSheetID, memberRankCol, band.Label, cfg.Thresholds); err != nil {
			return nil, err
		}
		if err := builder.AddFormatRule(1, summarySheetID, summaryRankCol, band.Label, cfg.Thresholds); err != nil {
			return nil, err
		}
	}

	return builder.Build()
}

// memberGrid lays out the results sheet: the full taxonomy heading row
// followed by one row per member.
func memberGrid(results []*schema.MemberResult) [][]any {
	headings := core.ResultHeadings(core.GHEvents)
	values := make([][]any, 0, len(results)+1)

	header := make([]any, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	values = append(values, header)

	for _, result := range results {
		row := make([]any, 0, len(headings))
		row = append(row, result.Tier, result.Team, result.Name, result.TeamActive,
			result.LastActivity.Format(schema.DayFormat))
		for _, count := range result.Counts {
			row = append(row, count)
		}
		row = append(row, result.TotalScore, result.PercentileRank)
		values = append(values, row)
	}
	return values
}

// summaryGrid lays out the team summary sheet with the tier rollup rows
// appended beneath the team rows.
func summaryGrid(teamRows []schema.TeamSummaryRow, tierSummary schema.TierSummary) [][]any {
	values := [][]any{
		{"Tier", "Team", "No. Members", "Heartbeat Total", "Percentile Rank"},
	}
	for _, row := range teamRows {
		values = append(values, []any{row.Tier, row.Team, row.MemberCount, row.HeartbeatTotal, row.PercentileRank})
	}
	values = append(values, tierSummary.Rows...)
	return values
}
