package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/outwriter"
)

// memberSummaryCmd rolls metrics up by member account.
var memberSummaryCmd = &cobra.Command{
	Use:   "member-summary <events-file>",
	Short: "Roll metrics up by member, totaled across teams.",
	Long: `Collapse the per-team metrics into one row per member account.

A member active on several team repositories appears once, with their
heartbeat totals summed and their percentile rank recomputed over the
collapsed rows.

Examples:
  # Show the member rollup
  heartbeat member-summary events.json

  # Export to CSV
  heartbeat member-summary events.json --output csv --output-file members.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		results, _, _, err := runMetricsPipeline(cfg)
		if err != nil {
			contract.LogFatal("Cannot aggregate metrics", err)
		}
		rows := core.BuildMemberSummary(results)
		if err := outwriter.NewOutWriter().WriteMemberSummary(rows, cfg); err != nil {
			contract.LogFatal("Cannot write member summary", err)
		}
	},
}

// teamSummaryCmd rolls metrics up by team.
var teamSummaryCmd = &cobra.Command{
	Use:   "team-summary <events-file>",
	Short: "Roll metrics up by team, with member counts and team totals.",
	Long: `Collapse the per-member metrics into one row per team.

Each row carries the team's member count (inactive placeholders are not
counted) and the summed heartbeat total, re-ranked by percentile across
teams.

Examples:
  # Show the team rollup
  heartbeat team-summary events.json

  # Export to JSON
  heartbeat team-summary events.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		results, _, _, err := runMetricsPipeline(cfg)
		if err != nil {
			contract.LogFatal("Cannot aggregate metrics", err)
		}
		rows := core.BuildTeamSummary(results)
		if err := outwriter.NewOutWriter().WriteTeamSummary(rows, cfg); err != nil {
			contract.LogFatal("Cannot write team summary", err)
		}
	},
}
