package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/outwriter"
)

// metricsCmd aggregates the event feed into ranked per-member metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics <events-file>",
	Short: "Score and rank member activity from a GitHub event feed.",
	Long: `Aggregate a GitHub event feed extract into per-member activity metrics.

Every qualifying event is weighted by how much engagement it signals
(managing, developing, publishing) and tallied per member per team.
Members are then ranked by percentile across the whole Voyage, and teams
with no qualifying activity surface as inactive placeholder rows.

Examples:
  # Show the metrics table
  heartbeat metrics events.json

  # Exclude organizer accounts from scoring
  heartbeat metrics events.json --admins-file admins.json

  # Export the full per-event-type grid to CSV
  heartbeat metrics events.json --output csv --output-file heartbeat.csv

  # Track this run in a local SQLite database
  heartbeat metrics events.json --run-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		results, stats, duration, err := runMetricsPipeline(cfg)
		if err != nil {
			contract.LogFatal("Cannot aggregate metrics", err)
		}
		if err := outwriter.NewOutWriter().WriteMembers(results, stats, cfg, duration); err != nil {
			contract.LogFatal("Cannot write metrics output", err)
		}
	},
}
