package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/sheet"
)

// sheetCmd publishes the metrics to a spreadsheet.
var sheetCmd = &cobra.Command{
	Use:   "sheet <events-file>",
	Short: "Publish the metrics as a formatted spreadsheet.",
	Long: `Aggregate the event feed and publish the results as a spreadsheet.

The created spreadsheet has two tabs: the full per-member grid with one
column per event type, and a team summary with tier rollup formulas.
Rank columns are color-coded through conditional format rules built from
the configured threshold bands.

Requires: --sheet-endpoint and --client-secret

Examples:
  # Publish with the default title
  heartbeat sheet events.json --sheet-endpoint https://sheets.example.com/v4/spreadsheets --client-secret credentials.json

  # Publish under a custom title
  heartbeat sheet events.json --sheet-title "Voyage 4 Heartbeat" --sheet-endpoint https://sheets.example.com/v4/spreadsheets --client-secret credentials.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		results, _, _, err := runMetricsPipeline(cfg)
		if err != nil {
			contract.LogFatal("Cannot aggregate metrics", err)
		}

		payload, err := sheet.BuildHeartbeatPayload(cfg, results)
		if err != nil {
			contract.LogFatal("Cannot build spreadsheet payload", err)
		}

		token, err := sheet.NewFileAuthorizer(cfg.ClientSecretFile).Token(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot authorize spreadsheet access", err)
		}

		url, err := sheet.NewHTTPSheetSink(cfg.SheetEndpoint).Publish(rootCtx, token, payload)
		if err != nil {
			contract.LogFatal("Cannot publish spreadsheet", err)
		}
		fmt.Printf("Spreadsheet created: %s\n", url)
	},
}
