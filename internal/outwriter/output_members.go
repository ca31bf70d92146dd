package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/parquet"
	"github.com/chingu-voyage/heartbeat/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMemberResults outputs ranked member results, dispatching based on the output format configured.
func WriteMemberResults(results []*schema.MemberResult, stats core.RunStats, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForMembers(w, results, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForMembers(w, results, cfg, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteMemberScores(w, results)
		}, "Wrote Parquet")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMemberTable(results, stats, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeMemberTable generates and writes the human-readable table. Unlike
// the CSV layout it collapses the per-event columns into the total, which
// keeps the table usable on a terminal.
func writeMemberTable(results []*schema.MemberResult, stats core.RunStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Tier", "Team", "Name", "Active", "Last Activity", "Total Score", "Percentile Rank", "Label"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := getMaxTableNameWidth(cfg)
	label := func(rank float64) string {
		if cfg.UseColors {
			return contract.GetColorLabel(rank, cfg.Thresholds)
		}
		return contract.GetPlainLabel(rank, cfg.Thresholds)
	}

	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			r.Tier,
			r.Team,
			truncateName(r.Name, maxNameWidth),
			strconv.FormatBool(r.TeamActive),
			r.LastActivity.Format(schema.DayFormat),
			strconv.Itoa(r.TotalScore),
			fmtFloat(r.PercentileRank),
			label(r.PercentileRank),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d rows across %d teams (%d members, %d events, %d unknown types skipped)\n",
		len(results), stats.TeamCount, stats.MemberCount, stats.EventCount, stats.SkippedUnknown); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Aggregation completed in %v. Run backend: %s\n", duration, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForMembers writes the full result grid in CSV format,
// one column per taxonomy entry, preceded by the extraction date banner.
func writeCSVResultsForMembers(w io.Writer, results []*schema.MemberResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := core.ResultHeadings(core.GHEvents)
	return writeCSVWithBanner(w, cfg.ExtractionDate, header, func(csvWriter *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				r.Tier,
				r.Team,
				r.Name,
				strconv.FormatBool(r.TeamActive),
				r.LastActivity.Format(schema.DayFormat),
			}
			for _, count := range r.Counts {
				rec = append(rec, fmt.Sprintf(intFmt, count))
			}
			rec = append(rec,
				strconv.Itoa(r.TotalScore),
				fmtFloat(r.PercentileRank),
			)
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForMembers writes the results in JSON format with the
// band label added per row.
func writeJSONResultsForMembers(w io.Writer, results []*schema.MemberResult, cfg *contract.Config) error {
	type JSONMemberResult struct {
		Label string `json:"label"`
		*schema.MemberResult
	}

	output := make([]JSONMemberResult, len(results))
	for i, r := range results {
		output[i] = JSONMemberResult{
			Label:        contract.GetPlainLabel(r.PercentileRank, cfg.Thresholds),
			MemberResult: r,
		}
	}

	return writeJSON(w, output)
}
