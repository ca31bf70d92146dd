package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMemberSummaryResults outputs the per-member rollup, dispatching based on the output format configured.
func WriteMemberSummaryResults(rows []schema.MemberSummaryRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"Tier", "Team", "Name", "Heartbeat Total", "Percentile Rank"}
			return writeCSVWithBanner(w, cfg.ExtractionDate, header, func(csvWriter *csv.Writer) error {
				for _, row := range rows {
					rec := []string{
						row.Tier,
						row.Team,
						row.Name,
						strconv.Itoa(row.HeartbeatTotal),
						fmtFloat(row.PercentileRank),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMemberSummaryTable(rows, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// WriteTeamSummaryResults outputs the per-team rollup, dispatching based on the output format configured.
func WriteTeamSummaryResults(rows []schema.TeamSummaryRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"Tier", "Team", "No. Members", "Heartbeat Total", "Percentile Rank"}
			return writeCSVWithBanner(w, cfg.ExtractionDate, header, func(csvWriter *csv.Writer) error {
				for _, row := range rows {
					rec := []string{
						row.Tier,
						row.Team,
						strconv.Itoa(row.MemberCount),
						strconv.Itoa(row.HeartbeatTotal),
						fmtFloat(row.PercentileRank),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamSummaryTable(rows, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

func writeMemberSummaryTable(rows []schema.MemberSummaryRow, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Tier", "Team", "Name", "Heartbeat Total", "Percentile Rank", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, row := range rows {
		data = append(data, []string{
			row.Tier,
			row.Team,
			truncateName(row.Name, maxNameWidth),
			strconv.Itoa(row.HeartbeatTotal),
			fmtFloat(row.PercentileRank),
			summaryLabel(row.PercentileRank, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeTeamSummaryTable(rows []schema.TeamSummaryRow, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Tier", "Team", "No. Members", "Heartbeat Total", "Percentile Rank", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range rows {
		data = append(data, []string{
			row.Tier,
			row.Team,
			strconv.Itoa(row.MemberCount),
			strconv.Itoa(row.HeartbeatTotal),
			fmtFloat(row.PercentileRank),
			summaryLabel(row.PercentileRank, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func summaryLabel(rank float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(rank, cfg.Thresholds)
	}
	return contract.GetPlainLabel(rank, cfg.Thresholds)
}
