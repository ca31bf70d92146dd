package runstore

import (
	"errors"
	"fmt"

	"github.com/chingu-voyage/heartbeat/internal/parquet"
	"github.com/chingu-voyage/heartbeat/schema"
)

// ExecuteRunExport performs the actual export of run data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total metrics runs: %d\n", status.TotalRuns)
	fmt.Printf("Total member score records: %d\n", status.TableSizes[memberScoresTable])

	// Retrieve all runs
	runs, err := store.GetRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve member scores across all runs
	var scores []schema.MemberScoreRecord
	for _, run := range runs {
		runScores, err := store.GetMemberScores(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve member scores for run %d: %w", run.RunID, err)
		}
		scores = append(scores, runScores...)
	}

	// Convert to Parquet format
	parquetRuns := parquet.FromRunRecords(runs)
	parquetScores := parquet.FromMemberScoreRecords(scores)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write member scores to Parquet
	scoresFile := outputFile + ".member_scores.parquet"
	if err := parquet.WriteMemberScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write member scores: %w", err)
	}
	fmt.Printf("Exported %d member score records to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
