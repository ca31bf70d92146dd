// Package main provides a performance benchmarking tool for the Heartbeat CLI.
// It generates synthetic event feeds of increasing size, measures execution
// times across command types, running each test multiple times and treating
// the first run as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - heartbeat binary installed and available in PATH
//
// Usage: go run benchmark/main.go [output-dir]
//
//	output-dir: Directory for generated feeds and the results CSV
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Feed     string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	OutputDir string
	Timeout   time.Duration
	Runs      int
	FeedSizes map[string]int // feed name -> team count
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [output-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		OutputDir: os.Args[1],
		Timeout:   2 * time.Minute,
		Runs:      4,
		FeedSizes: map[string]int{
			"small":  10,
			"medium": 100,
			"large":  1000,
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	feeds, err := generateFeeds(config)
	if err != nil {
		fmt.Printf("Feed generation failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, feeds)

	if err := writeResults(config, results); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

// checkPrerequisites verifies the heartbeat binary is available.
func checkPrerequisites() error {
	if _, err := exec.LookPath("heartbeat"); err != nil {
		return fmt.Errorf("heartbeat binary not found in PATH: %w", err)
	}
	return nil
}

// generateFeeds writes one synthetic feed file per configured size and
// returns feed name -> path.
func generateFeeds(config BenchmarkConfig) (map[string]string, error) {
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return nil, err
	}

	eventTypes := []string{"PushEvent", "IssuesEvent", "PullRequestEvent", "WatchEvent", "CreateEvent"}
	feeds := make(map[string]string)

	for name, teamCount := range config.FeedSizes {
		feed := make(map[string]any, teamCount)
		for i := range teamCount {
			teamName := fmt.Sprintf("bears-%d", i+1)
			events := make(map[string]any)
			for j := range 20 {
				events[fmt.Sprintf("%d", j)] = map[string]string{
					"actor":      fmt.Sprintf("member-%d", j%4),
					"type":       eventTypes[j%len(eventTypes)],
					"created_at": time.Now().AddDate(0, 0, -j).UTC().Format(time.RFC3339),
				}
			}
			feed[fmt.Sprintf("%d", i)] = map[string]any{
				"repo": map[string]any{
					"name":     teamName,
					"html_url": "https://github.com/chingu-voyage/" + teamName,
					"events":   events,
				},
			}
		}

		data, err := json.Marshal(feed)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(config.OutputDir, fmt.Sprintf("events-%s.json", name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		feeds[name] = path
		fmt.Printf("Generated %s feed with %d teams: %s\n", name, teamCount, path)
	}

	return feeds, nil
}

// runBenchmarks measures each command against each feed.
func runBenchmarks(config BenchmarkConfig, feeds map[string]string) []BenchmarkResult {
	commands := map[string][]string{
		"metrics":        {"metrics"},
		"member-summary": {"member-summary"},
		"team-summary":   {"team-summary"},
	}

	var results []BenchmarkResult
	for feedName, feedPath := range feeds {
		for cmdName, cmdArgs := range commands {
			fmt.Printf("Benchmarking %s on %s feed...\n", cmdName, feedName)

			var cold time.Duration
			var warmTotal time.Duration
			warmCount := 0

			for run := range config.Runs {
				args := append(append([]string{}, cmdArgs...), feedPath, "--output", "csv", "--output-file", os.DevNull)
				elapsed, err := timeCommand(config.Timeout, args)
				if err != nil {
					fmt.Printf("Run failed: %v\n", err)
					continue
				}
				if run == 0 {
					cold = elapsed
				} else {
					warmTotal += elapsed
					warmCount++
				}
			}

			warm := time.Duration(0)
			if warmCount > 0 {
				warm = warmTotal / time.Duration(warmCount)
			}
			results = append(results, BenchmarkResult{
				Feed:     feedName,
				Command:  cmdName,
				ColdTime: cold.String(),
				WarmTime: warm.String(),
			})
		}
	}
	return results
}

// timeCommand runs one heartbeat invocation and returns its wall time.
func timeCommand(timeout time.Duration, args []string) (time.Duration, error) {
	cmd := exec.Command("heartbeat", args...)
	start := time.Now()
	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return time.Since(start), err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return 0, fmt.Errorf("timed out after %s", timeout)
	}
}

// writeResults emits the benchmark table as CSV.
func writeResults(config BenchmarkConfig, results []BenchmarkResult) error {
	path := filepath.Join(config.OutputDir, "benchmark-results.csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Feed", "Command", "Cold", "Warm"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Feed, r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}

	fmt.Printf("Results written to %s\n", path)
	return nil
}
