package cmd

import (
	"encoding/json"
	"time"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/feed"
	"github.com/chingu-voyage/heartbeat/internal/runstore"
	"github.com/chingu-voyage/heartbeat/schema"
)

// runMetricsPipeline loads the configured inputs, runs the aggregation and
// records the run. Run tracking failures are warnings, not errors; the
// metrics themselves still come back.
func runMetricsPipeline(cfg *contract.Config) ([]*schema.MemberResult, core.RunStats, time.Duration, error) {
	eventFeed, err := feed.LoadEventFeed(cfg.EventsFile)
	if err != nil {
		return nil, core.RunStats{}, 0, err
	}
	admins, err := feed.LoadAdminList(cfg.AdminsFile)
	if err != nil {
		return nil, core.RunStats{}, 0, err
	}

	startTime := time.Now()
	store := runstore.Manager.GetRunStore()

	var runID int64
	if store != nil {
		runID, err = store.BeginRun(startTime, runConfigParams(cfg))
		if err != nil {
			contract.LogWarn("Cannot begin run tracking", err)
			store = nil
		}
	}

	results, stats := core.RunMetrics(eventFeed, admins)
	duration := time.Since(startTime)

	if store != nil {
		for _, result := range results {
			if err := store.RecordMemberScore(runID, result); err != nil {
				contract.LogWarn("Cannot record member score", err)
				break
			}
		}
		record := schema.RunRecord{
			TeamCount:      stats.TeamCount,
			MemberCount:    stats.MemberCount,
			EventCount:     stats.EventCount,
			SkippedUnknown: stats.SkippedUnknown,
			TaxonomySize:   stats.TaxonomySize,
		}
		if err := store.EndRun(runID, startTime.Add(duration), record); err != nil {
			contract.LogWarn("Cannot end run tracking", err)
		}
	}

	return results, stats, duration, nil
}

// runConfigParams captures the parameters worth replaying when reviewing a
// stored run.
func runConfigParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"events-file": cfg.EventsFile,
		"output":      string(cfg.Output),
		"precision":   cfg.Precision,
	}
	if cfg.AdminsFile != "" {
		params["admins-file"] = cfg.AdminsFile
	}
	if !cfg.ExtractionDate.IsZero() {
		params["extraction-date"] = cfg.ExtractionDate.Format(schema.DayFormat)
	}
	if data, err := json.Marshal(cfg.Thresholds); err == nil {
		params["thresholds"] = string(data)
	}
	return params
}
