// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteMembers prints ranked member results using the configured output format.
func (ow *OutWriter) WriteMembers(results []*schema.MemberResult, stats core.RunStats, cfg *contract.Config, duration time.Duration) error {
	return WriteMemberResults(results, stats, cfg, duration)
}

// WriteMemberSummary prints the per-member rollup using the configured output format.
func (ow *OutWriter) WriteMemberSummary(rows []schema.MemberSummaryRow, cfg *contract.Config) error {
	return WriteMemberSummaryResults(rows, cfg)
}

// WriteTeamSummary prints the per-team rollup using the configured output format.
func (ow *OutWriter) WriteTeamSummary(rows []schema.TeamSummaryRow, cfg *contract.Config) error {
	return WriteTeamSummaryResults(rows, cfg)
}
