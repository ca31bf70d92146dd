// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/chingu-voyage/heartbeat/schema"
)

// RunStore defines the interface for tracking aggregation runs and storing
// ranked member scores. This allows the storage layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data
	EndRun(runID int64, endTime time.Time, stats schema.RunRecord) error

	// RecordMemberScore stores one ranked member result for a run
	RecordMemberScore(runID int64, result *schema.MemberResult) error

	// GetRuns returns all recorded runs, newest first
	GetRuns() ([]schema.RunRecord, error)

	// GetMemberScores returns the stored member scores for a run
	GetMemberScores(runID int64) ([]schema.MemberScoreRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// Clear removes all stored runs and member scores
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// StoreManager defines the interface for managing the run store.
type StoreManager interface {
	GetRunStore() RunStore
}

// SheetSink defines the interface for publishing a spreadsheet payload.
// This allows the push step to be tested without a live spreadsheet service.
type SheetSink interface {
	// Publish sends the assembled payload and returns the URL of the
	// created spreadsheet.
	Publish(ctx context.Context, token string, payload []byte) (string, error)
}

// Authorizer defines the interface for obtaining an access token for the
// spreadsheet service.
type Authorizer interface {
	Token(ctx context.Context) (string, error)
}
