package core

import (
	"testing"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/stretchr/testify/assert"
)

// TestLookupQualifyingEvent tests the scoring eligibility rules.
func TestLookupQualifyingEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		want      int
	}{
		{"qualifying publishing event", "PushEvent", 30},
		{"qualifying managing event", "CommitCommentEvent", 0},
		{"passive event excluded", "ForkEvent", schema.NotFound},
		{"deprecated event excluded", "DownloadEvent", schema.NotFound},
		{"unknown event excluded", "TotallyMadeUpEvent", schema.NotFound},
		{"empty name excluded", "", schema.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupQualifyingEvent(GHEvents, tt.eventName))
		})
	}
}

// TestGHEventsTable sanity-checks the taxonomy table itself.
func TestGHEventsTable(t *testing.T) {
	assert.Len(t, GHEvents, 37)

	seen := make(map[string]struct{})
	for _, def := range GHEvents {
		_, dup := seen[def.EventName]
		assert.False(t, dup, "duplicate event name %s", def.EventName)
		seen[def.EventName] = struct{}{}

		if def.Deprecated {
			assert.Empty(t, def.Title, "deprecated %s should carry no title", def.EventName)
			assert.Equal(t, schema.ActivityPassive, def.Category)
		}
	}
}

// TestResultHeadings tests the rendered column layout.
func TestResultHeadings(t *testing.T) {
	headings := ResultHeadings(GHEvents)

	assert.Len(t, headings, 5+len(GHEvents)+2)
	assert.Equal(t, []string{"Tier", "Team", "Name", "Team Active", "Last Actor Activity"}, headings[:5])
	assert.Equal(t, "Total Score", headings[len(headings)-2])
	assert.Equal(t, "Percentile Rank", headings[len(headings)-1])
	assert.Equal(t, "Commit Comment", headings[5])
}
