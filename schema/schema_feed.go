package schema

import (
	"sort"
	"strconv"
)

// RawEvent is one repository activity event from the input dump. Read-only.
type RawEvent struct {
	Actor     string `json:"actor"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"` // ISO-8601 date-time
}

// RawRepo carries the repository identity and its event set.
type RawRepo struct {
	Name    string              `json:"name"`
	HTMLURL string              `json:"html_url,omitempty"`
	Events  map[string]RawEvent `json:"events"`
}

// RawTeam is one team entry of the event dump.
type RawTeam struct {
	Repo RawRepo `json:"repo"`
}

// EventFeed is the full input dump, keyed by an arbitrary (usually numeric)
// team index.
type EventFeed map[string]RawTeam

// SortedKeys returns map keys ordered numerically where possible, falling
// back to lexicographic order. The source format keys both teams and
// events with numeric strings whose insertion order is meaningful; Go maps
// drop that order, so every walk over the feed goes through here.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		if aErr == nil && bErr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
