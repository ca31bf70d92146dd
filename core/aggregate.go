package core

import (
	"strings"

	"github.com/chingu-voyage/heartbeat/schema"
)

// Aggregator converts a raw per-team event feed into a closed set of
// MemberResult rows. One Aggregator serves exactly one run: it owns its
// result collection during the accumulation pass, and nothing else writes
// to the collection afterwards except the ranker (PercentileRank only).
type Aggregator struct {
	taxonomy []schema.EventTypeDefinition
	admins   *AdminFilter

	results []*schema.MemberResult
	byKey   map[memberKey]*schema.MemberResult

	eventCount     int
	skippedUnknown int
}

type memberKey struct {
	team string
	name string
}

// NewAggregator returns an Aggregator over the given taxonomy and admin
// filter. Use a fresh Aggregator per run.
func NewAggregator(taxonomy []schema.EventTypeDefinition, admins *AdminFilter) *Aggregator {
	return &Aggregator{
		taxonomy: taxonomy,
		admins:   admins,
		byKey:    make(map[memberKey]*schema.MemberResult),
	}
}

// Aggregate walks the feed in order and returns the accumulated result
// set. Teams with zero qualifying non-admin events contribute one inactive
// placeholder row each.
func (a *Aggregator) Aggregate(feed schema.EventFeed) []*schema.MemberResult {
	for _, teamKey := range schema.SortedKeys(feed) {
		a.aggregateTeam(feed[teamKey])
	}
	return a.results
}

func (a *Aggregator) aggregateTeam(team schema.RawTeam) {
	teamName := NormalizeTeamName(TeamNameFromRepo(team.Repo))
	tierName := TierOf(teamName)
	isTeamActive := false

	for _, key := range schema.SortedKeys(team.Repo.Events) {
		event := team.Repo.Events[key]
		a.eventCount++

		eventIndex := LookupQualifyingEvent(a.taxonomy, event.Type)
		if eventIndex == schema.NotFound {
			// Unknown, deprecated and Passive types are excluded from
			// scoring, not errors. Unknown ones are tallied for the run
			// report.
			if !a.isKnownType(event.Type) {
				a.skippedUnknown++
			}
			continue
		}
		if a.admins.IsAdmin(event.Actor) {
			continue
		}

		activityDate, dateOK := schema.ParseEventDate(event.CreatedAt)
		if !dateOK {
			// The event still scores, but a malformed timestamp must not
			// produce a zero-time LastActivity.
			activityDate = schema.EpochDate
		}
		weight := int(a.taxonomy[eventIndex].Category)

		key := memberKey{team: teamName, name: event.Actor}
		member, ok := a.byKey[key]
		if !ok {
			member = &schema.MemberResult{
				Tier:         tierName,
				Team:         teamName,
				Name:         event.Actor,
				TeamActive:   true,
				LastActivity: activityDate,
				Counts:       make([]int, len(a.taxonomy)),
			}
			a.byKey[key] = member
			a.results = append(a.results, member)
		} else if activityDate.After(member.LastActivity) {
			member.LastActivity = activityDate
		}
		member.Counts[eventIndex] += weight
		member.TotalScore += weight
		isTeamActive = true
	}

	if !isTeamActive {
		a.results = append(a.results, &schema.MemberResult{
			Tier:         tierName,
			Team:         teamName,
			Name:         schema.InactiveName,
			TeamActive:   false,
			LastActivity: schema.EpochDate,
			Counts:       make([]int, len(a.taxonomy)),
		})
	}
}

// isKnownType reports whether the type name appears anywhere in the
// taxonomy, qualifying or not.
func (a *Aggregator) isKnownType(eventName string) bool {
	for _, def := range a.taxonomy {
		if def.EventName == eventName {
			return true
		}
	}
	return false
}

// EventCount returns the number of feed events seen by this run.
func (a *Aggregator) EventCount() int { return a.eventCount }

// SkippedUnknown returns how many events carried a type absent from the
// taxonomy. They are skipped silently during scoring; the tally exists so
// run reports can surface them.
func (a *Aggregator) SkippedUnknown() int { return a.skippedUnknown }

// TeamNameFromRepo picks the team name for a repository entry. The name
// parsed from html_url wins over the declared repo name when the two
// differ, which keeps renamed repositories grouped under their current
// name.
func TeamNameFromRepo(repo schema.RawRepo) string {
	if repo.HTMLURL != "" {
		trimmed := strings.TrimRight(repo.HTMLURL, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			if urlName := trimmed[idx+1:]; urlName != "" && urlName != repo.Name {
				return urlName
			}
		}
	}
	return repo.Name
}

// NormalizeTeamName zero-pads a trailing single-digit team number so that
// lexicographic sort order matches numeric order: "bears-9" becomes
// "bears-09" while "bears-19" is left alone. A name whose second-to-last
// rune is the separator is assumed to end in a single-digit team number.
func NormalizeTeamName(name string) string {
	if len(name) >= 2 && name[len(name)-2] == '-' {
		return name[:len(name)-1] + "0" + name[len(name)-1:]
	}
	return name
}

// TierOf returns the tier token: the portion of the team name before its
// first separator.
func TierOf(teamName string) string {
	return strings.SplitN(teamName, "-", 2)[0]
}
