package schema

import "time"

// DayFormat is the day-precision date layout used throughout output.
const DayFormat = "2006-01-02"

// DayOf truncates a timestamp to day precision in UTC. Activity dates are
// compared and rendered at day granularity only.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseEventDate parses a feed timestamp down to day precision. It accepts
// full ISO-8601 date-times and bare dates; the zero time and false are
// returned for anything else.
func ParseEventDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), true
	}
	if len(s) >= len(DayFormat) {
		if t, err := time.Parse(DayFormat, s[:len(DayFormat)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
