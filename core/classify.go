package core

import "github.com/chingu-voyage/heartbeat/schema"

// Classify returns the label of the first band whose inclusive [Low, High]
// range contains score. Band order determines precedence when ranges
// overlap; no disjointness check exists. A miss returns ("", false), and
// callers that require a specific band to exist escalate the miss
// themselves (see FindBand).
func Classify(score float64, bands []schema.ThresholdBand) (string, bool) {
	for _, band := range bands {
		if score >= band.Low && score <= band.High {
			return band.Label, true
		}
	}
	return "", false
}

// FindBand returns the band with the given label, or false when absent.
func FindBand(label string, bands []schema.ThresholdBand) (schema.ThresholdBand, bool) {
	for _, band := range bands {
		if band.Label == label {
			return band, true
		}
	}
	return schema.ThresholdBand{}, false
}
