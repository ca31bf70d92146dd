package core

import (
	"testing"

	"github.com/chingu-voyage/heartbeat/schema"
	"github.com/stretchr/testify/assert"
)

// TestClassify tests threshold band matching against the defaults.
func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		want    string
		matched bool
	}{
		{"green lower bound", 70, "Green", true},
		{"green upper bound", 100, "Green", true},
		{"yellow middle", 55, "Yellow", true},
		{"red lower bound", 0, "Red", true},
		{"red upper bound", 40, "Red", true},
		{"gap between red and yellow", 40.5, "", false},
		{"below all bands", -1, "", false},
		{"above all bands", 125, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := Classify(tt.score, schema.DefaultThresholds)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, label)
		})
	}
}

// TestClassifyOverlap tests that band order decides overlapping ranges.
func TestClassifyOverlap(t *testing.T) {
	bands := []schema.ThresholdBand{
		{Label: "First", Low: 0, High: 50},
		{Label: "Second", Low: 40, High: 100},
	}

	label, ok := Classify(45, bands)
	assert.True(t, ok)
	assert.Equal(t, "First", label)
}

// TestFindBand tests lookup by label.
func TestFindBand(t *testing.T) {
	band, ok := FindBand("Yellow", schema.DefaultThresholds)
	assert.True(t, ok)
	assert.Equal(t, 41.0, band.Low)
	assert.Equal(t, 69.0, band.High)

	_, ok = FindBand("Purple", schema.DefaultThresholds)
	assert.False(t, ok)
}
