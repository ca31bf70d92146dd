package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/schema"
)

// UnrankedValue labels a score that falls outside every threshold band,
// including the first-place rank that lands just above 100.
const UnrankedValue = "Unranked"

// Color variables for console output.
var (
	GreenColor    = color.New(color.FgGreen, color.Bold)  // healthy teams and members
	YellowColor   = color.New(color.FgYellow)             // needs attention, not bold
	RedColor      = color.New(color.FgRed, color.Bold)    // at-risk signal
	UnrankedColor = color.New(color.FgCyan)               // outside every band
	BandColors    = map[string]*color.Color{"Green": GreenColor, "Yellow": YellowColor, "Red": RedColor}
)

// GetPlainLabel returns the plain text band label for a percentile rank.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64, bands []schema.ThresholdBand) string {
	label, ok := core.Classify(score, bands)
	if !ok {
		return UnrankedValue
	}
	return label
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color. Bands without a registered color render plain.
func GetColorLabel(score float64, bands []schema.ThresholdBand) string {
	text := GetPlainLabel(score, bands)
	if text == UnrankedValue {
		return UnrankedColor.Sprint(text)
	}
	if c, ok := BandColors[text]; ok {
		return c.Sprint(text)
	}
	return text
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".heartbeat_runs.db"
	}
	return filepath.Join(homeDir, ".heartbeat_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
