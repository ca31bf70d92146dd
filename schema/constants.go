package schema

import "time"

// Custom types for type safety.
type (
	// ActivityCategory classifies a taxonomy entry and doubles as the
	// integer weight added to a score when the event qualifies.
	ActivityCategory int

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// Activity categories, in ascending weight order.
const (
	ActivityPassive    ActivityCategory = 0 // Activities performed for the member
	ActivityManaging   ActivityCategory = 1 // Activities performed to manage the repo
	ActivityDeveloping ActivityCategory = 2 // Activities directly related to active development
	ActivityPublishing ActivityCategory = 3 // Activities performed to publish an app
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// NotFound signals a failed taxonomy or threshold lookup by index.
const NotFound = -1

// InactiveName is the placeholder member name for a team with zero
// qualifying events.
const InactiveName = "*** inactive ***"

// EpochDate is the last-activity sentinel for inactive placeholders. It
// sorts below any real activity date.
var EpochDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRunBackends lists all valid run-store backends.
var ValidRunBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultThresholds is the stock Green/Yellow/Red band configuration used
// when the config file does not override thresholds. Ranges were tuned
// against the percentile-rank formula.
var DefaultThresholds = []ThresholdBand{
	{Label: "Green", Low: 70, High: 100, Color: BandColor{Red: 0.2, Green: 0.66, Blue: 0.33, Alpha: 1}},
	{Label: "Yellow", Low: 41, High: 69, Color: BandColor{Red: 1, Green: 0.84, Blue: 0.2, Alpha: 1}},
	{Label: "Red", Low: 0, High: 40, Color: BandColor{Red: 0.86, Green: 0.2, Blue: 0.15, Alpha: 1}},
}
