package contract

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chingu-voyage/heartbeat/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = 2
	DefaultSheetTitle = "Voyage Heartbeat"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an aggregation run.
// This struct remains the "final, validated" config.
type Config struct {
	EventsFile string
	AdminsFile string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// ExtractionDate stamps CSV output and the spreadsheet title. Zero
	// means "now" at render time.
	ExtractionDate time.Time

	// Thresholds are matched first-wins, so order matters.
	Thresholds []schema.ThresholdBand

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	SheetTitle       string
	SheetEndpoint    string
	ClientSecretFile string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	EventsFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	AdminsFile     string `mapstructure:"admins-file"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	ExtractionDate string `mapstructure:"extraction-date"`
	RunBackend     string `mapstructure:"run-backend"`
	RunDBConnect   string `mapstructure:"run-db-connect"`

	// --- Fields from sheetCmd.Flags() ---
	SheetTitle       string `mapstructure:"sheet-title"`
	SheetEndpoint    string `mapstructure:"sheet-endpoint"`
	ClientSecretFile string `mapstructure:"client-secret"`

	// --- Threshold bands from config file ---
	Thresholds []schema.ThresholdBand `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Thresholds != nil {
		clone.Thresholds = make([]schema.ThresholdBand, len(c.Thresholds))
		copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := ProcessAndValidateBase(cfg, input); err != nil {
		return err
	}
	return resolveInputFiles(cfg, input)
}

// ProcessAndValidateBase runs all validation except input file resolution.
// Server modes use this: their tools receive file paths per call.
func ProcessAndValidateBase(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processExtractionDate(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SheetTitle = input.SheetTitle
	if cfg.SheetTitle == "" {
		cfg.SheetTitle = DefaultSheetTitle
	}
	cfg.SheetEndpoint = input.SheetEndpoint
	cfg.ClientSecretFile = input.ClientSecretFile

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// processExtractionDate parses the optional extraction date stamp.
func processExtractionDate(cfg *Config, input *ConfigRawInput) error {
	if input.ExtractionDate == "" {
		cfg.ExtractionDate = time.Time{}
		return nil
	}
	t, err := time.Parse(schema.DayFormat, input.ExtractionDate)
	if err != nil {
		t, err = time.Parse(DateTimeFormat, input.ExtractionDate)
	}
	if err != nil {
		return fmt.Errorf("invalid extraction date '%s'. Expected %s or ISO8601", input.ExtractionDate, schema.DayFormat)
	}
	cfg.ExtractionDate = t
	return nil
}

// processThresholds validates the configured bands, falling back to the
// defaults when the config file declares none.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	if len(input.Thresholds) == 0 {
		cfg.Thresholds = make([]schema.ThresholdBand, len(schema.DefaultThresholds))
		copy(cfg.Thresholds, schema.DefaultThresholds)
		return nil
	}

	seen := make(map[string]struct{})
	for _, band := range input.Thresholds {
		if band.Label == "" {
			return fmt.Errorf("threshold band is missing a label")
		}
		if _, dup := seen[band.Label]; dup {
			return fmt.Errorf("duplicate threshold band '%s'", band.Label)
		}
		seen[band.Label] = struct{}{}
		if band.Low > band.High {
			return fmt.Errorf("threshold band '%s' has low %.2f above high %.2f", band.Label, band.Low, band.High)
		}
		for _, channel := range []float64{band.Color.Red, band.Color.Green, band.Color.Blue, band.Color.Alpha} {
			if channel < 0.0 || channel > 1.0 {
				return fmt.Errorf("threshold band '%s' has a color channel outside [0, 1]", band.Label)
			}
		}
	}
	cfg.Thresholds = input.Thresholds
	return nil
}

// validateBackendConfig validates the run store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidRunBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// resolveInputFiles checks that the event feed exists and that the admin
// list, when given, exists too.
func resolveInputFiles(cfg *Config, input *ConfigRawInput) error {
	if input.EventsFileStr == "" {
		return fmt.Errorf("an event feed file is required")
	}
	if _, err := os.Stat(input.EventsFileStr); err != nil {
		return fmt.Errorf("cannot read event feed %s: %w", input.EventsFileStr, err)
	}
	cfg.EventsFile = input.EventsFileStr

	cfg.AdminsFile = input.AdminsFile
	if cfg.AdminsFile != "" {
		if _, err := os.Stat(cfg.AdminsFile); err != nil {
			return fmt.Errorf("cannot read admin list %s: %w", cfg.AdminsFile, err)
		}
	}
	return nil
}
