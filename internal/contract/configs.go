package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/atlas/schema"
)

// Default values for configuration.
const (
	DefaultHistoryLimit   = 10
	MaxHistoryLimit       = 1000
	DefaultPrecision      = 1
	DefaultCheckThreshold = schema.HighThreshold
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	TeamID string
	Sprint string

	Save       bool // Persist analyze results
	Limit      int  // Max history rows
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// Threshold is the inclusive overall score at which check fails.
	Threshold int
	// MaxLevel optionally fails check when the level is above it.
	MaxLevel schema.RiskLevel

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Team           string `mapstructure:"team"`
	Sprint         string `mapstructure:"sprint"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Save bool `mapstructure:"save"`

	// --- Fields from historyCmd.Flags() ---
	Limit int `mapstructure:"limit"`

	// --- Fields from checkCmd.Flags() ---
	Threshold int    `mapstructure:"threshold"`
	MaxLevel  string `mapstructure:"max-level"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCheckInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// RequireTeamAndSprint returns an error unless both identifiers are set.
func (c *Config) RequireTeamAndSprint() error {
	if c.TeamID == "" {
		return fmt.Errorf("--team is required")
	}
	if c.Sprint == "" {
		return fmt.Errorf("--sprint is required")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
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

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates the identifier and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TeamID = strings.TrimSpace(input.Team)
	cfg.Sprint = strings.TrimSpace(input.Sprint)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Save = input.Save

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processCheckInputs validates the check gating parameters.
func processCheckInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Threshold < 0 || input.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100 (received %d)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	if input.MaxLevel == "" {
		cfg.MaxLevel = ""
		return nil
	}
	level := schema.RiskLevel(strings.ToUpper(strings.TrimSpace(input.MaxLevel)))
	if _, ok := schema.ValidRiskLevels[level]; !ok {
		return fmt.Errorf("invalid max level '%s'. must be low, moderate, high, critical", input.MaxLevel)
	}
	cfg.MaxLevel = level
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseTimestamp parses an RFC3339 timestamp, returning now when s is empty.
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	t, err := time.Parse(DateTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp '%s'. Expected RFC3339 like 2006-01-02T15:04:05Z: %w", s, err)
	}
	return t, nil
}
