package contract

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/taxdeedflow/deedscore/schema"
)

// Default values for configuration.
const (
	DefaultBatchLimit = 500
	MaxBatchLimit     = 10000
	DefaultPrecision  = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for scoring runs.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile  string
	InputID    string // Single property id filter for the score command
	Output     schema.OutputMode
	OutputFile string
	Workers    int
	BatchLimit int
	Precision  int
	Detail     bool // Show per-component breakdowns
	Width      int  // Terminal width override (0 = auto-detect)

	MarketCondition         schema.MarketCondition
	SkipEdgeCases           bool
	SkipRegionalAdjustments bool
	SkipCalibration         bool
	IncludeFallbackLog      bool

	EdgeCases schema.EdgeCaseConfig

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // Please use env var as this is plaintext
	SaveToStore    bool

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Workers        int    `mapstructure:"workers"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from scoreCmd / batchCmd flags ---
	ID              string `mapstructure:"id"`
	MarketCondition string `mapstructure:"market-condition"`
	SkipEdgeCases   bool   `mapstructure:"skip-edge-cases"`
	SkipRegional    bool   `mapstructure:"skip-regional"`
	SkipCalibration bool   `mapstructure:"skip-calibration"`
	FallbackLog     bool   `mapstructure:"fallback-log"`
	Save            bool   `mapstructure:"save"`

	// --- Edge-case thresholds from config file ---
	EdgeCases schema.EdgeCaseConfig `mapstructure:"edge-cases"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CalculationOptions projects the config onto the engine's option set.
func (c *Config) CalculationOptions() schema.CalculationOptions {
	return schema.CalculationOptions{
		SkipEdgeCases:           c.SkipEdgeCases,
		SkipRegionalAdjustments: c.SkipRegionalAdjustments,
		SkipCalibration:         c.SkipCalibration,
		MarketCondition:         c.MarketCondition,
		IncludeFallbackLog:      c.IncludeFallbackLog,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScoringOptions(cfg, input); err != nil {
		return err
	}
	if err := processEdgeCaseThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveInputFile(cfg, input); err != nil {
		return err
	}
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

// ValidateStoreConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
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

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.InputID = strings.TrimSpace(input.ID)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. BatchLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxBatchLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxBatchLimit, input.Limit)
	}
	cfg.BatchLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}
	cfg.SaveToStore = input.Save
	if cfg.SaveToStore && cfg.StoreBackend == schema.NoneBackend {
		return fmt.Errorf("--save requires a store backend other than none")
	}

	return nil
}

// processScoringOptions handles the optional pipeline-stage flags.
func processScoringOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.SkipEdgeCases = input.SkipEdgeCases
	cfg.SkipRegionalAdjustments = input.SkipRegional
	cfg.SkipCalibration = input.SkipCalibration
	cfg.IncludeFallbackLog = input.FallbackLog

	cond := schema.MarketCondition(strings.ToLower(strings.TrimSpace(input.MarketCondition)))
	if cond == "" {
		cond = schema.StableMarket
	}
	if _, ok := schema.ValidMarketConditions[cond]; !ok {
		return fmt.Errorf("invalid market condition '%s'. must be hot, stable, cooling, declining, distressed", input.MarketCondition)
	}
	cfg.MarketCondition = cond
	return nil
}

// processEdgeCaseThresholds merges config-file threshold overrides onto the
// documented defaults. Zero values mean "not set" and keep the default.
func processEdgeCaseThresholds(cfg *Config, input *ConfigRawInput) error {
	ec := schema.DefaultEdgeCaseConfig()
	in := input.EdgeCases

	if in.VeryOldPropertyYear != 0 {
		if in.VeryOldPropertyYear < 1600 || in.VeryOldPropertyYear > time.Now().Year() {
			return fmt.Errorf("very-old-property-year %d is outside the plausible range", in.VeryOldPropertyYear)
		}
		ec.VeryOldPropertyYear = in.VeryOldPropertyYear
	}
	if in.HighValueThreshold != 0 {
		if in.HighValueThreshold < 0 {
			return fmt.Errorf("high-value-threshold cannot be negative")
		}
		ec.HighValueThreshold = in.HighValueThreshold
	}
	if in.ExtremelyLowValueThreshold != 0 {
		ec.ExtremelyLowValueThreshold = in.ExtremelyLowValueThreshold
	}
	if in.VerySmallLotSqft != 0 {
		ec.VerySmallLotSqft = in.VerySmallLotSqft
	}
	if in.SliverLotMinWidthFt != 0 {
		ec.SliverLotMinWidthFt = in.SliverLotMinWidthFt
	}
	if in.DecliningMarketThreshold != 0 {
		ec.DecliningMarketThreshold = in.DecliningMarketThreshold
	}
	if in.HighCompetitionDOM != 0 {
		ec.HighCompetitionDOM = in.HighCompetitionDOM
	}
	if in.HighCompetitionAbsorption != 0 {
		ec.HighCompetitionAbsorption = in.HighCompetitionAbsorption
	}

	if ec.ExtremelyLowValueThreshold >= ec.HighValueThreshold {
		return fmt.Errorf("extremely-low-value-threshold (%.0f) must be below high-value-threshold (%.0f)",
			ec.ExtremelyLowValueThreshold, ec.HighValueThreshold)
	}

	cfg.EdgeCases = ec
	return nil
}

// resolveInputFile validates the positional input path. Commands that read
// from stdin pass "-" through untouched.
func resolveInputFile(cfg *Config, input *ConfigRawInput) error {
	path := strings.TrimSpace(input.InputFileStr)
	if path == "" || path == "-" {
		cfg.InputFile = path
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read input file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %q is a directory, expected a file", path)
	}
	cfg.InputFile = path
	return nil
}
