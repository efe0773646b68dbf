// Package config provides configuration management for gnoccur.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use GNOCCUR_ prefix with underscores for nesting:
//
//	GNOCCUR_GBIF_API_URL=https://api.gbif.org/v1
//	GNOCCUR_GBIF_PAGE_SIZE=300
//	GNOCCUR_ANALYSIS_MAX_RELEVANT_KM=500
//	GNOCCUR_LOG_LEVEL=info
package config

// Config represents the complete gnoccur configuration.
type Config struct {
	// GBIF contains occurrence search API settings.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// Analysis contains proximity analysis settings.
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Trait contains life-form lookup API settings.
	Trait TraitConfig `mapstructure:"trait" yaml:"trait"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GBIFConfig contains settings for the GBIF occurrence search API client.
type GBIFConfig struct {
	// APIURL is the base URL of the GBIF REST API.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// PageSize is the number of records requested per search call.
	// GBIF caps a single page at 300 records.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// MaxAttempts is the maximum number of tries for a single search call
	// when the failure is a transient connection problem. Non-transient
	// failures are never retried.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// RetryBaseSec is the first backoff delay in seconds. The delay
	// doubles after every failed attempt: 2, 4, 8, 16...
	RetryBaseSec int `mapstructure:"retry_base_sec" yaml:"retry_base_sec"`

	// PageDelayMs is the politeness pause between consecutive pages of a
	// bulk area search. It protects the source from hammering, it is not
	// required for correctness.
	PageDelayMs int `mapstructure:"page_delay_ms" yaml:"page_delay_ms"`

	// TimeoutSec is the HTTP timeout for a single search call.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// AnalysisConfig contains proximity analysis settings.
type AnalysisConfig struct {
	// MaxRelevantKm is the distance beyond which an occurrence no longer
	// contributes to the proximity score.
	MaxRelevantKm float64 `mapstructure:"max_relevant_km" yaml:"max_relevant_km"`

	// RecordCap is the maximum number of records accumulated by a bulk
	// area search before the pagination stops.
	RecordCap int `mapstructure:"record_cap" yaml:"record_cap"`

	// CircleSegments is the number of vertices used to approximate a
	// circular search area around the area centroid.
	CircleSegments int `mapstructure:"circle_segments" yaml:"circle_segments"`
}

// TraitConfig contains settings for the Flora e Funga do Brasil
// life-form lookup.
type TraitConfig struct {
	// APIURL is the base URL of the taxon profile service.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// TimeoutSec is the HTTP timeout for a single lookup.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		GBIF: GBIFConfig{
			APIURL:       "https://api.gbif.org/v1",
			PageSize:     300, // GBIF hard maximum per page
			MaxAttempts:  4,
			RetryBaseSec: 2,
			PageDelayMs:  200,
			TimeoutSec:   60,
		},
		Analysis: AnalysisConfig{
			MaxRelevantKm:  500,
			RecordCap:      5000,
			CircleSegments: 64,
		},
		Trait: TraitConfig{
			APIURL:     "https://servicos.jbrj.gov.br/v2/flora",
			TimeoutSec: 60,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
