package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGBIFAPIURL sets the base URL of the GBIF REST API.
func OptGBIFAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("GBIF API URL", s) {
			c.GBIF.APIURL = s
		}
	}
}

// OptGBIFPageSize sets the number of records per search page.
// GBIF rejects pages larger than 300, so bigger values are capped.
func OptGBIFPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Page Size", i) {
			if i > 300 {
				i = 300
			}
			c.GBIF.PageSize = i
		}
	}
}

// OptGBIFMaxAttempts sets the maximum number of tries for one search call.
func OptGBIFMaxAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Max Attempts", i) {
			c.GBIF.MaxAttempts = i
		}
	}
}

// OptGBIFRetryBaseSec sets the first backoff delay in seconds.
func OptGBIFRetryBaseSec(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Retry Base Delay", i) {
			c.GBIF.RetryBaseSec = i
		}
	}
}

// OptGBIFPageDelayMs sets the politeness pause between bulk search pages.
func OptGBIFPageDelayMs(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Page Delay", i) {
			c.GBIF.PageDelayMs = i
		}
	}
}

// OptGBIFTimeoutSec sets the HTTP timeout for a single search call.
func OptGBIFTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Timeout", i) {
			c.GBIF.TimeoutSec = i
		}
	}
}

// OptAnalysisMaxRelevantKm sets the distance beyond which occurrences
// stop contributing to the proximity score.
func OptAnalysisMaxRelevantKm(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Max Relevant Distance", f) {
			c.Analysis.MaxRelevantKm = f
		}
	}
}

// OptAnalysisRecordCap sets the maximum number of records accumulated by
// a bulk area search.
func OptAnalysisRecordCap(i int) Option {
	return func(c *Config) {
		if isValidInt("Record Cap", i) {
			c.Analysis.RecordCap = i
		}
	}
}

// OptAnalysisCircleSegments sets the number of vertices used for circular
// search areas.
func OptAnalysisCircleSegments(i int) Option {
	return func(c *Config) {
		if isValidInt("Circle Segments", i) {
			c.Analysis.CircleSegments = i
		}
	}
}

// OptTraitAPIURL sets the base URL of the taxon profile service.
func OptTraitAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("Trait API URL", s) {
			c.Trait.APIURL = s
		}
	}
}

// OptTraitTimeoutSec sets the HTTP timeout for a single trait lookup.
func OptTraitTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Trait Timeout", i) {
			c.Trait.TimeoutSec = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
