package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.GBIF.APIURL
	if s != "" {
		res = append(res, OptGBIFAPIURL(s))
	}
	i = c.GBIF.PageSize
	if i > 0 {
		res = append(res, OptGBIFPageSize(i))
	}
	i = c.GBIF.MaxAttempts
	if i > 0 {
		res = append(res, OptGBIFMaxAttempts(i))
	}
	i = c.GBIF.RetryBaseSec
	if i > 0 {
		res = append(res, OptGBIFRetryBaseSec(i))
	}
	i = c.GBIF.PageDelayMs
	if i > 0 {
		res = append(res, OptGBIFPageDelayMs(i))
	}
	i = c.GBIF.TimeoutSec
	if i > 0 {
		res = append(res, OptGBIFTimeoutSec(i))
	}

	f := c.Analysis.MaxRelevantKm
	if f > 0 {
		res = append(res, OptAnalysisMaxRelevantKm(f))
	}
	i = c.Analysis.RecordCap
	if i > 0 {
		res = append(res, OptAnalysisRecordCap(i))
	}
	i = c.Analysis.CircleSegments
	if i > 0 {
		res = append(res, OptAnalysisCircleSegments(i))
	}

	s = c.Trait.APIURL
	if s != "" {
		res = append(res, OptTraitAPIURL(s))
	}
	i = c.Trait.TimeoutSec
	if i > 0 {
		res = append(res, OptTraitTimeoutSec(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %f", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
