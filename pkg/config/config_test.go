package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gnoccur/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnoccur"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gnoccur"),
		},
		{
			msg: "trait cache dir",
			fn:  config.TraitCacheDir,
			res: filepath.Join(tempHome, ".cache", "gnoccur", "traits"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnoccur", "logs"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// GBIF defaults
		assert.Equal(t, "https://api.gbif.org/v1", cfg.GBIF.APIURL)
		assert.Equal(t, 300, cfg.GBIF.PageSize)
		assert.Equal(t, 4, cfg.GBIF.MaxAttempts)
		assert.Equal(t, 2, cfg.GBIF.RetryBaseSec)
		assert.Equal(t, 200, cfg.GBIF.PageDelayMs)

		// Analysis defaults
		assert.Equal(t, 500.0, cfg.Analysis.MaxRelevantKm)
		assert.Equal(t, 5000, cfg.Analysis.RecordCap)
		assert.Equal(t, 64, cfg.Analysis.CircleSegments)

		// Trait defaults
		assert.Equal(
			t, "https://servicos.jbrj.gov.br/v2/flora", cfg.Trait.APIURL,
		)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionGBIFAPIURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid url",
			input:    "https://gbif.example.org/v1",
			expected: "https://gbif.example.org/v1",
		},
		{
			name:     "trims trailing slash",
			input:    "https://gbif.example.org/v1/",
			expected: "https://gbif.example.org/v1",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "https://api.gbif.org/v1",
		},
		{
			name:     "ignores whitespace only",
			input:    "   ",
			expected: "https://api.gbif.org/v1",
		},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptGBIFAPIURL(v.input)})
			assert.Equal(t, v.expected, cfg.GBIF.APIURL)
		})
	}
}

func TestOptionGBIFPageSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "sets valid size", input: 100, expected: 100},
		{name: "caps at source maximum", input: 1000, expected: 300},
		{name: "ignores zero", input: 0, expected: 300},
		{name: "ignores negative", input: -5, expected: 300},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptGBIFPageSize(v.input)})
			assert.Equal(t, v.expected, cfg.GBIF.PageSize)
		})
	}
}

func TestOptionAnalysisMaxRelevantKm(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "sets valid distance", input: 250, expected: 250},
		{name: "ignores zero", input: 0, expected: 500},
		{name: "ignores negative", input: -10, expected: 500},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update(
				[]config.Option{config.OptAnalysisMaxRelevantKm(v.input)},
			)
			assert.Equal(t, v.expected, cfg.Analysis.MaxRelevantKm)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets valid level", input: "debug", expected: "debug"},
		{name: "rejects unknown level", input: "loud", expected: "info"},
		{name: "ignores empty", input: "", expected: "info"},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(v.input)})
			assert.Equal(t, v.expected, cfg.Log.Level)
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptGBIFAPIURL("https://gbif.example.org/v1"),
		config.OptGBIFPageSize(150),
		config.OptGBIFMaxAttempts(2),
		config.OptAnalysisMaxRelevantKm(123.5),
		config.OptAnalysisRecordCap(777),
		config.OptTraitTimeoutSec(30),
		config.OptLogLevel("warn"),
	})

	restored := config.New()
	restored.Update(orig.ToOptions())

	assert.Equal(t, orig.GBIF, restored.GBIF)
	assert.Equal(t, orig.Analysis, restored.Analysis)
	assert.Equal(t, orig.Trait, restored.Trait)
	assert.Equal(t, orig.Log, restored.Log)
}

func TestHomeDirNotPersistent(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{config.OptHomeDir("/home/someone")})
	require.Equal(t, "/home/someone", orig.HomeDir)

	restored := config.New()
	restored.Update(orig.ToOptions())
	assert.Empty(t, restored.HomeDir)
}
