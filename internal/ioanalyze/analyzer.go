// Package ioanalyze implements the BatchAnalyzer interface. It drives
// the occurrence client and the proximity scorer across a species
// list, one species at a time, in input order.
package ioanalyze

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/gnames/gnoccur/pkg/score"
)

// analyzer implements the BatchAnalyzer interface.
type analyzer struct {
	cfg      *config.Config
	client   gnoccur.OccurrenceClient
	progress gnoccur.ProgressSink
}

// Option configures the analyzer.
type Option func(*analyzer)

// OptProgress attaches a progress sink. Without it progress is
// silently discarded.
func OptProgress(sink gnoccur.ProgressSink) Option {
	return func(a *analyzer) {
		if sink != nil {
			a.progress = sink
		}
	}
}

// New creates a BatchAnalyzer.
func New(
	cfg *config.Config,
	client gnoccur.OccurrenceClient,
	opts ...Option,
) gnoccur.BatchAnalyzer {
	res := &analyzer{
		cfg:      cfg,
		client:   client,
		progress: noProgress{},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run analyzes every query against the area. It always returns one
// result per processed query in input order. A per-species search
// failure becomes a search-failed row and the batch continues; only
// context cancellation stops the run early, and even then the
// already-collected results come back intact.
func (a *analyzer) Run(
	ctx context.Context,
	queries []occurrence.SpeciesQuery,
	area *geometry.AreaOfInterest,
) ([]occurrence.ProximityResult, error) {
	start := time.Now()
	total := len(queries)
	results := make([]occurrence.ProximityResult, 0, total)

	slog.Info("Starting proximity analysis",
		"species", total,
		"max_relevant_km", a.cfg.Analysis.MaxRelevantKm,
	)
	a.progress.Start(total)

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return results, InterruptedError(i, total, err)
		}

		results = append(results, a.analyzeOne(ctx, q, area))
		a.progress.Step(i+1, q.ScientificName)
	}
	a.progress.Done()

	slog.Info("Proximity analysis finished",
		"species", humanize.Comma(int64(total)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return results, nil
}

// analyzeOne fetches one species' occurrences and scores them.
func (a *analyzer) analyzeOne(
	ctx context.Context,
	q occurrence.SpeciesQuery,
	area *geometry.AreaOfInterest,
) occurrence.ProximityResult {
	page, err := a.client.SearchOne(ctx, q)
	if err != nil {
		slog.Warn("Search failed for species",
			"species", q.ScientificName, "error", err)
		return occurrence.ProximityResult{
			Species:    q.ScientificName,
			Label:      occurrence.LabelSearchFailed,
			Detail:     "search failed",
			Score:      occurrence.NoScore,
			DistanceKm: occurrence.NoScore,
		}
	}

	outcome := score.Score(page.Results, area, a.cfg.Analysis.MaxRelevantKm)

	res := occurrence.ProximityResult{
		Species:        q.ScientificName,
		Label:          outcome.Label,
		Detail:         outcome.Detail,
		Score:          outcome.Score,
		TotalRecords:   page.Count,
		ContainedCount: outcome.ContainedCount,
		DistanceKm:     outcome.DistanceKm,
		Records:        page.Results,
	}
	if outcome.Representative != nil {
		lon, lat := outcome.Representative[0], outcome.Representative[1]
		res.Longitude = &lon
		res.Latitude = &lat
	}
	return res
}

// noProgress discards progress reports.
type noProgress struct{}

func (noProgress) Start(int)        {}
func (noProgress) Step(int, string) {}
func (noProgress) Done()            {}
