// Package gnoccur defines the public interfaces of the occurrence
// proximity analysis engine. Implementations with I/O live in
// internal/io* packages.
package gnoccur

import (
	"context"
	"iter"

	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/occurrence"
)

// OccurrenceClient is a resilient interface to the external
// occurrence-search API. Every call retries transient connection
// failures with bounded exponential backoff; other failures surface
// immediately so a bad query cannot hang a batch.
type OccurrenceClient interface {
	// SearchOne performs a single bounded search (one page, fixed page
	// size) for one species, optionally filtered by taxonomic class.
	SearchOne(ctx context.Context, q occurrence.SpeciesQuery) (*occurrence.SearchPage, error)

	// SearchArea streams occurrence records matching an area geometry,
	// advancing an offset cursor page by page until either the cap is
	// reached or the source reports no more records. The sequence is
	// lazy, finite and not restartable. A politeness delay separates
	// consecutive page requests.
	SearchArea(ctx context.Context, q occurrence.AreaQuery) iter.Seq2[occurrence.Record, error]
}

// BatchAnalyzer orchestrates the occurrence client and the proximity
// scorer across a list of species.
type BatchAnalyzer interface {
	// Run produces exactly one ProximityResult per input query, in
	// input order. A single species failure is recorded as a
	// search-failed row and never aborts the run. Cancelling ctx stops
	// the batch between species without corrupting collected results.
	Run(
		ctx context.Context,
		queries []occurrence.SpeciesQuery,
		area *geometry.AreaOfInterest,
	) ([]occurrence.ProximityResult, error)
}

// TraitResolver looks up the life-form attribute for plant species.
// Lookups are memoized for the lifetime of one session: each unique
// name triggers at most one external call, and failures are cached so
// they are not retried within the session.
type TraitResolver interface {
	// LifeForms maps each queried name to its life form,
	// "uncategorized" when the source knows the taxon but carries no
	// profile, or a distinct lookup-error value when the call failed.
	LifeForms(ctx context.Context, names []string) map[string]string

	// Close releases the session cache.
	Close() error
}

// ProgressSink receives incremental progress of a batch. It is an
// observability side effect, not a correctness contract; the core has
// no dependency on any specific UI.
type ProgressSink interface {
	// Start announces total items before the first one is processed.
	Start(total int)

	// Step reports that item current of total finished (1-based).
	Step(current int, name string)

	// Done announces the end of the batch.
	Done()
}
