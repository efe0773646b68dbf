package iogbif

import (
	"context"
	"iter"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/gnames/gnoccur/pkg/occurrence"
)

// cursor tracks the offset pagination of one bulk fetch. It is owned
// exclusively by the client for the duration of the fetch and
// discarded afterwards.
type cursor struct {
	offset   int
	pageSize int
	cap      int
	yielded  int
}

func (c *cursor) more() bool {
	return c.yielded < c.cap
}

// accept reserves one slot under the cap.
func (c *cursor) accept() bool {
	if c.yielded >= c.cap {
		return false
	}
	c.yielded++
	return true
}

// SearchArea streams records matching the area geometry, one page at a
// time, until the cap is reached or the source reports exhaustion.
// The returned sequence is lazy, finite and not restartable; an error
// terminates it after being yielded once.
func (c *client) SearchArea(
	ctx context.Context,
	q occurrence.AreaQuery,
) iter.Seq2[occurrence.Record, error] {
	return func(yield func(occurrence.Record, error) bool) {
		cur := &cursor{pageSize: c.cfg.GBIF.PageSize, cap: q.Cap}
		if cur.cap <= 0 {
			cur.cap = c.cfg.Analysis.RecordCap
		}

		for cur.more() {
			// Politeness pause between pages; the first page passes
			// immediately.
			if err := c.limiter.Wait(ctx); err != nil {
				yield(occurrence.Record{}, err)
				return
			}

			params := url.Values{}
			params.Set("geometry", q.GeometryWKT)
			params.Set("hasCoordinate", "true")
			params.Set("limit", strconv.Itoa(cur.pageSize))
			params.Set("offset", strconv.Itoa(cur.offset))
			if q.KingdomKey > 0 {
				params.Set("kingdomKey", strconv.Itoa(q.KingdomKey))
			}

			page, err := c.searchWithRetries(ctx, params)
			if err != nil {
				yield(occurrence.Record{}, SearchFailedError("area search", err))
				return
			}
			if len(page.Results) == 0 {
				// No more matching records exist at the source.
				slog.Debug("Area search exhausted",
					"offset", cur.offset, "yielded", cur.yielded)
				return
			}

			for _, rec := range page.Results {
				if !cur.accept() {
					return
				}
				if !yield(rec, nil) {
					return
				}
			}

			if page.EndOfRecords {
				return
			}
			cur.offset += cur.pageSize
		}
	}
}
