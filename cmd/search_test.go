package cmd

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamClient fakes the occurrence client with a canned record
// stream, optionally ending in an error.
type streamClient struct {
	records []occurrence.Record
	err     error
}

func (c *streamClient) SearchOne(
	_ context.Context, _ occurrence.SpeciesQuery,
) (*occurrence.SearchPage, error) {
	return &occurrence.SearchPage{}, nil
}

func (c *streamClient) SearchArea(
	_ context.Context, _ occurrence.AreaQuery,
) iter.Seq2[occurrence.Record, error] {
	return func(yield func(occurrence.Record, error) bool) {
		for _, rec := range c.records {
			if !yield(rec, nil) {
				return
			}
		}
		if c.err != nil {
			yield(occurrence.Record{}, c.err)
		}
	}
}

func TestCollectRecords(t *testing.T) {
	client := &streamClient{records: []occurrence.Record{
		{GbifID: 1}, {GbifID: 2}, {GbifID: 3},
	}}
	records, err := collectRecords(
		context.Background(), client, occurrence.AreaQuery{},
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(1), records[0].GbifID)
}

func TestCollectRecordsKeepsPartialOnFailure(t *testing.T) {
	client := &streamClient{
		records: []occurrence.Record{
			{GbifID: 1}, {GbifID: 2}, {GbifID: 3},
		},
		err: errors.New("search failed"),
	}
	records, err := collectRecords(
		context.Background(), client, occurrence.AreaQuery{},
	)
	assert.Error(t, err)
	// Records fetched before the failure are kept for the summary and
	// the exports.
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[2].GbifID)
}
