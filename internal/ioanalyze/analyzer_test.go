package ioanalyze_test

import (
	"context"
	"fmt"
	"iter"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/internal/ioanalyze"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// fakeClient serves canned pages per species name and can fail
// selected species or run a hook before every search.
type fakeClient struct {
	pages    map[string]*occurrence.SearchPage
	failing  map[string]bool
	onSearch func(name string)
	calls    []string
}

func (c *fakeClient) SearchOne(
	_ context.Context,
	q occurrence.SpeciesQuery,
) (*occurrence.SearchPage, error) {
	c.calls = append(c.calls, q.ScientificName)
	if c.onSearch != nil {
		c.onSearch(q.ScientificName)
	}
	if c.failing[q.ScientificName] {
		return nil, fmt.Errorf("connection reset")
	}
	if page, ok := c.pages[q.ScientificName]; ok {
		return page, nil
	}
	return &occurrence.SearchPage{}, nil
}

func (c *fakeClient) SearchArea(
	_ context.Context,
	_ occurrence.AreaQuery,
) iter.Seq2[occurrence.Record, error] {
	return func(func(occurrence.Record, error) bool) {}
}

// recordingSink captures progress callbacks.
type recordingSink struct {
	total int
	steps []string
	done  bool
}

func (s *recordingSink) Start(total int)      { s.total = total }
func (s *recordingSink) Step(_ int, n string) { s.steps = append(s.steps, n) }
func (s *recordingSink) Done()                { s.done = true }

func unitSquare(t *testing.T) *geometry.AreaOfInterest {
	t.Helper()
	area, err := geometry.FromPolygon(orb.Polygon{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
	})
	require.NoError(t, err)
	return area
}

func queries(names ...string) []occurrence.SpeciesQuery {
	res := make([]occurrence.SpeciesQuery, len(names))
	for i, n := range names {
		res[i] = occurrence.SpeciesQuery{ScientificName: n}
	}
	return res
}

func pageWith(count int64, pts ...orb.Point) *occurrence.SearchPage {
	page := &occurrence.SearchPage{Count: count}
	for _, pt := range pts {
		page.Results = append(page.Results, occurrence.Record{
			Longitude: ptr(pt[0]),
			Latitude:  ptr(pt[1]),
		})
	}
	return page
}

func TestRunOrderAndCount(t *testing.T) {
	client := &fakeClient{
		pages: map[string]*occurrence.SearchPage{
			"Panthera onca":       pageWith(3, orb.Point{0.5, 0.5}),
			"Puma concolor":       pageWith(1, orb.Point{1.3, 0.5}),
			"Bradypus variegatus": pageWith(0),
		},
	}
	anl := ioanalyze.New(config.New(), client)

	names := []string{
		"Panthera onca", "Puma concolor", "Bradypus variegatus",
	}
	results, err := anl.Run(
		context.Background(), queries(names...), unitSquare(t),
	)
	require.NoError(t, err)

	require.Len(t, results, len(names), "one result per query")
	for i, name := range names {
		assert.Equal(t, name, results[i].Species, "input order preserved")
	}

	assert.Equal(t, occurrence.LabelInsideArea, results[0].Label)
	assert.Equal(t, 10, results[0].Score)
	assert.Equal(t, int64(3), results[0].TotalRecords)
	require.NotNil(t, results[0].Longitude)
	assert.InDelta(t, 0.5, *results[0].Longitude, 1e-9)

	assert.Equal(t, occurrence.LabelNear, results[1].Label)
	assert.Equal(t, occurrence.LabelNotFound, results[2].Label)
	assert.Equal(t, occurrence.NoScore, results[2].Score)
}

func TestRunFailedSpeciesContinues(t *testing.T) {
	client := &fakeClient{
		pages: map[string]*occurrence.SearchPage{
			"Panthera onca": pageWith(1, orb.Point{0.5, 0.5}),
			"Puma concolor": pageWith(1, orb.Point{0.4, 0.4}),
		},
		failing: map[string]bool{"Tapirus terrestris": true},
	}
	anl := ioanalyze.New(config.New(), client)

	results, err := anl.Run(
		context.Background(),
		queries("Panthera onca", "Tapirus terrestris", "Puma concolor"),
		unitSquare(t),
	)
	require.NoError(t, err, "a single species failure never aborts the run")
	require.Len(t, results, 3)

	assert.Equal(t, occurrence.LabelSearchFailed, results[1].Label)
	assert.Equal(t, occurrence.NoScore, results[1].Score)
	assert.Equal(t, "Tapirus terrestris", results[1].Species)

	// The species after the failure was still searched and scored.
	assert.Equal(t, occurrence.LabelInsideArea, results[2].Label)
	assert.Len(t, client.calls, 3)
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		pages: map[string]*occurrence.SearchPage{
			"Panthera onca": pageWith(1, orb.Point{0.5, 0.5}),
		},
		onSearch: func(name string) {
			if name == "Panthera onca" {
				cancel()
			}
		},
	}
	anl := ioanalyze.New(config.New(), client)

	results, err := anl.Run(
		ctx,
		queries("Panthera onca", "Puma concolor", "Tapirus terrestris"),
		unitSquare(t),
	)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)

	// Results collected before the cancellation survive.
	require.Len(t, results, 1)
	assert.Equal(t, "Panthera onca", results[0].Species)
	assert.Len(t, client.calls, 1, "no searches after cancellation")
}

func TestRunProgress(t *testing.T) {
	client := &fakeClient{}
	sink := &recordingSink{}
	anl := ioanalyze.New(
		config.New(), client, ioanalyze.OptProgress(sink),
	)

	_, err := anl.Run(
		context.Background(),
		queries("Panthera onca", "Puma concolor"),
		unitSquare(t),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, sink.total)
	assert.Equal(t, []string{"Panthera onca", "Puma concolor"}, sink.steps)
	assert.True(t, sink.done)
}

func TestRunEmptyInput(t *testing.T) {
	anl := ioanalyze.New(config.New(), &fakeClient{})
	results, err := anl.Run(context.Background(), nil, unitSquare(t))
	require.NoError(t, err)
	assert.Empty(t, results)
}
