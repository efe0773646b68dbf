package occurrence_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestCoord(t *testing.T) {
	tests := []struct {
		msg string
		rec occurrence.Record
		pt  orb.Point
		ok  bool
	}{
		{
			msg: "both coordinates",
			rec: occurrence.Record{Longitude: ptr(-43.2), Latitude: ptr(-22.9)},
			pt:  orb.Point{-43.2, -22.9},
			ok:  true,
		},
		{
			msg: "missing latitude",
			rec: occurrence.Record{Longitude: ptr(-43.2)},
		},
		{
			msg: "no coordinates",
			rec: occurrence.Record{},
		},
	}

	for _, v := range tests {
		pt, ok := v.rec.Coord()
		assert.Equal(t, v.ok, ok, v.msg)
		if v.ok {
			assert.Equal(t, v.pt, pt, v.msg)
		}
	}
}

func TestLink(t *testing.T) {
	rec := occurrence.Record{GbifID: 4021999463}
	assert.Equal(
		t, "https://www.gbif.org/occurrence/4021999463", rec.Link(),
	)
}

func TestRecordJSON(t *testing.T) {
	// Field names follow the GBIF response schema.
	data := `{
	  "gbifID": 7,
	  "scientificName": "Panthera onca (Linnaeus, 1758)",
	  "decimalLongitude": -57.4,
	  "decimalLatitude": -16.3,
	  "basisOfRecord": "HUMAN_OBSERVATION"
	}`
	var rec occurrence.Record
	require.NoError(t, json.Unmarshal([]byte(data), &rec))

	assert.Equal(t, int64(7), rec.GbifID)
	pt, ok := rec.Coord()
	require.True(t, ok)
	assert.Equal(t, orb.Point{-57.4, -16.3}, pt)
}
