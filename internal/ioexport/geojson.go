package ioexport

import (
	"encoding/json"
	"io"

	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WriteResultsGeoJSON writes one point feature per species that has a
// representative coordinate. Species without coordinates (not found,
// insufficient data, search failures) are skipped.
func WriteResultsGeoJSON(
	w io.Writer,
	results []occurrence.ProximityResult,
) error {
	fc := geojson.NewFeatureCollection()
	for _, res := range results {
		if res.Longitude == nil || res.Latitude == nil {
			continue
		}
		ft := geojson.NewFeature(orb.Point{*res.Longitude, *res.Latitude})
		ft.Properties = geojson.Properties{
			"species":          res.Species,
			"label":            string(res.Label),
			"detail":           res.Detail,
			"proximityScore":   res.Score,
			"gbifTotalRecords": res.TotalRecords,
		}
		fc.Append(ft)
	}
	return encodeJSON(w, fc)
}

// WriteRecordsGeoJSON writes one point feature per occurrence record
// that carries coordinates. When traits is not nil each feature gets a
// lifeForm property.
func WriteRecordsGeoJSON(
	w io.Writer,
	records []occurrence.Record,
	traits map[string]string,
) error {
	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		pt, ok := rec.Coord()
		if !ok {
			continue
		}
		ft := geojson.NewFeature(pt)
		ft.Properties = geojson.Properties{
			"gbifID":         rec.GbifID,
			"scientificName": rec.ScientificName,
			"kingdom":        rec.Kingdom,
			"family":         rec.Family,
			"eventDate":      rec.EventDate,
			"countryCode":    rec.CountryCode,
			"basisOfRecord":  rec.BasisOfRecord,
			"gbifLink":       rec.Link(),
		}
		if traits != nil {
			ft.Properties["lifeForm"] = traits[rec.ScientificName]
		}
		fc.Append(ft)
	}
	return encodeJSON(w, fc)
}

// WriteMapDoc writes a single GeoJSON document with the area of
// interest, the optional buffered search region and every occurrence
// record behind the results. Each feature carries a layer property so
// a viewer can style them independently; the run identifier ties the
// document to the analysis that produced it.
func WriteMapDoc(
	w io.Writer,
	area *geometry.AreaOfInterest,
	buf *geometry.Buffer,
	results []occurrence.ProximityResult,
) error {
	runID := uuid.New().String()
	fc := geojson.NewFeatureCollection()

	areaFt := geojson.NewFeature(area.MultiPolygon())
	areaFt.Properties = geojson.Properties{
		"layer":  "area",
		"runId":  runID,
		"areaKm": area.AreaKm2(),
	}
	fc.Append(areaFt)

	if buf != nil {
		bufFt := geojson.NewFeature(buf.Area.MultiPolygon())
		bufFt.Properties = geojson.Properties{
			"layer":      "buffer",
			"runId":      runID,
			"distanceKm": buf.DistanceKm,
		}
		fc.Append(bufFt)
	}

	for _, res := range results {
		for _, rec := range res.Records {
			pt, ok := rec.Coord()
			if !ok {
				continue
			}
			ft := geojson.NewFeature(pt)
			ft.Properties = geojson.Properties{
				"layer":          "occurrence",
				"runId":          runID,
				"species":        res.Species,
				"label":          string(res.Label),
				"scientificName": rec.ScientificName,
				"eventDate":      rec.EventDate,
				"gbifLink":       rec.Link(),
			}
			fc.Append(ft)
		}
	}
	return encodeJSON(w, fc)
}

func encodeJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(fc); err != nil {
		return ExportError("geojson", err)
	}
	return nil
}
