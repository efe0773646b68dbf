// Package ioexport renders analysis results for downstream consumers:
// a tabular CSV, a GeoJSON of representative points, and a map-ready
// document pairing the area with per-species occurrence points.
package ioexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gnames/gnoccur/internal/iospecies"
	"github.com/gnames/gnoccur/pkg/occurrence"
)

// resultColumns are appended to the input columns in the merged CSV.
var resultColumns = []string{
	"label", "detail", "proximity_score", "gbif_total_records",
	"longitude", "latitude",
}

// WriteResultsCSV writes the merged result table: every input column
// followed by the analysis columns, one row per input species, input
// order preserved.
func WriteResultsCSV(
	w io.Writer,
	list *iospecies.List,
	results []occurrence.ProximityResult,
) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, list.Header...), resultColumns...)
	if err := cw.Write(header); err != nil {
		return ExportError("csv", err)
	}

	for i, res := range results {
		var row []string
		if i < len(list.Rows) {
			row = append(row, list.Rows[i]...)
		} else {
			row = append(row, make([]string, len(list.Header))...)
		}
		row = append(row,
			string(res.Label),
			res.Detail,
			strconv.Itoa(res.Score),
			strconv.FormatInt(res.TotalRecords, 10),
			floatCol(res.Longitude),
			floatCol(res.Latitude),
		)
		if err := cw.Write(row); err != nil {
			return ExportError("csv", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return ExportError("csv", err)
	}
	return nil
}

// recordColumns is the detailed table of an area-wide search, one row
// per occurrence record.
var recordColumns = []string{
	"gbif_id", "scientific_name", "kingdom", "family", "event_date",
	"country_code", "latitude", "longitude", "recorded_by",
	"basis_of_record", "species_key", "gbif_link",
}

// WriteRecordsCSV writes the detailed record table of an area-wide
// search. When traits is not nil a life_form column is appended.
func WriteRecordsCSV(
	w io.Writer,
	records []occurrence.Record,
	traits map[string]string,
) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, recordColumns...)
	if traits != nil {
		header = append(header, "life_form")
	}
	if err := cw.Write(header); err != nil {
		return ExportError("csv", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.GbifID, 10),
			rec.ScientificName,
			rec.Kingdom,
			rec.Family,
			rec.EventDate,
			rec.CountryCode,
			floatCol(rec.Latitude),
			floatCol(rec.Longitude),
			rec.RecordedBy,
			rec.BasisOfRecord,
			strconv.FormatInt(rec.SpeciesKey, 10),
			rec.Link(),
		}
		if traits != nil {
			row = append(row, traits[rec.ScientificName])
		}
		if err := cw.Write(row); err != nil {
			return ExportError("csv", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return ExportError("csv", err)
	}
	return nil
}

func floatCol(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
