// Package occurrence defines the domain types shared between the GBIF
// client, the proximity scorer and the batch analyzer.
package occurrence

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Record is a single reported sighting or specimen record as returned
// by the occurrence search API. Records are immutable once fetched.
type Record struct {
	// GbifID is the record identifier in GBIF.
	GbifID int64 `json:"gbifID"`

	// ScientificName is the full scientific name of the record.
	ScientificName string `json:"scientificName"`

	Kingdom string `json:"kingdom"`
	Family  string `json:"family"`

	// EventDate is the collection date as reported by the source.
	EventDate   string `json:"eventDate"`
	CountryCode string `json:"countryCode"`
	RecordedBy  string `json:"recordedBy"`

	// BasisOfRecord tells how the occurrence was recorded, for example
	// HUMAN_OBSERVATION or PRESERVED_SPECIMEN.
	BasisOfRecord string `json:"basisOfRecord"`

	// SpeciesKey is the GBIF taxon key of the species.
	SpeciesKey int64 `json:"speciesKey"`

	// Longitude and Latitude are nil when the source record carries no
	// usable coordinates.
	Longitude *float64 `json:"decimalLongitude"`
	Latitude  *float64 `json:"decimalLatitude"`
}

// Coord returns the record's coordinate as a point and a flag telling
// if the record carries coordinates at all.
func (r Record) Coord() (orb.Point, bool) {
	if r.Longitude == nil || r.Latitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*r.Longitude, *r.Latitude}, true
}

// Link returns the URL of the record's page on gbif.org.
func (r Record) Link() string {
	return fmt.Sprintf("https://www.gbif.org/occurrence/%d", r.GbifID)
}

// SpeciesQuery describes one species to search for.
type SpeciesQuery struct {
	// ScientificName is the name from the input species list.
	ScientificName string

	// Class optionally restricts the search to a taxonomic class,
	// for example "Aves" or "Mammalia". Empty means no restriction.
	Class string
}

// SearchPage is one page of results from the occurrence search API.
type SearchPage struct {
	Offset       int      `json:"offset"`
	Limit        int      `json:"limit"`
	EndOfRecords bool     `json:"endOfRecords"`
	Count        int64    `json:"count"`
	Results      []Record `json:"results"`
}

// AreaQuery describes a bulk area-wide occurrence search.
type AreaQuery struct {
	// GeometryWKT is the search polygon as well-formed WKT with
	// counter-clockwise outer rings.
	GeometryWKT string

	// KingdomKey restricts results to one kingdom (GBIF numeric key).
	// Zero means no restriction.
	KingdomKey int

	// Cap is the maximum number of records the search accumulates.
	Cap int
}

// KingdomKeys maps common kingdom names to GBIF numeric keys.
var KingdomKeys = map[string]int{
	"animalia": 1,
	"fungi":    5,
	"plantae":  6,
}
