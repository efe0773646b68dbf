// Package ioarea loads the area of interest from a GeoJSON file and
// normalizes it into geometry.AreaOfInterest. Shapefile conversion is
// out of scope; upstream tooling hands over GeoJSON in WGS84.
package ioarea

import (
	"os"

	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Load reads a GeoJSON file holding a FeatureCollection, a Feature or
// a bare geometry, and builds the area of interest from every polygon
// found in it.
func Load(path string) (*geometry.AreaOfInterest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, AreaFileError(path, err)
	}
	return FromGeoJSON(path, data)
}

// FromGeoJSON builds the area of interest from raw GeoJSON bytes.
// path is used for error reporting only.
func FromGeoJSON(path string, data []byte) (*geometry.AreaOfInterest, error) {
	var geoms []orb.Geometry

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil {
		geoms = append(geoms, f.Geometry)
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		geoms = append(geoms, g.Geometry())
	} else {
		return nil, AreaFileError(path, err)
	}

	var mp orb.MultiPolygon
	for _, g := range geoms {
		switch v := g.(type) {
		case orb.Polygon:
			mp = append(mp, v)
		case orb.MultiPolygon:
			mp = append(mp, v...)
		case orb.Collection:
			for _, inner := range v {
				switch p := inner.(type) {
				case orb.Polygon:
					mp = append(mp, p)
				case orb.MultiPolygon:
					mp = append(mp, p...)
				}
			}
		}
	}

	area, err := geometry.New(mp)
	if err != nil {
		return nil, err
	}
	return area, nil
}
