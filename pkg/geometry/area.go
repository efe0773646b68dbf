// Package geometry provides the spatial primitives of gnoccur: the
// area of interest, metric buffering, centroids and circular search
// areas. All public geometries are in geographic coordinates (WGS84
// degrees); metric operations happen in projected planes internally.
//
// This is a pure package - no I/O, no network calls.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// AreaOfInterest wraps a user-supplied project area: one or more
// simple polygons normalized to WGS84. It is never empty after
// successful construction.
type AreaOfInterest struct {
	polys orb.MultiPolygon
}

// New builds an AreaOfInterest from a multipolygon in WGS84.
// Rings with fewer than four positions or non-finite coordinates are
// dropped; unclosed rings are closed. Fails with InvalidGeometry when
// no valid polygon survives normalization.
func New(mp orb.MultiPolygon) (*AreaOfInterest, error) {
	var res orb.MultiPolygon
	for _, poly := range mp {
		norm := normalizePolygon(poly)
		if norm != nil {
			res = append(res, norm)
		}
	}
	if len(res) == 0 {
		return nil, InvalidGeometryError()
	}
	return &AreaOfInterest{polys: res}, nil
}

// FromPolygon is a convenience wrapper for single-polygon areas.
func FromPolygon(p orb.Polygon) (*AreaOfInterest, error) {
	return New(orb.MultiPolygon{p})
}

// MultiPolygon returns the area geometry. The caller must not mutate it.
func (a *AreaOfInterest) MultiPolygon() orb.MultiPolygon {
	return a.polys
}

// Contains reports whether the point lies within the area, boundary
// inclusive.
func (a *AreaOfInterest) Contains(pt orb.Point) bool {
	return planar.MultiPolygonContains(a.polys, pt)
}

// DistanceDeg returns the minimum planar distance, in degrees, from
// the point to the area boundary. Zero when the point lies on the
// boundary.
func (a *AreaOfInterest) DistanceDeg(pt orb.Point) float64 {
	min := math.Inf(1)
	for _, poly := range a.polys {
		for _, ring := range poly {
			d := distanceToRing(pt, ring)
			if d < min {
				min = d
			}
		}
	}
	return min
}

// Centroid returns the area centroid in geographic coordinates. The
// centroid is computed in Web Mercator so that multi-part areas with
// uneven vertex density do not skew it, then projected back.
func (a *AreaOfInterest) Centroid() orb.Point {
	merc := project.MultiPolygon(a.polys.Clone(), project.WGS84.ToMercator)
	c, _ := planar.CentroidArea(merc)
	return project.Mercator.ToWGS84(c)
}

// AreaKm2 returns the spherical area of the geometry in square
// kilometers.
func (a *AreaOfInterest) AreaKm2() float64 {
	return math.Abs(geo.Area(a.polys)) / 1_000_000
}

// normalizePolygon closes unclosed rings and drops degenerate ones.
// Returns nil when the exterior ring is unusable.
func normalizePolygon(p orb.Polygon) orb.Polygon {
	var res orb.Polygon
	for i, ring := range p {
		r := normalizeRing(ring)
		if r == nil {
			if i == 0 {
				return nil
			}
			continue
		}
		res = append(res, r)
	}
	return res
}

func normalizeRing(r orb.Ring) orb.Ring {
	for _, pt := range r {
		if !finitePoint(pt) {
			return nil
		}
	}
	if len(r) > 0 && !r.Closed() {
		r = append(r.Clone(), r[0])
	}
	if len(r) < 4 {
		return nil
	}
	return r
}

func finitePoint(pt orb.Point) bool {
	return !math.IsNaN(pt[0]) && !math.IsInf(pt[0], 0) &&
		!math.IsNaN(pt[1]) && !math.IsInf(pt[1], 0)
}

// distanceToRing returns the minimum distance from pt to the ring's
// segments, in the ring's units.
func distanceToRing(pt orb.Point, ring orb.Ring) float64 {
	min := math.Inf(1)
	for i := 1; i < len(ring); i++ {
		d := distanceToSegment(pt, ring[i-1], ring[i])
		if d < min {
			min = d
		}
	}
	return min
}

// distanceToSegment returns the distance from p to segment [a,b].
func distanceToSegment(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return planar.Distance(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	switch {
	case t <= 0:
		return planar.Distance(p, a)
	case t >= 1:
		return planar.Distance(p, b)
	}
	proj := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return planar.Distance(p, proj)
}
