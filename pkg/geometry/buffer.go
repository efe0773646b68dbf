package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Buffer is an AreaOfInterest expanded by a radial distance. The
// expansion is always computed in projected meters, never in raw
// degrees - degree-based buffering distorts badly away from the
// equator.
type Buffer struct {
	// Area is the buffered geometry, back in WGS84.
	Area *AreaOfInterest

	// DistanceKm is the requested buffer distance.
	DistanceKm float64
}

// Buffer expands the area outward by distanceKm. The polygons are
// projected to Web Mercator, ring vertices are offset by
// distanceKm*1000 raw Mercator meters along their vertex bisectors,
// and the result is projected back. Holes shrink and disappear when
// the offset inverts them.
//
// Raw Mercator meters overshoot true ground meters by 1/cos(lat);
// this matches the buffer semantics of the EPSG:3857 workflow the
// scoring pipeline is calibrated against.
//
// Fails with ProjectionError on degenerate geometry; the caller is
// expected to fall back to the unbuffered area rather than abort.
func (a *AreaOfInterest) Buffer(distanceKm float64) (*Buffer, error) {
	if distanceKm < 0 {
		return nil, ProjectionError(distanceKm)
	}
	if distanceKm == 0 {
		return &Buffer{Area: a, DistanceKm: 0}, nil
	}

	meters := distanceKm * 1000
	var res orb.MultiPolygon
	for _, poly := range a.polys {
		merc := project.Polygon(poly.Clone(), project.WGS84.ToMercator)
		buffered, err := bufferPolygon(merc, meters)
		if err != nil {
			return nil, err
		}
		res = append(res, project.Polygon(buffered, project.Mercator.ToWGS84))
	}

	area, err := New(res)
	if err != nil {
		return nil, ProjectionError(distanceKm)
	}
	return &Buffer{Area: area, DistanceKm: distanceKm}, nil
}

// bufferPolygon offsets every ring of a projected polygon away from
// the polygon interior by d meters. Holes that invert or collapse are
// dropped.
func bufferPolygon(p orb.Polygon, d float64) (orb.Polygon, error) {
	if len(p) == 0 {
		return nil, ProjectionError(d)
	}

	// Exterior counter-clockwise, holes clockwise: with this winding
	// the interior is to the left of travel for every ring, and the
	// right-hand normal always points away from the interior.
	ext := p[0].Clone()
	if ext.Orientation() != orb.CCW {
		ext.Reverse()
	}
	extOff, err := offsetRing(ext, d)
	if err != nil {
		return nil, err
	}
	res := orb.Polygon{extOff}

	for _, hole := range p[1:] {
		h := hole.Clone()
		if h.Orientation() != orb.CW {
			h.Reverse()
		}
		holeOff, err := offsetRing(h, d)
		if err != nil {
			continue // degenerate hole, drop it
		}
		// A hole swallowed by the buffer flips orientation or loses
		// nearly all its area.
		if holeOff.Orientation() != orb.CW ||
			math.Abs(planar.Area(holeOff)) < d*d {
			continue
		}
		res = append(res, holeOff)
	}
	return res, nil
}

// offsetRing moves every vertex along the normalized bisector of its
// adjacent edge normals (miter offset). The ring must be closed.
func offsetRing(ring orb.Ring, d float64) (orb.Ring, error) {
	n := len(ring)
	if n < 4 || !ring.Closed() {
		return nil, ProjectionError(d)
	}

	// Drop the duplicated closing vertex for neighbor arithmetic.
	pts := ring[:n-1]
	m := len(pts)
	res := make(orb.Ring, 0, n)

	for i := range pts {
		prev := pts[(i+m-1)%m]
		cur := pts[i]
		next := pts[(i+1)%m]

		n1, ok1 := rightNormal(prev, cur)
		n2, ok2 := rightNormal(cur, next)
		if !ok1 && !ok2 {
			return nil, ProjectionError(d)
		}
		if !ok1 {
			n1 = n2
		}
		if !ok2 {
			n2 = n1
		}

		bx, by := n1[0]+n2[0], n1[1]+n2[1]
		blen := math.Hypot(bx, by)
		if blen < 1e-12 {
			// 180 degree turn; fall back to the first edge normal.
			bx, by, blen = n1[0], n1[1], 1
		}
		bx, by = bx/blen, by/blen

		// Miter length grows as 1/cos(theta/2); clamp sharp spikes.
		cos := bx*n1[0] + by*n1[1]
		if cos < 0.25 {
			cos = 0.25
		}
		scale := d / cos

		off := orb.Point{cur[0] + bx*scale, cur[1] + by*scale}
		if !finitePoint(off) {
			return nil, ProjectionError(d)
		}
		res = append(res, off)
	}

	res = append(res, res[0])
	return res, nil
}

// rightNormal returns the unit normal to the right of travel a->b.
// ok is false for zero-length edges.
func rightNormal(a, b orb.Point) (orb.Point, bool) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return orb.Point{}, false
	}
	return orb.Point{dy / length, -dx / length}, true
}
