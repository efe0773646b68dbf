package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// earthRadiusM is the WGS84 equatorial radius used by the spherical
// projections in this package.
const earthRadiusM = 6378137.0

// Circle builds a circular search area of radiusKm around center,
// using an azimuthal equidistant projection centered on that point.
// Distances from the center are true in that projection, so the
// requested radius is a real circle on the ground, not a degree-based
// ellipse. segments controls vertex count (minimum 8).
func Circle(center orb.Point, radiusKm float64, segments int) (*AreaOfInterest, error) {
	if radiusKm <= 0 || !finitePoint(center) {
		return nil, InvalidGeometryError()
	}
	if segments < 8 {
		segments = 8
	}

	inverse := aeqdInverse(center)
	radiusM := radiusKm * 1000

	ring := make(orb.Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		planarPt := orb.Point{radiusM * math.Cos(theta), radiusM * math.Sin(theta)}
		ring = append(ring, inverse(planarPt))
	}
	ring = append(ring, ring[0])

	return FromPolygon(orb.Polygon{ring})
}

// aeqdForward returns the forward azimuthal equidistant projection
// centered on origin: WGS84 degrees to planar meters.
func aeqdForward(origin orb.Point) orb.Projection {
	lam0 := origin[0] * math.Pi / 180
	phi0 := origin[1] * math.Pi / 180
	sinPhi0, cosPhi0 := math.Sin(phi0), math.Cos(phi0)

	return func(p orb.Point) orb.Point {
		lam := p[0]*math.Pi/180 - lam0
		phi := p[1] * math.Pi / 180
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

		cosC := sinPhi0*sinPhi + cosPhi0*cosPhi*math.Cos(lam)
		if cosC > 1 {
			cosC = 1
		} else if cosC < -1 {
			cosC = -1
		}
		c := math.Acos(cosC)

		k := 1.0
		if c != 0 {
			k = c / math.Sin(c)
		}
		x := earthRadiusM * k * cosPhi * math.Sin(lam)
		y := earthRadiusM * k * (cosPhi0*sinPhi - sinPhi0*cosPhi*math.Cos(lam))
		return orb.Point{x, y}
	}
}

// aeqdInverse returns the inverse azimuthal equidistant projection
// centered on origin: planar meters to WGS84 degrees.
func aeqdInverse(origin orb.Point) orb.Projection {
	lam0 := origin[0] * math.Pi / 180
	phi0 := origin[1] * math.Pi / 180
	sinPhi0, cosPhi0 := math.Sin(phi0), math.Cos(phi0)

	return func(p orb.Point) orb.Point {
		rho := math.Hypot(p[0], p[1])
		if rho == 0 {
			return origin
		}
		c := rho / earthRadiusM
		sinC, cosC := math.Sin(c), math.Cos(c)

		phi := math.Asin(cosC*sinPhi0 + p[1]*sinC*cosPhi0/rho)
		lam := lam0 + math.Atan2(
			p[0]*sinC,
			rho*cosPhi0*cosC-p[1]*sinPhi0*sinC,
		)
		// Keep longitude inside [-180, 180) even when the circle
		// straddles the antimeridian.
		lon := math.Mod(lam*180/math.Pi+540, 360) - 180
		return orb.Point{lon, phi * 180 / math.Pi}
	}
}
