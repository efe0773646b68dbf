package geometry

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// WKT serializes the area as well-known text suitable for the GBIF
// geometry search parameter: outer rings counter-clockwise, holes
// clockwise, coordinates rounded to 6 digits. GBIF rejects polygons
// with the opposite winding.
func (a *AreaOfInterest) WKT() string {
	mp := a.polys.Clone()
	for _, poly := range mp {
		rewind(poly)
	}

	if len(mp) == 1 {
		return "POLYGON " + wktPolygonBody(mp[0])
	}

	parts := make([]string, len(mp))
	for i, poly := range mp {
		parts[i] = wktPolygonBody(poly)
	}
	return "MULTIPOLYGON (" + strings.Join(parts, ", ") + ")"
}

// rewind normalizes ring winding in place: exterior counter-clockwise,
// holes clockwise.
func rewind(p orb.Polygon) {
	for i, ring := range p {
		o := ring.Orientation()
		if i == 0 && o == orb.CW {
			ring.Reverse()
		}
		if i > 0 && o == orb.CCW {
			ring.Reverse()
		}
	}
}

func wktPolygonBody(p orb.Polygon) string {
	rings := make([]string, len(p))
	for i, ring := range p {
		pts := make([]string, len(ring))
		for j, pt := range ring {
			pts[j] = fmt.Sprintf("%.6f %.6f", pt[0], pt[1])
		}
		rings[i] = "(" + strings.Join(pts, ", ") + ")"
	}
	return "(" + strings.Join(rings, ", ") + ")"
}
