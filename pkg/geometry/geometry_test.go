package geometry_test

import (
	"strings"
	"testing"

	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare is a 1°x1° square at the equator with corners (0,0) and
// (1,1).
func unitSquare(t *testing.T) *geometry.AreaOfInterest {
	t.Helper()
	area, err := geometry.FromPolygon(orb.Polygon{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
	})
	require.NoError(t, err)
	return area
}

func TestNew(t *testing.T) {
	t.Run("closes an open ring", func(t *testing.T) {
		area, err := geometry.FromPolygon(orb.Polygon{
			{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		})
		require.NoError(t, err)
		assert.True(t, area.Contains(orb.Point{0.5, 0.5}))
	})

	t.Run("rejects empty geometry", func(t *testing.T) {
		_, err := geometry.New(orb.MultiPolygon{})
		assert.Error(t, err)
	})

	t.Run("rejects degenerate ring", func(t *testing.T) {
		_, err := geometry.FromPolygon(orb.Polygon{{{0, 0}, {1, 1}}})
		assert.Error(t, err)
	})

	t.Run("drops degenerate hole, keeps exterior", func(t *testing.T) {
		area, err := geometry.FromPolygon(orb.Polygon{
			{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			{{0.5, 0.5}},
		})
		require.NoError(t, err)
		assert.True(t, area.Contains(orb.Point{0.5, 0.5}))
	})
}

func TestContains(t *testing.T) {
	area := unitSquare(t)

	tests := []struct {
		msg    string
		pt     orb.Point
		inside bool
	}{
		{"center", orb.Point{0.5, 0.5}, true},
		{"boundary edge", orb.Point{1, 0.5}, true},
		{"boundary corner", orb.Point{0, 0}, true},
		{"just outside", orb.Point{1.0001, 0.5}, false},
		{"far away", orb.Point{10, 10}, false},
	}

	for _, v := range tests {
		assert.Equal(t, v.inside, area.Contains(v.pt), v.msg)
	}
}

func TestDistanceDeg(t *testing.T) {
	area := unitSquare(t)

	tests := []struct {
		msg string
		pt  orb.Point
		deg float64
	}{
		{"on boundary", orb.Point{1, 0.5}, 0},
		{"half degree east", orb.Point{1.5, 0.5}, 0.5},
		{"quarter degree north", orb.Point{0.5, 1.25}, 0.25},
		{"diagonal from corner", orb.Point{4, 5}, 5},
	}

	for _, v := range tests {
		assert.InDelta(t, v.deg, area.DistanceDeg(v.pt), 1e-9, v.msg)
	}
}

func TestCentroid(t *testing.T) {
	area := unitSquare(t)
	c := area.Centroid()
	assert.InDelta(t, 0.5, c[0], 1e-6)
	assert.InDelta(t, 0.5, c[1], 1e-3)
}

func TestAreaKm2(t *testing.T) {
	area := unitSquare(t)
	// One square degree at the equator is roughly 12,364 km² on the
	// mean-radius sphere.
	assert.InDelta(t, 12364, area.AreaKm2(), 60)
}

func TestBuffer(t *testing.T) {
	area := unitSquare(t)

	t.Run("expands the area", func(t *testing.T) {
		buf, err := area.Buffer(50)
		require.NoError(t, err)
		assert.Equal(t, 50.0, buf.DistanceKm)

		// 50 km at the equator is about 0.45 degrees.
		assert.True(t, buf.Area.Contains(orb.Point{1.3, 0.5}),
			"inside the buffer zone")
		assert.True(t, buf.Area.Contains(orb.Point{0.5, 0.5}),
			"original interior stays inside")
		assert.False(t, buf.Area.Contains(orb.Point{1.6, 0.5}),
			"beyond the buffer zone")
	})

	t.Run("zero distance returns the same area", func(t *testing.T) {
		buf, err := area.Buffer(0)
		require.NoError(t, err)
		assert.Same(t, area, buf.Area)
	})

	t.Run("negative distance fails", func(t *testing.T) {
		_, err := area.Buffer(-1)
		assert.Error(t, err)
	})
}

func TestCircle(t *testing.T) {
	t.Run("radius is true on the ground", func(t *testing.T) {
		circle, err := geometry.Circle(orb.Point{0, 0}, 10, 64)
		require.NoError(t, err)

		// 0.0449° along the equator is about 5 km, 0.1348° about 15 km.
		assert.True(t, circle.Contains(orb.Point{0.0449, 0}),
			"point 5 km from center")
		assert.False(t, circle.Contains(orb.Point{0.1348, 0}),
			"point 15 km from center")
	})

	t.Run("works away from the equator", func(t *testing.T) {
		center := orb.Point{-43.2, -22.9} // Rio de Janeiro
		circle, err := geometry.Circle(center, 10, 64)
		require.NoError(t, err)
		assert.True(t, circle.Contains(center))

		// At -22.9° latitude a degree of longitude is about 102.5 km;
		// 5 km east is about 0.0488°.
		assert.True(t, circle.Contains(orb.Point{-43.2 + 0.0488, -22.9}))
		assert.False(t, circle.Contains(orb.Point{-43.2 + 0.1465, -22.9}))
	})

	t.Run("stays in valid range near the antimeridian", func(t *testing.T) {
		circle, err := geometry.Circle(orb.Point{179.95, 0}, 10, 64)
		require.NoError(t, err)

		for _, poly := range circle.MultiPolygon() {
			for _, ring := range poly {
				for _, pt := range ring {
					assert.GreaterOrEqual(t, pt[0], -180.0)
					assert.LessOrEqual(t, pt[0], 180.0)
				}
			}
		}
	})

	t.Run("rejects non-positive radius", func(t *testing.T) {
		_, err := geometry.Circle(orb.Point{0, 0}, 0, 64)
		assert.Error(t, err)
	})
}

func TestWKT(t *testing.T) {
	t.Run("simple polygon", func(t *testing.T) {
		area := unitSquare(t)
		wkt := area.WKT()
		assert.True(t, strings.HasPrefix(wkt, "POLYGON (("), wkt)
		assert.Contains(t, wkt, "0.000000 0.000000")
		assert.Contains(t, wkt, "1.000000 1.000000")
	})

	t.Run("rewinds clockwise exterior", func(t *testing.T) {
		// Same square, vertices clockwise.
		area, err := geometry.FromPolygon(orb.Polygon{
			{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
		})
		require.NoError(t, err)

		ccw := unitSquare(t).WKT()
		assert.Equal(t, ccw, area.WKT())
	})

	t.Run("multipolygon", func(t *testing.T) {
		area, err := geometry.New(orb.MultiPolygon{
			{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
			{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(area.WKT(), "MULTIPOLYGON ("))
	})
}
