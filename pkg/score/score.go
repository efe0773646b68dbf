// Package score converts raw occurrence points into a proximity score
// against an area of interest. This is a pure package - no I/O.
package score

import (
	"fmt"
	"math"

	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/paulmach/orb"
)

// KmPerDegree converts planar degree distances to kilometers. It is a
// flat equatorial approximation applied uniformly regardless of
// latitude; the error grows away from the equator. This is documented
// behavior the score scale is calibrated against, not a bug to fix
// with geodesic math.
const KmPerDegree = 111.32

// MaxScore is the score of a species with at least one occurrence
// inside the area.
const MaxScore = 10

// Outcome is the result of scoring one species' occurrence points.
type Outcome struct {
	Label occurrence.Label

	// Detail elaborates the label with counts or distances.
	Detail string

	// Score is in [0,10], or occurrence.NoScore.
	Score int

	// Representative is the first contained point, or the nearest one.
	// Nil for not-found, insufficient-data.
	Representative *orb.Point

	// ContainedCount is the number of points inside the area.
	ContainedCount int

	// DistanceKm is the minimum distance to the area when nothing is
	// contained; occurrence.NoScore otherwise.
	DistanceKm float64
}

// Score classifies how close a set of occurrence records is to the
// area of interest.
//
// Rules, in order:
//  1. no records: not-found, sentinel score;
//  2. records without any usable coordinate: insufficient-data;
//  3. any point inside the area (boundary inclusive): inside-area,
//     score 10, representative is the first contained point in source
//     order;
//  4. otherwise the minimum degree distance to the area boundary,
//     converted with KmPerDegree, decays the score linearly from 9 to
//     0 at maxRelevantKm; at or past the threshold the label is far
//     and the score 0.
//
// The numeric score is rounded to the nearest integer; the unrounded
// value is not retained.
func Score(
	records []occurrence.Record,
	area *geometry.AreaOfInterest,
	maxRelevantKm float64,
) Outcome {
	if len(records) == 0 {
		return Outcome{
			Label:      occurrence.LabelNotFound,
			Detail:     "not found in source",
			Score:      occurrence.NoScore,
			DistanceKm: occurrence.NoScore,
		}
	}

	var pts []orb.Point
	for _, rec := range records {
		if pt, ok := rec.Coord(); ok {
			pts = append(pts, pt)
		}
	}
	if len(pts) == 0 {
		return Outcome{
			Label:      occurrence.LabelInsufficientData,
			Detail:     "records lack coordinates",
			Score:      occurrence.NoScore,
			DistanceKm: occurrence.NoScore,
		}
	}

	var contained int
	var first *orb.Point
	for i := range pts {
		if area.Contains(pts[i]) {
			if first == nil {
				// Tie-break is "first encountered in source order",
				// not nearest.
				first = &pts[i]
			}
			contained++
		}
	}
	if contained > 0 {
		return Outcome{
			Label:          occurrence.LabelInsideArea,
			Detail:         fmt.Sprintf("inside area (%d records)", contained),
			Score:          MaxScore,
			Representative: first,
			ContainedCount: contained,
			DistanceKm:     occurrence.NoScore,
		}
	}

	nearestIdx := 0
	minDeg := math.Inf(1)
	for i := range pts {
		d := area.DistanceDeg(pts[i])
		if d < minDeg {
			minDeg = d
			nearestIdx = i
		}
	}
	distKm := minDeg * KmPerDegree
	rep := &pts[nearestIdx]

	if distKm >= maxRelevantKm {
		return Outcome{
			Label:          occurrence.LabelFar,
			Detail:         fmt.Sprintf("far (>%.0f km)", maxRelevantKm),
			Score:          0,
			Representative: rep,
			DistanceKm:     distKm,
		}
	}

	val := 9 * (1 - distKm/maxRelevantKm)
	res := Outcome{
		Score:          int(math.Round(val)),
		Representative: rep,
		DistanceKm:     distKm,
	}
	switch {
	case distKm < 1:
		res.Label = occurrence.LabelVeryNear
		res.Detail = fmt.Sprintf("very near (%.0f m)", distKm*1000)
	case distKm < 50:
		res.Label = occurrence.LabelNear
		res.Detail = fmt.Sprintf("near (%.1f km)", distKm)
	default:
		res.Label = occurrence.LabelModeratelyNear
		res.Detail = fmt.Sprintf("moderately near (%.1f km)", distKm)
	}
	return res
}
