package geometry

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// InvalidGeometryError creates an error for when no usable polygon
// remains after normalization. This error is fatal for a run.
func InvalidGeometryError() error {
	msg := `Area of interest has no valid polygon

<em>Possible causes:</em>
  - Empty or point/line-only geometry
  - Rings with fewer than 4 positions
  - Non-finite coordinates

<em>How to fix:</em>
  1. Check the area file contains at least one polygon
  2. Verify coordinates are in WGS84 degrees`

	return &gn.Error{
		Code: errcode.InvalidGeometryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("no valid polygon after normalization"),
	}
}

// ProjectionError creates an error for when buffering or reprojection
// cannot be performed. Callers recover by falling back to the
// unbuffered area.
func ProjectionError(distanceKm float64) error {
	msg := `Cannot build buffered geometry

<em>Requested distance:</em> %v km

The area geometry is degenerate for metric buffering. The analysis
falls back to the unbuffered area.`

	return &gn.Error{
		Code: errcode.ProjectionError,
		Msg:  msg,
		Vars: []any{distanceKm},
		Err:  fmt.Errorf("projection failed for %v km buffer", distanceKm),
	}
}
