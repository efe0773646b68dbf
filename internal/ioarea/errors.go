package ioarea

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// AreaFileError creates an error for when the area file cannot be
// read or parsed. This error is fatal: without a usable area no
// analysis can start.
func AreaFileError(path string, err error) error {
	msg := `Cannot read area of interest

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the file exists and is valid GeoJSON
  2. The file must contain at least one polygon in WGS84 degrees`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.AreaFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot load area from %s: %w", path, err),
	}
}
