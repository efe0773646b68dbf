package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// ExportError creates an error for when results cannot be written to
// their output. The analysis itself already succeeded; only the
// serialization failed.
func ExportError(format string, err error) error {
	msg := `Cannot write %s output

<em>How to fix:</em>
  1. Check the output path is writable
  2. Check there is enough disk space`

	vars := []any{format}

	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s export: %w", format, err),
	}
}
