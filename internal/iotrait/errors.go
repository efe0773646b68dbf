package iotrait

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// CacheError creates an error for when the session trait cache cannot
// be created, opened or cleaned.
func CacheError(dir string, err error) error {
	msg := `Cannot use trait cache directory

<em>Directory:</em> %s

<em>How to fix:</em>
  1. Check the directory is writable
  2. Remove stale files left by a crashed session`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.TraitCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("trait cache at %s: %w", dir, err),
	}
}
