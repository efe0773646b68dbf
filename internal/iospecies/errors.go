package iospecies

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// SpeciesFileError creates an error for when the species list file
// cannot be read or parsed.
func SpeciesFileError(path string, err error) error {
	msg := `Cannot read species list

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. The file must be CSV with a header row`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.SpeciesFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot load species from %s: %w", path, err),
	}
}

// MissingColumnError creates an error for when the required
// scientificName column is absent. The batch never starts in that
// case.
func MissingColumnError(path string) error {
	msg := `Species list has no <em>%s</em> column

<em>File:</em> %s

<em>How to fix:</em>
  1. Add a header row with a '%s' column
  2. Put one scientific name per row under it`

	vars := []any{RequiredColumn, path, RequiredColumn}

	return &gn.Error{
		Code: errcode.MissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("column %q not found in %s",
			RequiredColumn, path),
	}
}
