package iogbif

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// SearchFailedError creates an error for when one occurrence search
// gave up, either immediately on a non-transient failure or after
// exhausting retries. The batch records it for the affected item and
// continues.
func SearchFailedError(query string, err error) error {
	msg := `Occurrence search failed

<em>Query:</em> %s

<em>Possible causes:</em>
  - GBIF is temporarily unavailable
  - Network connection problems
  - Malformed search parameters

The affected species is recorded as 'search-failed'; the rest of the
batch continues.`

	vars := []any{query}

	return &gn.Error{
		Code: errcode.SearchFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("search failed for %q: %w", query, err),
	}
}

// BadSearchQueryError creates an error for a search request that can
// never succeed, like an unknown kingdom name. It is detected before
// any network call.
func BadSearchQueryError(field, value string) error {
	msg := `Invalid search parameter <em>%s</em>: %s

<em>How to fix:</em>
  1. Kingdom must be one of: animalia, fungi, plantae
  2. Leave the flag out to search across all kingdoms`

	vars := []any{field, value}

	return &gn.Error{
		Code: errcode.BadSearchQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad search query: %s=%q", field, value),
	}
}
