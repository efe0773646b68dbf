package ioanalyze

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// InterruptedError creates an error for when the batch stopped early
// because its context was cancelled. Results collected before the
// interruption remain valid.
func InterruptedError(done, total int, err error) error {
	msg := `Analysis interrupted

<em>Processed:</em> %d of %d species

Results collected so far are kept. Re-run with the remaining species
to finish the batch.`

	vars := []any{done, total}

	return &gn.Error{
		Code: errcode.AnalysisInterruptedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("interrupted after %d of %d: %w", done, total, err),
	}
}
