package cmd

import (
	"context"
	"os"
	"os/signal"
)

// interruptContext returns a context canceled by the first Ctrl-C, so
// a long run stops between pages or species and keeps the results
// collected so far.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
