package ioanalyze

import (
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnoccur/pkg/gnoccur"
)

// barSink renders batch progress as a terminal progress bar.
type barSink struct {
	bar *pb.ProgressBar
}

// NewProgressBar creates a ProgressSink backed by a terminal progress
// bar with consistent settings.
func NewProgressBar() gnoccur.ProgressSink {
	return &barSink{}
}

func (b *barSink) Start(total int) {
	b.bar = pb.Full.Start(total)
	b.bar.Set(pb.CleanOnFinish, true)
}

func (b *barSink) Step(current int, name string) {
	if b.bar == nil {
		return
	}
	b.bar.Set("prefix", name+" ")
	b.bar.Increment()
}

func (b *barSink) Done() {
	if b.bar != nil {
		b.bar.Finish()
	}
}
