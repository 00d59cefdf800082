// Package copybutton drives the label of a copy-to-clipboard button: it
// reads "Copied!" for a short while after a successful copy, then reverts.
package copybutton

import (
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

const (
	// ResetAfter is how long the confirmation stays up.
	ResetAfter = 2 * time.Second

	LabelIdle   = "Copy"
	LabelCopied = "Copied!"
)

// Button is the state of one copy button. A press during the confirmation
// restarts its window.
type Button struct {
	sched  schedule.Scheduler
	sink   func(label string)
	copied bool
	reset  schedule.Timer
	closed bool
}

// New returns an idle Button. sink receives the label after every change.
func New(sched schedule.Scheduler, sink func(label string)) *Button {
	return &Button{sched: sched, sink: sink}
}

// Press records a successful copy.
func (b *Button) Press() {
	if b.closed {
		return
	}
	schedule.StopAll(b.reset)
	b.reset = b.sched.AfterFunc(ResetAfter, b.revert)
	if !b.copied {
		b.copied = true
		b.sink(LabelCopied)
	}
}

func (b *Button) revert() {
	b.reset = nil
	if b.closed || !b.copied {
		return
	}
	b.copied = false
	b.sink(LabelIdle)
}

func (b *Button) Copied() bool { return b.copied }

func (b *Button) Label() string {
	if b.copied {
		return LabelCopied
	}
	return LabelIdle
}

// Close cancels a pending reset. The label is left as it is.
func (b *Button) Close() {
	b.closed = true
	schedule.StopAll(b.reset)
	b.reset = nil
}
