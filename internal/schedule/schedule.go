// Package schedule provides the timing primitives used by the page widgets.
//
// Widgets never call time.AfterFunc directly. They receive a [Scheduler] and
// keep the [Timer] handle of every callback they schedule so it can be
// cancelled on teardown or when a newer schedule supersedes it.
//
// Two implementations are provided:
//
//   - [Loop]: real time. Every callback runs on a single dispatcher, which
//     gives the widgets the cooperative single-threaded model of a UI event
//     loop even though Go timers fire on their own goroutines.
//   - [Fake]: a manual clock for tests. Time only moves when Advance is called.
//
// The browser client supplies a third implementation on top of setTimeout and
// requestAnimationFrame.
package schedule

import "time"

// FrameInterval is the cadence at which animation frames are delivered by
// implementations that do not have a display-driven frame source.
const FrameInterval = 16 * time.Millisecond

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler schedules callbacks on a single logical event loop.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// AfterFunc runs fn once after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// RequestFrame runs fn on the next animation frame with the frame time.
	RequestFrame(fn func(now time.Time)) Timer
}

// StopAll stops every non-nil timer in ts.
func StopAll(ts ...Timer) {
	for _, t := range ts {
		if t != nil {
			t.Stop()
		}
	}
}
