package schedule

import (
	"sort"
	"time"
)

// Fake is a manually advanced Scheduler for tests.
//
// Callbacks only run inside Advance, in deadline order. Callbacks with the
// same deadline run in the order they were scheduled. Frames are treated as
// timers due one FrameInterval after they were requested.
type Fake struct {
	now     time.Time
	seq     int
	pending []*fakeTimer
	fired   int
}

// NewFake returns a Fake whose clock starts at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

type fakeTimer struct {
	f    *Fake
	at   time.Time
	seq  int
	fn   func(now time.Time)
	done bool
}

func (t *fakeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.f.remove(t)
	return true
}

// Now implements Scheduler.
func (f *Fake) Now() time.Time { return f.now }

// AfterFunc implements Scheduler.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return f.add(d, func(time.Time) { fn() })
}

// RequestFrame implements Scheduler.
func (f *Fake) RequestFrame(fn func(now time.Time)) Timer {
	return f.add(FrameInterval, fn)
}

func (f *Fake) add(d time.Duration, fn func(time.Time)) *fakeTimer {
	f.seq++
	t := &fakeTimer{f: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	return t
}

func (f *Fake) remove(t *fakeTimer) {
	for i, p := range f.pending {
		if p == t {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, running every callback that becomes
// due. Callbacks scheduled while advancing run too if they fall due within d.
func (f *Fake) Advance(d time.Duration) {
	end := f.now.Add(d)
	for {
		next := f.next(end)
		if next == nil {
			break
		}
		f.remove(next)
		next.done = true
		if next.at.After(f.now) {
			f.now = next.at
		}
		f.fired++
		next.fn(f.now)
	}
	f.now = end
}

// AdvanceFrames advances the clock by n frame intervals.
func (f *Fake) AdvanceFrames(n int) {
	for range n {
		f.Advance(FrameInterval)
	}
}

func (f *Fake) next(end time.Time) *fakeTimer {
	if len(f.pending) == 0 {
		return nil
	}
	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].at.Equal(f.pending[j].at) {
			return f.pending[i].seq < f.pending[j].seq
		}
		return f.pending[i].at.Before(f.pending[j].at)
	})
	if f.pending[0].at.After(end) {
		return nil
	}
	return f.pending[0]
}

// Pending returns the number of scheduled callbacks that have not run.
func (f *Fake) Pending() int { return len(f.pending) }

// Fired returns the number of callbacks that have run.
func (f *Fake) Fired() int { return f.fired }
