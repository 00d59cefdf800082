package schedule

import (
	"context"
	"sync"
	"time"
)

// Loop is a real-time Scheduler whose callbacks all run on one dispatcher.
//
// By default the dispatcher is the goroutine running [Loop.Run]. A different
// dispatcher, such as a bubbletea program, can be injected with NewLoopWith.
type Loop struct {
	dispatch func(func())
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
	frame    time.Duration
}

// NewLoop creates a loop that dispatches onto its own goroutine. Run must be
// called for callbacks to execute. Once Run has returned, callbacks are
// dropped instead of queued.
func NewLoop() *Loop {
	l := &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
		frame: FrameInterval,
	}
	l.dispatch = func(fn func()) {
		select {
		case l.queue <- fn:
		case <-l.done:
		}
	}
	return l
}

// NewLoopWith creates a loop that hands callbacks to dispatch. The caller
// guarantees dispatch executes them one at a time and in order.
func NewLoopWith(dispatch func(func())) *Loop {
	return &Loop{dispatch: dispatch, frame: FrameInterval}
}

// Run executes queued callbacks until ctx is done. It is only meaningful for
// loops created with NewLoop.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopOnce.Do(func() {
		if l.done != nil {
			close(l.done)
		}
	})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post queues fn to run on the dispatcher.
func (l *Loop) Post(fn func()) {
	l.dispatch(fn)
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.dispatch(func() {
			if t.claim() {
				fn()
			}
		})
	})
	return t
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn func(now time.Time)) Timer {
	return l.AfterFunc(l.frame, func() { fn(time.Now()) })
}

// loopTimer decides on the dispatcher whether its callback may run. A Go
// timer can fire and enqueue the callback just before Stop is called; the
// state flag makes that queued callback a no-op.
type loopTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

func (t *loopTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}
