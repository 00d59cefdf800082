// Package carousel cycles through a fixed list of items on a timer.
//
// The controller is an explicit state machine:
//
//	        Pause()             Close()
//	Running ───────► Paused ───────────► Stopped
//	   ▲               │                    ▲
//	   └───────────────┘                    │
//	        Resume()                        │
//	Running ────────────────────────────────┘
//	                  Close()
//
// While Running, the active index advances every Interval. Any change of the
// index, automatic or manual, restarts the window so each item gets a full
// dwell. Resume always starts a fresh window.
package carousel

import (
	"fmt"
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

// DefaultInterval is the dwell time of each item.
const DefaultInterval = 6000 * time.Millisecond

// Status is the controller's state.
type Status int

const (
	// Running means the timer advances the index.
	Running Status = iota
	// Paused means the pointer or focus is over the widget.
	Paused
	// Stopped means the controller was closed.
	Stopped
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a read-only snapshot for renderers.
type State struct {
	Index  int
	Len    int
	Status Status
}

// Paused reports whether the controller is paused.
func (s State) Paused() bool { return s.Status == Paused }

// Option configures a Controller.
type Option func(*config)

type config struct {
	interval time.Duration
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// Controller cycles over items. It is not safe for concurrent use; all calls
// must come from the scheduler's event loop.
type Controller[T any] struct {
	sched     schedule.Scheduler
	items     []T
	interval  time.Duration
	index     int
	status    Status
	timer     schedule.Timer
	window    time.Time
	listeners map[int]func(State)
	nextID    int
}

// New starts a running controller over items. It panics if items is empty.
func New[T any](sched schedule.Scheduler, items []T, opts ...Option) *Controller[T] {
	if len(items) == 0 {
		panic("carousel: no items")
	}
	cfg := config{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Controller[T]{
		sched:     sched,
		items:     append([]T(nil), items...),
		interval:  cfg.interval,
		status:    Running,
		listeners: make(map[int]func(State)),
	}
	c.restart()
	return c
}

// State returns the current snapshot.
func (c *Controller[T]) State() State {
	return State{Index: c.index, Len: len(c.items), Status: c.status}
}

// Current returns the active item.
func (c *Controller[T]) Current() T { return c.items[c.index] }

// Items returns a copy of the items.
func (c *Controller[T]) Items() []T { return append([]T(nil), c.items...) }

// OnChange calls fn after every state change.
func (c *Controller[T]) OnChange(fn func(State)) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// Advance moves to the next item, wrapping at the end.
func (c *Controller[T]) Advance() {
	if c.status == Stopped {
		return
	}
	c.setIndex((c.index + 1) % len(c.items))
}

// Previous moves to the previous item, wrapping at the start.
func (c *Controller[T]) Previous() {
	if c.status == Stopped {
		return
	}
	c.setIndex((c.index - 1 + len(c.items)) % len(c.items))
}

// JumpTo makes item i active. The UI only offers valid targets, so an out of
// range index is a wiring bug and panics.
func (c *Controller[T]) JumpTo(i int) {
	if i < 0 || i >= len(c.items) {
		panic(fmt.Sprintf("carousel: index %d out of range [0, %d]", i, len(c.items)-1))
	}
	if c.status == Stopped {
		return
	}
	c.setIndex(i)
}

// Pause stops automatic advancing and resets the progress indicator.
func (c *Controller[T]) Pause() {
	if c.status != Running {
		return
	}
	c.status = Paused
	c.stopTimer()
	c.notify()
}

// Resume restarts automatic advancing with a full window.
func (c *Controller[T]) Resume() {
	if c.status != Paused {
		return
	}
	c.status = Running
	c.restart()
	c.notify()
}

// Progress returns the elapsed fraction of the current window in [0, 1]. It
// is 0 while paused or stopped.
func (c *Controller[T]) Progress() float64 {
	if c.status != Running || len(c.items) < 2 {
		return 0
	}
	p := float64(c.sched.Now().Sub(c.window)) / float64(c.interval)
	return min(max(p, 0), 1)
}

// Close cancels the timer. The controller ignores every later call.
func (c *Controller[T]) Close() {
	if c.status == Stopped {
		return
	}
	c.status = Stopped
	c.stopTimer()
	c.notify()
	clear(c.listeners)
}

func (c *Controller[T]) setIndex(i int) {
	if i == c.index {
		return
	}
	c.index = i
	if c.status == Running {
		c.restart()
	}
	c.notify()
}

func (c *Controller[T]) restart() {
	c.stopTimer()
	c.window = c.sched.Now()
	if len(c.items) < 2 {
		return
	}
	c.timer = c.sched.AfterFunc(c.interval, c.tick)
}

// tick checks the status when the timer fires, not when it was armed.
func (c *Controller[T]) tick() {
	c.timer = nil
	if c.status != Running {
		return
	}
	c.Advance()
}

func (c *Controller[T]) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T]) notify() {
	s := c.State()
	for _, fn := range c.listeners {
		fn(s)
	}
}
