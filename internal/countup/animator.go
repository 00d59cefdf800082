package countup

import (
	"fmt"
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

// Phase is an Animator's lifecycle stage.
type Phase int

const (
	// Idle means Start has not been called.
	Idle Phase = iota
	// Delayed means the entrance delay is pending.
	Delayed
	// Animating means frames are being scheduled.
	Animating
	// Done means the final value is displayed. No further frames run.
	Done
	// Stopped means the animator was torn down before finishing.
	Stopped
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Delayed:
		return "delayed"
	case Animating:
		return "animating"
	case Done:
		return "done"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Animator drives one metric's display through its count-up.
type Animator struct {
	sched    schedule.Scheduler
	metric   Metric
	delay    time.Duration
	duration time.Duration
	sink     func(text string)

	phase Phase
	start time.Time
	timer schedule.Timer
	text  string
}

// NewAnimator returns an animator writing display text to sink.
func NewAnimator(sched schedule.Scheduler, m Metric, delay time.Duration, sink func(text string)) *Animator {
	return &Animator{
		sched:    sched,
		metric:   m,
		delay:    delay,
		duration: Duration,
		sink:     sink,
	}
}

// Start schedules the animation. Animated metrics display zero immediately;
// static ones display nothing until the delay elapses.
func (a *Animator) Start() {
	if a.phase != Idle {
		return
	}
	a.phase = Delayed
	if a.metric.Animated {
		a.show(a.metric.Format(0))
	}
	a.timer = a.sched.AfterFunc(a.delay, a.begin)
}

func (a *Animator) begin() {
	a.timer = nil
	if a.phase != Delayed {
		return
	}
	if !a.metric.Animated {
		a.phase = Done
		a.show(a.metric.Literal)
		return
	}
	a.phase = Animating
	a.start = a.sched.Now()
	a.frame(a.start)
}

func (a *Animator) frame(now time.Time) {
	a.timer = nil
	if a.phase != Animating {
		return
	}
	elapsed := now.Sub(a.start)
	a.show(a.metric.Format(DisplayValue(a.metric.Target, elapsed, a.duration)))
	if Progress(elapsed, a.duration) == 1 {
		a.phase = Done
		return
	}
	a.timer = a.sched.RequestFrame(a.frame)
}

func (a *Animator) show(text string) {
	a.text = text
	a.sink(text)
}

// Stop cancels any pending delay or frame. The sink is never called again.
func (a *Animator) Stop() {
	if a.phase == Done || a.phase == Stopped {
		return
	}
	a.phase = Stopped
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Phase returns the current lifecycle stage.
func (a *Animator) Phase() Phase { return a.phase }

// Text returns the last displayed text.
func (a *Animator) Text() string { return a.text }

// Group animates a row of metrics with staggered starts.
type Group struct {
	animators []*Animator
}

// Animate parses values and starts one staggered Animator per value. sink
// receives the metric index with each display update.
func Animate(sched schedule.Scheduler, values []string, sink func(i int, text string)) *Group {
	g := &Group{animators: make([]*Animator, len(values))}
	for i, v := range values {
		g.animators[i] = NewAnimator(sched, Parse(v), Stagger(i), func(text string) { sink(i, text) })
	}
	for _, a := range g.animators {
		a.Start()
	}
	return g
}

// Texts returns the current display text of every metric.
func (g *Group) Texts() []string {
	out := make([]string, len(g.animators))
	for i, a := range g.animators {
		out[i] = a.Text()
	}
	return out
}

// Done reports whether every animator reached its final value.
func (g *Group) Done() bool {
	for _, a := range g.animators {
		if a.Phase() != Done {
			return false
		}
	}
	return true
}

// Stop cancels every animator.
func (g *Group) Stop() {
	for _, a := range g.animators {
		a.Stop()
	}
}
