// Package reveal implements the letter-stagger entrance used for headings:
// each letter fades in a fixed step after the previous one.
package reveal

import (
	"time"
	"unicode"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

// DefaultStep is the delay between consecutive letters.
const DefaultStep = 30 * time.Millisecond

// Letter is one rune of a staggered heading.
type Letter struct {
	Char  rune
	Delay time.Duration
	// Space marks whitespace, which keeps its slot but is not animated.
	Space bool
}

// Letters splits text into runes with delay i*step for the i-th rune.
func Letters(text string, step time.Duration) []Letter {
	runes := []rune(text)
	out := make([]Letter, len(runes))
	for i, r := range runes {
		out[i] = Letter{Char: r, Delay: time.Duration(i) * step, Space: unicode.IsSpace(r)}
	}
	return out
}

// Revealer reveals a heading letter by letter.
type Revealer struct {
	sched   schedule.Scheduler
	letters []Letter
	sink    func(visible string)
	shown   int
	timers  []schedule.Timer
	stopped bool
}

// New returns a Revealer for text. sink receives the visible prefix after
// each letter appears.
func New(sched schedule.Scheduler, text string, step time.Duration, sink func(visible string)) *Revealer {
	return &Revealer{sched: sched, letters: Letters(text, step), sink: sink}
}

// Start schedules every letter.
func (r *Revealer) Start() {
	if r.timers != nil || r.stopped {
		return
	}
	r.timers = make([]schedule.Timer, len(r.letters))
	for i, l := range r.letters {
		r.timers[i] = r.sched.AfterFunc(l.Delay, func() { r.show(i) })
	}
}

func (r *Revealer) show(i int) {
	r.timers[i] = nil
	if r.stopped || i < r.shown {
		return
	}
	r.shown = i + 1
	r.sink(r.Visible())
}

// Visible returns the revealed prefix.
func (r *Revealer) Visible() string {
	runes := make([]rune, r.shown)
	for i := range runes {
		runes[i] = r.letters[i].Char
	}
	return string(runes)
}

// Complete reports whether every letter is visible.
func (r *Revealer) Complete() bool { return r.shown == len(r.letters) }

// Stop cancels outstanding letters.
func (r *Revealer) Stop() {
	r.stopped = true
	schedule.StopAll(r.timers...)
	r.timers = nil
}
