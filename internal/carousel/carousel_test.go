package carousel

import (
	"testing"
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newCarousel(n int) (*schedule.Fake, *Controller[string]) {
	f := schedule.NewFake(epoch)
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	return f, New(f, items)
}

func TestCycleClosure(t *testing.T) {
	f, c := newCarousel(3)
	prev := 0
	for i, w := range []int{1, 2, 0} {
		f.Advance(DefaultInterval - time.Millisecond)
		if got := c.State().Index; got != prev {
			t.Fatalf("advanced early at step %d: index %d, want %d", i, got, prev)
		}
		prev = w
		f.Advance(time.Millisecond)
		if got := c.State().Index; got != w {
			t.Fatalf("after %d intervals index = %d, want %d", i+1, got, w)
		}
	}
}

func TestNoAdvanceBeforeInterval(t *testing.T) {
	f, c := newCarousel(3)
	f.Advance(DefaultInterval - time.Millisecond)
	if got := c.State().Index; got != 0 {
		t.Errorf("index = %d before the first interval, want 0", got)
	}
}

func TestPauseThenResumeStartsFreshWindow(t *testing.T) {
	pauses := []time.Duration{time.Millisecond, 2 * time.Second, 5999 * time.Millisecond}
	for _, pause := range pauses {
		t.Run(pause.String(), func(t *testing.T) {
			f, c := newCarousel(3)
			f.Advance(4 * time.Second)

			c.Pause()
			if !c.State().Paused() {
				t.Fatal("State().Paused() = false after Pause")
			}
			if c.Progress() != 0 {
				t.Errorf("Progress() = %v while paused, want 0", c.Progress())
			}
			f.Advance(pause)
			if got := c.State().Index; got != 0 {
				t.Fatalf("advanced while paused: index %d", got)
			}

			c.Resume()
			// The original window would have ended 2s after the pause began.
			f.Advance(DefaultInterval - time.Millisecond)
			if got := c.State().Index; got != 0 {
				t.Fatalf("advanced before a full window from resume: index %d", got)
			}
			f.Advance(time.Millisecond)
			if got := c.State().Index; got != 1 {
				t.Fatalf("index = %d a full window after resume, want 1", got)
			}
		})
	}
}

func TestLongPauseNeverAdvances(t *testing.T) {
	f, c := newCarousel(3)
	c.Pause()
	f.Advance(time.Minute)
	if got := c.State().Index; got != 0 {
		t.Errorf("index = %d after a long pause, want 0", got)
	}
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d while paused, want 0", f.Pending())
	}
}

func TestJumpToRestartsWindow(t *testing.T) {
	f, c := newCarousel(3)
	f.Advance(5 * time.Second)
	c.JumpTo(2)
	if got := c.State().Index; got != 2 {
		t.Fatalf("index = %d after JumpTo(2)", got)
	}

	f.Advance(DefaultInterval - time.Millisecond)
	if got := c.State().Index; got != 2 {
		t.Fatalf("jumped item lost its dwell: index %d", got)
	}
	f.Advance(time.Millisecond)
	if got := c.State().Index; got != 0 {
		t.Fatalf("index = %d after a full dwell, want 0", got)
	}
}

func TestJumpToWhilePausedStaysPaused(t *testing.T) {
	f, c := newCarousel(3)
	c.Pause()
	c.JumpTo(1)
	f.Advance(2 * DefaultInterval)
	if got := c.State().Index; got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
}

func TestJumpToOutOfRangePanics(t *testing.T) {
	for _, i := range []int{-1, 3, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("JumpTo(%d) did not panic", i)
				}
			}()
			_, c := newCarousel(3)
			c.JumpTo(i)
		}()
	}
}

func TestNewEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New with no items did not panic")
		}
	}()
	New[string](schedule.NewFake(epoch), nil)
}

func TestPrevious(t *testing.T) {
	_, c := newCarousel(3)
	c.Previous()
	if got := c.State().Index; got != 2 {
		t.Errorf("Previous() from 0 = %d, want 2", got)
	}
}

func TestProgress(t *testing.T) {
	f, c := newCarousel(2)
	f.Advance(DefaultInterval / 2)
	if got := c.Progress(); got != 0.5 {
		t.Errorf("Progress() = %v at half window, want 0.5", got)
	}
}

func TestSingleItemNeverSchedules(t *testing.T) {
	f, c := newCarousel(1)
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d for one item, want 0", f.Pending())
	}
	c.Advance()
	if got := c.State().Index; got != 0 {
		t.Errorf("index = %d, want 0", got)
	}
}

func TestOnChange(t *testing.T) {
	f, c := newCarousel(3)
	var states []State
	unsub := c.OnChange(func(s State) { states = append(states, s) })

	f.Advance(DefaultInterval)
	c.Pause()
	c.Resume()
	unsub()
	c.Advance()

	want := []State{
		{Index: 1, Len: 3, Status: Running},
		{Index: 1, Len: 3, Status: Paused},
		{Index: 1, Len: 3, Status: Running},
	}
	if len(states) != len(want) {
		t.Fatalf("got %d notifications %v, want %v", len(states), states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, states[i], want[i])
		}
	}
}

func TestCloseLeavesNothingScheduled(t *testing.T) {
	f, c := newCarousel(3)
	fired := 0
	c.OnChange(func(State) { fired++ })
	f.Advance(3 * time.Second)

	c.Close()
	if f.Pending() != 0 {
		t.Fatalf("Pending() = %d after Close, want 0", f.Pending())
	}
	fired = 0
	f.Advance(time.Minute)
	c.Advance()
	c.Resume()
	if fired != 0 {
		t.Errorf("%d notifications after Close", fired)
	}
	if c.State().Status != Stopped {
		t.Errorf("Status = %v, want stopped", c.State().Status)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		Running:    "running",
		Paused:     "paused",
		Stopped:    "stopped",
		Status(42): "Status(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
