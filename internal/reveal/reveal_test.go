package reveal

import (
	"testing"
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLetters(t *testing.T) {
	letters := Letters("Hi é", 10*time.Millisecond)
	if len(letters) != 4 {
		t.Fatalf("len = %d, want 4 runes", len(letters))
	}
	want := []Letter{
		{Char: 'H', Delay: 0},
		{Char: 'i', Delay: 10 * time.Millisecond},
		{Char: ' ', Delay: 20 * time.Millisecond, Space: true},
		{Char: 'é', Delay: 30 * time.Millisecond},
	}
	for i := range want {
		if letters[i] != want[i] {
			t.Errorf("letter %d = %+v, want %+v", i, letters[i], want[i])
		}
	}
}

func TestRevealer(t *testing.T) {
	f := schedule.NewFake(epoch)
	var frames []string
	r := New(f, "Bounded", DefaultStep, func(v string) { frames = append(frames, v) })
	r.Start()

	f.Advance(0)
	if r.Visible() != "B" {
		t.Fatalf("Visible() = %q at t=0, want B", r.Visible())
	}
	f.Advance(2 * DefaultStep)
	if r.Visible() != "Bou" {
		t.Fatalf("Visible() = %q, want Bou", r.Visible())
	}
	f.Advance(time.Second)
	if !r.Complete() || r.Visible() != "Bounded" {
		t.Fatalf("Visible() = %q, Complete() = %v", r.Visible(), r.Complete())
	}
	if len(frames) != len("Bounded") {
		t.Errorf("got %d updates, want %d", len(frames), len("Bounded"))
	}
}

func TestRevealerStop(t *testing.T) {
	f := schedule.NewFake(epoch)
	stopped := false
	r := New(f, "Christian Bourlier", DefaultStep, func(v string) {
		if stopped {
			t.Errorf("sink called after Stop with %q", v)
		}
	})
	r.Start()
	f.Advance(3 * DefaultStep)

	r.Stop()
	stopped = true
	if f.Pending() != 0 {
		t.Fatalf("Pending() = %d after Stop, want 0", f.Pending())
	}
	f.Advance(time.Second)
	if r.Complete() {
		t.Error("stopped revealer completed")
	}
}
