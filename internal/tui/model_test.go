package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezzedai/bourlier-site/internal/carousel"
	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/schedule"
)

func newTestModel(t *testing.T, c *content.Content) (*Model, *schedule.Fake) {
	t.Helper()
	if c == nil {
		var err error
		c, err = content.Default()
		if err != nil {
			t.Fatal(err)
		}
	}
	fake := schedule.NewFake(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	m := NewModel(c, fake, nil)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	return m, fake
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewStartsOnFirstSection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if id, ok := m.Active(); !ok || id != "about" {
		t.Errorf("Active() = %q, %v; want about", id, ok)
	}
}

func TestPreviewSectionJumpsFollowNavigation(t *testing.T) {
	m, _ := newTestModel(t, nil)
	for _, want := range m.content.SectionIDs()[1:] {
		m.Update(key("n"))
		if got, _ := m.Active(); got != want {
			t.Fatalf("after next: Active() = %q, want %q", got, want)
		}
	}
	for _, want := range []string{"writing", "evidence"} {
		m.Update(key("N"))
		if got, _ := m.Active(); got != want {
			t.Fatalf("after previous: Active() = %q, want %q", got, want)
		}
	}
}

func TestPreviewNavHighlightsActive(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Update(key("n"))
	m.Update(key("n"))
	if got, _ := m.Active(); got != "systems" {
		t.Fatalf("Active() = %q, want systems", got)
	}
	view := m.View()
	if !strings.Contains(view, "Systems") || !strings.Contains(view, "SYSTEMS") {
		t.Errorf("view does not show the systems section:\n%s", view)
	}
}

func TestPreviewAnimatesHero(t *testing.T) {
	m, fake := newTestModel(t, nil)
	if m.heading == m.content.Hero.Name {
		t.Fatal("heading fully visible before any time passed")
	}
	fake.Advance(3 * time.Second)

	if m.heading != m.content.Hero.Name {
		t.Errorf("heading = %q, want %q", m.heading, m.content.Hero.Name)
	}
	want := []string{"4", "39", "100%", "0", "6mo→6wk"}
	for i, w := range want {
		if m.texts[i] != w {
			t.Errorf("metric %d = %q, want %q", i, m.texts[i], w)
		}
	}
	if !m.metrics.Done() {
		t.Error("count-up not done")
	}
	view := m.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			t.Errorf("first screen does not show metric %q:\n%s", w, view)
		}
	}
}

func TestPreviewCarousel(t *testing.T) {
	doc := `
sections: [{id: about}, {id: evidence}]
testimonials:
  - {quote: one, author: A}
  - {quote: two, author: B}
  - {quote: three, author: C}
`
	c, err := content.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	m, fake := newTestModel(t, c)

	fake.Advance(carousel.DefaultInterval)
	if got := m.carousel.State().Index; got != 1 {
		t.Fatalf("index after one interval = %d, want 1", got)
	}

	m.Update(key("p"))
	fake.Advance(3 * carousel.DefaultInterval)
	if st := m.carousel.State(); st.Index != 1 || !st.Paused() {
		t.Errorf("paused carousel moved: %+v", st)
	}
	if !strings.Contains(strings.Join(m.testimonials(60), "\n"), "paused") {
		t.Error("paused state not rendered")
	}

	m.Update(key("p"))
	m.Update(key("]"))
	if got := m.carousel.State().Index; got != 2 {
		t.Errorf("index after ] = %d, want 2", got)
	}
	m.Update(key("["))
	m.Update(key("["))
	if got := m.carousel.State().Index; got != 0 {
		t.Errorf("index after [[ = %d, want 0", got)
	}
}

func TestPreviewTestimonialHeightIsStable(t *testing.T) {
	doc := `
sections: [{id: evidence}]
testimonials:
  - {quote: short, author: A}
  - {quote: "a much longer quote that will wrap across several lines when the preview is narrow enough to force it", author: B}
`
	c, err := content.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	m, _ := newTestModel(t, c)
	first := len(m.testimonials(40))
	m.Update(key("]"))
	if second := len(m.testimonials(40)); second != first {
		t.Errorf("testimonial block height changed from %d to %d", first, second)
	}
}

func TestPreviewRunMsg(t *testing.T) {
	m, _ := newTestModel(t, nil)
	ran := false
	m.Update(runMsg(func() { ran = true }))
	if !ran {
		t.Error("runMsg callback not executed")
	}
}

func TestPreviewQuitReleasesEverything(t *testing.T) {
	m, fake := newTestModel(t, nil)
	fake.Advance(100 * time.Millisecond)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if n := fake.Pending(); n != 0 {
		t.Errorf("Pending() = %d after quit, want 0", n)
	}
	if n := m.observer.Subscriptions(); n != 0 {
		t.Errorf("Subscriptions() = %d after quit, want 0", n)
	}
	if _, ok := m.Active(); ok {
		t.Error("active section kept after quit")
	}
}

func TestPreviewSystemsSupplementaryRecords(t *testing.T) {
	m, _ := newTestModel(t, nil)
	lines, _ := m.page()
	page := strings.Join(lines, "\n")
	for _, want := range []string{"// instrumentation", "[GOVERNANCE]", "Constrained Autonomy", "Bourlier.ai"} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not show %q", want)
		}
	}
}

func TestPreviewSectionWithoutLayout(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	c.Sections = append(c.Sections, content.Section{ID: "labs", Title: "Labs"})
	m, _ := newTestModel(t, c)
	lines, spans := m.page()
	last := spans[len(spans)-1]
	if last.id != "labs" || !strings.Contains(lines[last.top], "LABS") {
		t.Errorf("last span = %+v, first line %q", last, lines[last.top])
	}
}
