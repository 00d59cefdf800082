// Package tui previews the page in a terminal. The page is rendered as text
// and scrolled with the keyboard, and the same scroll-spy tracker, carousel,
// count-up and letter reveal that run in the browser drive it.
package tui

import (
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rezzedai/bourlier-site/internal/carousel"
	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/countup"
	"github.com/rezzedai/bourlier-site/internal/reveal"
	"github.com/rezzedai/bourlier-site/internal/schedule"
	"github.com/rezzedai/bourlier-site/internal/scrollspy"
)

const (
	headerHeight = 2
	footerHeight = 1

	// linePixels converts scrolled lines to the pixel offset the header
	// backdrop threshold is expressed in.
	linePixels = 20

	repaintInterval = 200 * time.Millisecond
)

// runMsg carries a scheduler callback onto the program's event loop.
type runMsg func()

// Model is the bubbletea model of the preview.
type Model struct {
	content *content.Content
	sched   schedule.Scheduler
	logger  *log.Logger

	observer *scrollspy.GeometryObserver
	tracker  *scrollspy.Tracker
	carousel *carousel.Controller[content.Testimonial]
	metrics  *countup.Group
	reveal   *reveal.Revealer
	repaint  schedule.Timer

	links   []scrollspy.Link
	texts   []string
	heading string

	width, height int
	scrollY       int
	lines         []string
	spans         []span
	registered    bool
	started       bool
	closed        bool
}

// NewModel returns a preview of c driven by sched. Nothing is scheduled
// until Init.
func NewModel(c *content.Content, sched schedule.Scheduler, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	links := make([]scrollspy.Link, len(c.Nav))
	for i, l := range c.Nav {
		links[i] = scrollspy.Link{Label: l.Label, Href: l.Href}
	}
	observer := scrollspy.NewGeometryObserver(scrollspy.DefaultBand, 0)
	return &Model{
		content:  c,
		sched:    sched,
		logger:   logger,
		observer: observer,
		tracker:  scrollspy.NewTracker(observer, logger),
		links:    links,
		texts:    make([]string, len(c.Hero.Metrics)),
		width:    80,
	}
}

// Init mounts the widgets: count-up, heading reveal and the carousel.
func (m *Model) Init() tea.Cmd {
	if m.started {
		return nil
	}
	m.started = true
	m.carousel = carousel.New(m.sched, m.content.Testimonials)
	m.metrics = countup.Animate(m.sched, m.content.MetricValues(), func(i int, text string) {
		m.texts[i] = text
	})
	m.reveal = reveal.New(m.sched, m.content.Hero.Name, reveal.DefaultStep, func(visible string) {
		m.heading = visible
	})
	m.reveal.Start()
	m.scheduleRepaint()
	return nil
}

// scheduleRepaint keeps the carousel progress bar moving. Every callback
// delivered through the program triggers a render.
func (m *Model) scheduleRepaint() {
	m.repaint = m.sched.AfterFunc(repaintInterval, func() {
		if !m.closed {
			m.scheduleRepaint()
		}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Close()
			return m, tea.Quit
		case "down", "j":
			m.scrollTo(m.scrollY + 1)
		case "up", "k":
			m.scrollTo(m.scrollY - 1)
		case "pgdown", " ":
			m.scrollTo(m.scrollY + m.viewport())
		case "pgup":
			m.scrollTo(m.scrollY - m.viewport())
		case "home", "g":
			m.scrollTo(0)
		case "end", "G":
			m.scrollTo(len(m.lines) - 1)
		case "tab", "n":
			m.jumpSection(1)
		case "shift+tab", "N":
			m.jumpSection(-1)
		case "p":
			m.togglePause()
		case "]":
			if m.carousel != nil {
				m.carousel.Advance()
			}
		case "[":
			if m.carousel != nil {
				m.carousel.Previous()
			}
		}
	}
	return m, nil
}

func (m *Model) viewport() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

// resize lays the page out again and registers the sections on the first
// layout.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.lines, m.spans = m.page()
	for _, s := range m.spans {
		m.observer.Place(s.id, float64(s.top), float64(s.height))
	}
	if !m.registered {
		m.registered = true
		sections := make([]scrollspy.Section, len(m.content.Sections))
		for i, s := range m.content.Sections {
			sections[i] = scrollspy.Section{ID: s.ID}
		}
		m.tracker.Register(sections)
	}
	m.logger.Debug("preview: layout", "width", w, "lines", len(m.lines), "sections", len(m.spans))
	m.observer.Resize(float64(m.viewport()))
}

func (m *Model) scrollTo(y int) {
	y = max(min(y, len(m.lines)-1), 0)
	if y == m.scrollY {
		return
	}
	m.scrollY = y
	m.observer.ScrollTo(float64(y))
}

// jumpSection scrolls the next or previous section into the visibility band.
func (m *Model) jumpSection(dir int) {
	if len(m.spans) == 0 {
		return
	}
	i := 0
	if id, ok := m.Active(); ok {
		for j, s := range m.spans {
			if s.id == id {
				i = j + dir
				break
			}
		}
	}
	i = max(min(i, len(m.spans)-1), 0)
	bandTop := int(scrollspy.DefaultBand.TopInset * float64(m.viewport()))
	m.scrollTo(m.spans[i].top - bandTop)
}

func (m *Model) togglePause() {
	if m.carousel == nil {
		return
	}
	if m.carousel.State().Paused() {
		m.carousel.Resume()
	} else {
		m.carousel.Pause()
	}
}

// Active returns the section highlighted in the navigation.
func (m *Model) Active() (string, bool) {
	return m.tracker.Store().Active()
}

// Close cancels every timer and releases the observers.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.tracker.Close()
	schedule.StopAll(m.repaint)
	if m.carousel != nil {
		m.carousel.Close()
	}
	if m.metrics != nil {
		m.metrics.Stop()
	}
	if m.reveal != nil {
		m.reveal.Stop()
	}
}

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.nav())
	b.WriteByte('\n')
	if scrollspy.Scrolled(float64(m.scrollY * linePixels)) {
		b.WriteString(styleDim.Render(strings.Repeat("─", max(m.width, 1))))
	}
	b.WriteByte('\n')

	lines, _ := m.page()
	end := min(m.scrollY+m.viewport(), len(lines))
	for i := m.scrollY; i < m.scrollY+m.viewport(); i++ {
		if i < end {
			b.WriteString(lines[i])
		}
		b.WriteByte('\n')
	}
	b.WriteString(styleDim.Render("j/k scroll · n/N section · p pause · [/] testimonial · q quit"))
	return b.String()
}

func (m *Model) nav() string {
	active, ok := m.Active()
	items := scrollspy.Highlight(m.links, active, ok)
	parts := make([]string, len(items))
	for i, it := range items {
		if it.Active {
			parts[i] = styleNavActive.Render(it.Label)
		} else {
			parts[i] = styleNavItem.Render(it.Label)
		}
	}
	return styleTitle.Render(m.content.Hero.Name) + "  " + strings.Join(parts, "")
}
