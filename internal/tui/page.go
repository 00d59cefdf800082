package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rezzedai/bourlier-site/internal/content"
)

const (
	maxWidth      = 100
	minWidth      = 40
	progressWidth = 30
)

// span is a section's position in the rendered page, in lines.
type span struct {
	id     string
	top    int
	height int
}

// page renders the document. Section heights do not depend on animation
// state, so spans stay valid between layouts.
func (m *Model) page() ([]string, []span) {
	w := min(max(m.width, minWidth), maxWidth) - 2
	var (
		lines []string
		spans []span
	)
	for _, s := range m.content.Sections {
		top := len(lines)
		lines = append(lines, m.section(s, w)...)
		lines = append(lines, "")
		spans = append(spans, span{id: s.ID, top: top, height: len(lines) - top})
	}
	return lines, spans
}

func wrap(style lipgloss.Style, text string, w int) []string {
	text = strings.ReplaceAll(text, "**", "")
	return strings.Split(style.Width(w).Render(text), "\n")
}

func (m *Model) section(s content.Section, w int) []string {
	out := []string{styleTitle.Render(strings.ToUpper(firstNonEmpty(s.Title, s.ID)))}
	if s.Subtitle != "" {
		out = append(out, styleDim.Render(s.Subtitle))
	}
	out = append(out, "")

	c := m.content
	switch s.ID {
	case "about":
		out = append(out, m.hero(w)...)
	case "journey":
		if c.Signal.Quote != "" {
			out = append(out, wrap(styleText, "“"+c.Signal.Quote+"”", w)...)
			out = append(out, styleDim.Render("— "+c.Signal.Author+", "+c.Signal.Title), "")
		}
		for _, e := range c.Timeline {
			out = append(out, styleDim.Render(e.Span())+"  "+styleHeading.Render(e.Title))
			out = append(out, wrap(styleText, e.Description, w)...)
			out = append(out, "")
		}
	case "systems":
		for _, sys := range c.Systems {
			out = append(out, styleHeading.Render(sys.Name)+"  "+styleMetric.Render(sys.Status))
			out = append(out, wrap(styleText, sys.Description, w)...)
			for _, d := range sys.Details {
				out = append(out, styleText.Render("  • "+d))
			}
			out = append(out, styleDim.Render("  "+strings.Join(sys.Stack, " · ")), "")
		}
		if len(c.Instruments.Items) > 0 {
			out = append(out, styleDim.Render(c.Instruments.Title))
			for _, item := range c.Instruments.Items {
				out = append(out, wrap(styleText, "  › "+item, w)...)
			}
			out = append(out, "")
		}
		if c.Approach.Philosophy != "" {
			out = append(out, styleHeading.Render(c.Approach.Title), styleWarm.Render(c.Approach.Philosophy), "")
		}
		if g := c.Approach.Governance; g.Title != "" {
			out = append(out, styleMetric.Render(g.Tag)+" "+styleHeading.Render(g.Title))
			out = append(out, wrap(styleText, g.Description, w)...)
			out = append(out, "")
		}
		for _, p := range c.Packages {
			out = append(out, styleMetric.Render(fmt.Sprintf("  %-12s", p.Name))+styleText.Render(p.Description))
		}
		if p := c.Portfolio; p.Name != "" {
			out = append(out, "", styleHeading.Render(p.Name)+"  "+styleMetric.Render(p.Status))
			out = append(out, wrap(styleText, p.Description, w)...)
			out = append(out, styleDim.Render("  "+strings.Join(p.Stack, " · ")))
		}
	case "evidence":
		out = append(out, m.testimonials(w)...)
		out = append(out, "")
		for _, cat := range c.Skills {
			out = append(out, styleHeading.Render(cat.Label))
			out = append(out, wrap(styleText, strings.Join(cat.Skills, " · "), w)...)
		}
		for _, cert := range c.Certifications {
			out = append(out, styleWarm.Render("  ✓ "+cert))
		}
	case "writing":
		for _, a := range c.Articles {
			out = append(out, wrap(styleHeading, a.Title, w)...)
			out = append(out, styleDim.Render("  "+a.Date+"  "+strings.Join(a.Tags, ", ")))
		}
	case "contact":
		out = append(out, wrap(styleText, c.Contact.Description, w)...)
		for _, l := range c.Contact.Links {
			out = append(out, styleMetric.Render(fmt.Sprintf("  %-10s", l.Label))+styleDim.Render(l.URL))
		}
	}
	return out
}

// hero puts the metrics right under the heading so the count-up plays on
// the first screen of small terminals.
func (m *Model) hero(w int) []string {
	h := m.content.Hero
	out := []string{
		styleWarm.Render("● " + h.Availability),
		styleHeading.Render(m.heading),
		styleText.Render(h.Subtitle),
		"",
	}
	for i, metric := range h.Metrics {
		text := ""
		if i < len(m.texts) {
			text = m.texts[i]
		}
		out = append(out, styleMetric.Render(fmt.Sprintf("  %-10s", text))+styleDim.Render(metric.Label))
	}
	out = append(out, "", styleMetric.Render(h.Tagline))
	out = append(out, wrap(styleText, h.Description, w)...)
	out = append(out, "", styleDim.Render(h.ScrollCTA+" ↓"))
	return out
}

// testimonials renders the current testimonial padded to the tallest one,
// followed by the progress bar and position dots.
func (m *Model) testimonials(w int) []string {
	ts := m.content.Testimonials
	blocks := make([][]string, len(ts))
	tallest := 0
	for i, t := range ts {
		b := wrap(styleText, "“"+t.Quote+"”", w)
		b = append(b, styleDim.Render("— "+t.Author+", "+t.Title))
		blocks[i] = b
		tallest = max(tallest, len(b))
	}

	current, paused, progress := 0, false, 0.0
	if m.carousel != nil {
		st := m.carousel.State()
		current, paused, progress = st.Index, st.Paused(), m.carousel.Progress()
	}
	out := append([]string(nil), blocks[current]...)
	for len(out) < tallest {
		out = append(out, "")
	}
	if len(ts) < 2 {
		return out
	}

	filled := int(progress * progressWidth)
	bar := styleMetric.Render(strings.Repeat(iconBar, filled)) + styleDim.Render(strings.Repeat(iconTrack, progressWidth-filled))
	dots := make([]string, len(ts))
	for i := range ts {
		dots[i] = iconDotEmpty
		if i == current {
			dots[i] = iconDot
		}
	}
	status := ""
	if paused {
		status = styleWarm.Render("  paused")
	}
	return append(out, bar, styleMetric.Render(strings.Join(dots, " "))+status)
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
