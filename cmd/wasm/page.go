//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"strconv"
	"syscall/js"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/rezzedai/bourlier-site/internal/carousel"
	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/copybutton"
	"github.com/rezzedai/bourlier-site/internal/countup"
	"github.com/rezzedai/bourlier-site/internal/reveal"
	"github.com/rezzedai/bourlier-site/internal/schedule"
	"github.com/rezzedai/bourlier-site/internal/scrollspy"
	"github.com/rezzedai/bourlier-site/internal/visitor"
)

// page owns every widget mounted on the document.
type page struct {
	sched  schedule.Scheduler
	logger *log.Logger

	tracker  *scrollspy.Tracker
	carousel *carousel.Controller[content.Testimonial]
	metrics  *countup.Group
	reveal   *reveal.Revealer
	progress schedule.Timer
	menu     *scrollspy.Menu
	copies   []*copybutton.Button

	release []func()
	closed  bool
}

func newPage(sched schedule.Scheduler, logger *log.Logger) *page {
	return &page{sched: sched, logger: logger}
}

func (p *page) mount(c *content.Content) {
	root := document().Get("documentElement")
	setClass(root, "wasm", true)

	p.mountPalette(root)
	p.mountGreeting()
	p.mountNav(c)
	p.mountMenu()
	p.mountMetrics()
	p.mountReveal(c.Hero.Name)
	p.mountCarousel(c.Testimonials)
	p.mountCopyButtons()

	p.release = append(p.release, listen(window(), "pagehide", func(js.Value) { p.close() }))
}

// mountPalette repaints with the visitor's local time; the server only knows
// its own.
func (p *page) mountPalette(root js.Value) {
	pal := visitor.PaletteAt(time.Now())
	root.Get("dataset").Set("palette", pal.Name)
	style := root.Get("style")
	style.Call("setProperty", "--accent", pal.Accent)
	style.Call("setProperty", "--warm", pal.Warm)
}

func (p *page) mountGreeting() {
	el := byID("greeting")
	if !exists(el) {
		return
	}
	g, err := visitor.Greet(context.Background(), newLocalStore(), "", time.Now())
	if err != nil {
		p.logger.Warn("greeting", "err", err)
		return
	}
	el.Set("textContent", g.Message)
}

func (p *page) mountNav(c *content.Content) {
	anchors := queryAll(document(), ".nav-link")
	links := make([]scrollspy.Link, len(anchors))
	for i, a := range anchors {
		links[i] = scrollspy.Link{Label: a.Get("textContent").String(), Href: a.Call("getAttribute", "href").String()}
	}

	p.tracker = scrollspy.NewTracker(newIntersectionObserver(scrollspy.DefaultBand), p.logger)
	p.release = append(p.release, p.tracker.Store().Subscribe(func(id string, ok bool) {
		for i, item := range scrollspy.Highlight(links, id, ok) {
			setClass(anchors[i], "active", item.Active)
		}
	}))
	sections := make([]scrollspy.Section, len(c.Sections))
	for i, s := range c.Sections {
		sections[i] = scrollspy.Section{ID: s.ID}
	}
	p.tracker.Register(sections)

	header := byID("site-header")
	if !exists(header) {
		return
	}
	update := func(js.Value) {
		setClass(header, "scrolled", scrollspy.Scrolled(window().Get("scrollY").Float()))
	}
	update(js.Undefined())
	p.release = append(p.release, listen(window(), "scroll", update))
}

// mountMenu drives the small-screen overlay. The body stops scrolling while
// it is open.
func (p *page) mountMenu() {
	toggle, overlay := byID("menu-toggle"), byID("mobile-menu")
	if !exists(toggle) || !exists(overlay) {
		return
	}
	body := document().Get("body")
	p.menu = scrollspy.NewMenu()
	p.release = append(p.release, p.menu.OnChange(func(open bool) {
		setClass(body, "menu-open", open)
		toggle.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
		overlay.Call("setAttribute", "aria-hidden", strconv.FormatBool(!open))
		if open {
			body.Get("style").Set("overflow", "hidden")
		} else {
			body.Get("style").Set("overflow", "")
		}
	}))
	p.release = append(p.release, listen(toggle, "click", func(js.Value) { p.menu.Toggle() }))
	for _, a := range queryAll(overlay, ".menu-link") {
		href := a.Call("getAttribute", "href").String()
		p.release = append(p.release, listen(a, "click", func(js.Value) {
			if id, ok := p.menu.Select(href); ok {
				p.logger.Debug("menu", "section", id)
			}
		}))
	}
}

// mountCopyButtons wires every [data-copy] button to copy the text of the
// element it names.
func (p *page) mountCopyButtons() {
	clipboard := window().Get("navigator").Get("clipboard")
	for _, btn := range queryAll(document(), "[data-copy]") {
		target := byID(btn.Get("dataset").Get("copy").String())
		if !exists(target) || !exists(clipboard) {
			continue
		}
		b := copybutton.New(p.sched, func(label string) { btn.Set("textContent", label) })
		p.copies = append(p.copies, b)
		p.release = append(p.release, listen(btn, "click", func(js.Value) {
			clipboard.Call("writeText", target.Get("textContent").String())
			b.Press()
		}))
	}
}

func (p *page) mountMetrics() {
	els := queryAll(document(), ".metric-value")
	values := make([]string, len(els))
	for i, el := range els {
		values[i] = el.Get("dataset").Get("metric").String()
	}
	p.metrics = countup.Animate(p.sched, values, func(i int, text string) {
		els[i].Set("textContent", text)
	})
}

func (p *page) mountReveal(name string) {
	spans := queryAll(document(), "#hero-name .letter")
	if len(spans) == 0 {
		return
	}
	shown := 0
	p.reveal = reveal.New(p.sched, name, reveal.DefaultStep, func(visible string) {
		n := min(utf8.RuneCountInString(visible), len(spans))
		for ; shown < n; shown++ {
			setClass(spans[shown], "shown", true)
		}
	})
	p.reveal.Start()
}

func (p *page) mountCarousel(items []content.Testimonial) {
	root := byID("testimonials")
	if !exists(root) || len(items) == 0 {
		return
	}
	figures := queryAll(root, ".testimonial")
	dots := queryAll(root, "[data-jump]")
	if len(figures) != len(items) {
		p.logger.Warn("carousel: markup does not match content", "figures", len(figures), "testimonials", len(items))
		return
	}

	p.carousel = carousel.New(p.sched, items)
	p.release = append(p.release, p.carousel.OnChange(func(st carousel.State) {
		for i, f := range figures {
			setClass(f, "active", i == st.Index)
		}
		for i, d := range dots {
			setClass(d, "active", i == st.Index)
		}
	}))
	if len(dots) > 0 {
		setClass(dots[0], "active", true)
	}

	for _, ev := range []string{"pointerenter", "focusin"} {
		p.release = append(p.release, listen(root, ev, func(js.Value) { p.carousel.Pause() }))
	}
	for _, ev := range []string{"pointerleave", "focusout"} {
		p.release = append(p.release, listen(root, ev, func(js.Value) { p.carousel.Resume() }))
	}
	for _, d := range dots {
		i, err := strconv.Atoi(d.Get("dataset").Get("jump").String())
		if err != nil {
			continue
		}
		p.release = append(p.release, listen(d, "click", func(js.Value) { p.carousel.JumpTo(i) }))
	}

	if bar := root.Call("querySelector", ".carousel-progress .bar"); exists(bar) {
		p.animateProgress(bar.Get("style"))
	}
}

// animateProgress redraws the progress bar every frame until the page closes.
func (p *page) animateProgress(style js.Value) {
	var frame func(time.Time)
	frame = func(time.Time) {
		if p.closed {
			return
		}
		style.Set("width", fmt.Sprintf("%.2f%%", p.carousel.Progress()*100))
		p.progress = p.sched.RequestFrame(frame)
	}
	p.progress = p.sched.RequestFrame(frame)
}

func (p *page) close() {
	if p.closed {
		return
	}
	p.closed = true
	schedule.StopAll(p.progress)
	if p.tracker != nil {
		p.tracker.Close()
	}
	if p.carousel != nil {
		p.carousel.Close()
	}
	if p.metrics != nil {
		p.metrics.Stop()
	}
	if p.reveal != nil {
		p.reveal.Stop()
	}
	if p.menu != nil {
		p.menu.Close()
	}
	for _, b := range p.copies {
		b.Close()
	}
	for _, fn := range p.release {
		fn()
	}
	p.release = nil
	p.logger.Debug("page closed")
}
