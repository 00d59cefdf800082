package scrollspy

import (
	"errors"
	"fmt"
)

// ErrNoElement is returned by an Observer when a section has no rendered
// element to observe.
var ErrNoElement = errors.New("no element for section")

// Section is a named region of the page. Element is an opaque handle owned by
// the platform; observers that can resolve sections by ID may leave it nil.
type Section struct {
	ID      string
	Element any
}

// Entry is a single observation: whether the section is inside the band.
type Entry struct {
	ID           string
	Intersecting bool
}

// Observer watches sections and reports band transitions.
type Observer interface {
	// Subscribe starts watching s and calls fn for each observation. The
	// returned function releases the subscription. Subscribe returns
	// ErrNoElement when s cannot be located.
	Subscribe(s Section, fn func(Entry)) (unsubscribe func(), err error)
}

// GeometryObserver is an Observer that computes intersections from section
// positions and a scroll offset instead of a rendering engine.
//
// Like IntersectionObserver, it reports the initial state of every new
// subscription on the next evaluation and afterwards only reports changes.
// Entries are delivered in subscription order.
type GeometryObserver struct {
	band     Band
	viewport float64
	scrollY  float64
	layout   map[string]Rect
	subs     []*geometrySub
}

type geometrySub struct {
	id     string
	fn     func(Entry)
	seen   bool
	inside bool
}

// NewGeometryObserver returns an observer for a viewport of the given height.
func NewGeometryObserver(band Band, viewportHeight float64) *GeometryObserver {
	return &GeometryObserver{
		band:     band,
		viewport: viewportHeight,
		layout:   make(map[string]Rect),
	}
}

// Place positions section id at [top, top+height) in page coordinates.
func (o *GeometryObserver) Place(id string, top, height float64) {
	o.layout[id] = Rect{Top: top, Bottom: top + height}
}

// Subscribe implements Observer.
func (o *GeometryObserver) Subscribe(s Section, fn func(Entry)) (func(), error) {
	if _, ok := o.layout[s.ID]; !ok {
		return nil, fmt.Errorf("section %q: %w", s.ID, ErrNoElement)
	}
	sub := &geometrySub{id: s.ID, fn: fn}
	o.subs = append(o.subs, sub)
	return func() { o.unsubscribe(sub) }, nil
}

func (o *GeometryObserver) unsubscribe(sub *geometrySub) {
	for i, s := range o.subs {
		if s == sub {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// ScrollTo moves the viewport top to y and delivers resulting entries.
func (o *GeometryObserver) ScrollTo(y float64) {
	o.scrollY = y
	o.Refresh()
}

// ScrollBy moves the viewport by dy.
func (o *GeometryObserver) ScrollBy(dy float64) {
	o.ScrollTo(o.scrollY + dy)
}

// Resize changes the viewport height and delivers resulting entries.
func (o *GeometryObserver) Resize(h float64) {
	o.viewport = h
	o.Refresh()
}

// ScrollY returns the current scroll offset.
func (o *GeometryObserver) ScrollY() float64 { return o.scrollY }

// ViewportHeight returns the current viewport height.
func (o *GeometryObserver) ViewportHeight() float64 { return o.viewport }

// Subscriptions returns the number of live subscriptions.
func (o *GeometryObserver) Subscriptions() int { return len(o.subs) }

// Refresh evaluates every subscription against the current geometry.
func (o *GeometryObserver) Refresh() {
	subs := append([]*geometrySub(nil), o.subs...)
	for _, sub := range subs {
		r := o.layout[sub.id]
		inside := o.band.Intersects(Rect{Top: r.Top - o.scrollY, Bottom: r.Bottom - o.scrollY}, o.viewport)
		if sub.seen && inside == sub.inside {
			continue
		}
		sub.seen = true
		sub.inside = inside
		sub.fn(Entry{ID: sub.id, Intersecting: inside})
	}
}
