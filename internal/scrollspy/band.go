// Package scrollspy tracks which page section the reader is looking at and
// highlights the matching navigation link.
//
// A section counts as in focus when it intersects a narrow horizontal band of
// the viewport, [top+40%, bottom-55%], rather than the whole viewport. Tall
// adjacent sections therefore never flicker between each other, and the
// section nearest the reading focal point wins.
//
// The band math is pure. Platform observation sits behind [Observer], so the
// same [Tracker] runs against the browser's IntersectionObserver, the
// terminal preview, and tests.
package scrollspy

import (
	"fmt"
	"math"
)

// Band is a vertical sub-region of the viewport expressed as insets from the
// top and bottom edges, each a fraction of the viewport height.
type Band struct {
	TopInset    float64
	BottomInset float64
}

// DefaultBand is the strip slightly above the vertical center of the viewport.
var DefaultBand = Band{TopInset: 0.40, BottomInset: 0.55}

// Rect is the vertical extent of an element relative to the viewport top.
type Rect struct {
	Top    float64
	Bottom float64
}

// basisPoints is the precision insets are applied at. Working in whole
// basis points keeps edges exact for whole-pixel viewports: 0.55 has no exact
// binary form, 5500/10000 of 1000 does.
const basisPoints = 10000

// Bounds returns the band's top and bottom edges for a viewport of height h.
func (b Band) Bounds(h float64) (top, bottom float64) {
	topBP := math.Round(b.TopInset * basisPoints)
	bottomBP := math.Round(b.BottomInset * basisPoints)
	return h * topBP / basisPoints, h * (basisPoints - bottomBP) / basisPoints
}

// Intersects reports whether r overlaps the band of a viewport of height h.
func (b Band) Intersects(r Rect, h float64) bool {
	top, bottom := b.Bounds(h)
	return r.Top < bottom && r.Bottom > top
}

// RootMargin renders the band as an IntersectionObserver rootMargin.
func (b Band) RootMargin() string {
	return fmt.Sprintf("-%s%% 0px -%s%% 0px", percent(b.TopInset), percent(b.BottomInset))
}

func percent(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*basisPoints)/100)
}
