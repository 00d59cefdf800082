package scrollspy

import "strings"

// ScrolledThreshold is the scroll offset past which the header switches to
// its opaque backdrop.
const ScrolledThreshold = 80

// Link is a navigation entry pointing at a section, e.g. {"About", "#about"}.
type Link struct {
	Label string
	Href  string
}

// NavItem is a Link annotated for rendering.
type NavItem struct {
	Link
	Active bool
}

// SectionID returns the section id a link targets, or "" for links that do
// not point into the page.
func SectionID(href string) string {
	id, ok := strings.CutPrefix(href, "#")
	if !ok {
		return ""
	}
	return id
}

// Highlight marks the link targeting the active section. At most one item is
// active; with no active section none is.
func Highlight(links []Link, active string, ok bool) []NavItem {
	items := make([]NavItem, len(links))
	marked := false
	for i, l := range links {
		items[i].Link = l
		if ok && !marked && active != "" && SectionID(l.Href) == active {
			items[i].Active = true
			marked = true
		}
	}
	return items
}

// Scrolled reports whether the page has scrolled past ScrolledThreshold.
func Scrolled(y float64) bool {
	return y > ScrolledThreshold
}
