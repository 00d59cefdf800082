package content

import (
	"fmt"
	"strings"

	"github.com/rezzedai/bourlier-site/internal/countup"
)

// Warning is a configuration mismatch that degrades the page without
// breaking it, such as a navigation link whose section is not rendered.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Validate reports configuration mismatches. At runtime these are ignored:
// the affected link is never highlighted and the affected metric is shown
// statically.
func (c *Content) Validate() []Warning {
	var out []Warning
	for i, l := range c.Nav {
		id, ok := strings.CutPrefix(l.Href, "#")
		if !ok {
			continue
		}
		if _, found := c.Section(id); !found {
			out = append(out, Warning{
				Field:   fmt.Sprintf("nav[%d]", i),
				Message: fmt.Sprintf("link %q targets missing section %q", l.Label, id),
			})
		}
	}
	for i, s := range c.Sections {
		switch {
		case strings.TrimSpace(s.ID) == "":
			out = append(out, Warning{Field: fmt.Sprintf("sections[%d]", i), Message: "empty id"})
		case !HasLayout(s.ID):
			out = append(out, Warning{
				Field:   fmt.Sprintf("sections[%d]", i),
				Message: fmt.Sprintf("no layout for section %q, only its title is rendered", s.ID),
			})
		}
	}
	for i, m := range c.Hero.Metrics {
		if !countup.Parse(m.Value).Animated {
			out = append(out, Warning{
				Field:   fmt.Sprintf("hero.metrics[%d]", i),
				Message: fmt.Sprintf("%q has no leading integer and is displayed statically", m.Value),
			})
		}
	}
	return out
}
