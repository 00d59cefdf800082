// Package content is the read-only copy of the site: hero, metrics, timeline,
// testimonials, links. It is loaded once from YAML and never mutated.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultYAML []byte

// Sentinel errors for unusable content.
var (
	ErrNoSections     = errors.New("content has no sections")
	ErrNoTestimonials = errors.New("content has no testimonials")
	ErrDuplicateID    = errors.New("duplicate section id")
)

type Content struct {
	Site           Site            `yaml:"site" json:"site"`
	Hero           Hero            `yaml:"hero" json:"hero"`
	Nav            []NavLink       `yaml:"nav" json:"nav"`
	Sections       []Section       `yaml:"sections" json:"sections"`
	Signal         Quote           `yaml:"signal" json:"signal"`
	Testimonials   []Testimonial   `yaml:"testimonials" json:"testimonials"`
	Systems        []System        `yaml:"systems" json:"systems"`
	Portfolio      System          `yaml:"portfolio_system" json:"portfolioSystem"`
	Instruments    Instrumentation `yaml:"instrumentation" json:"instrumentation"`
	Approach       Approach        `yaml:"approach" json:"approach"`
	Packages       []Package       `yaml:"packages" json:"packages"`
	Skills         []SkillCategory `yaml:"skills" json:"skills"`
	Certifications []string        `yaml:"certifications" json:"certifications"`
	Timeline       []TimelineEntry `yaml:"timeline" json:"timeline"`
	Articles       []Article       `yaml:"articles" json:"articles"`
	Contact        Contact         `yaml:"contact" json:"contact"`
	Footer         Footer          `yaml:"footer" json:"footer"`
	Memory         Product         `yaml:"memory" json:"memory"`
}

type Site struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
	Email       string `yaml:"email" json:"email"`
}

type Hero struct {
	Name         string   `yaml:"name" json:"name"`
	Subtitle     string   `yaml:"subtitle" json:"subtitle"`
	Tagline      string   `yaml:"tagline" json:"tagline"`
	Description  string   `yaml:"description" json:"description"`
	Availability string   `yaml:"availability" json:"availability"`
	ScrollCTA    string   `yaml:"scroll_cta" json:"scrollCta"`
	Metrics      []Metric `yaml:"metrics" json:"metrics"`
}

// Metric is a hero figure. Value is a literal such as "39", "100%" or
// "6mo→6wk".
type Metric struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type NavLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Section is a scroll-spy target on the page.
type Section struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

type Quote struct {
	Quote        string `yaml:"quote" json:"quote"`
	Author       string `yaml:"author" json:"author"`
	Title        string `yaml:"title" json:"title"`
	Relationship string `yaml:"relationship" json:"relationship"`
}

type Testimonial struct {
	Quote  string `yaml:"quote" json:"quote"`
	Author string `yaml:"author" json:"author"`
	Title  string `yaml:"title" json:"title"`
}

type System struct {
	Name        string   `yaml:"name" json:"name"`
	Slug        string   `yaml:"slug" json:"slug"`
	Description string   `yaml:"description" json:"description"`
	Stack       []string `yaml:"stack" json:"stack"`
	Details     []string `yaml:"details" json:"details"`
	URL         string   `yaml:"url" json:"url"`
	Status      string   `yaml:"status" json:"status"`
}

// Instrumentation lists what the running systems measure.
type Instrumentation struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

type Approach struct {
	Title       string     `yaml:"title" json:"title"`
	Philosophy  string     `yaml:"philosophy" json:"philosophy"`
	Description string     `yaml:"description" json:"description"`
	Steps       []Step     `yaml:"steps" json:"steps"`
	Governance  Governance `yaml:"governance" json:"governance"`
}

type Governance struct {
	Title       string `yaml:"title" json:"title"`
	Tag         string `yaml:"tag" json:"tag"`
	Description string `yaml:"description" json:"description"`
}

type Step struct {
	Step        string `yaml:"step" json:"step"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

type Package struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type SkillCategory struct {
	Label  string   `yaml:"label" json:"label"`
	Skills []string `yaml:"skills" json:"skills"`
}

type TimelineEntry struct {
	Year        string `yaml:"year" json:"year"`
	EndYear     string `yaml:"end_year" json:"endYear"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Span renders the entry's year range. An open range ends in "Present".
func (e TimelineEntry) Span() string {
	switch e.EndYear {
	case "":
		return e.Year
	case "present":
		return e.Year + " — Present"
	default:
		return e.Year + " — " + e.EndYear
	}
}

type Article struct {
	Title string   `yaml:"title" json:"title"`
	URL   string   `yaml:"url" json:"url"`
	Date  string   `yaml:"date" json:"date"`
	Tags  []string `yaml:"tags" json:"tags"`
}

type Contact struct {
	Heading     string        `yaml:"heading" json:"heading"`
	Description string        `yaml:"description" json:"description"`
	Links       []ContactLink `yaml:"links" json:"links"`
}

type ContactLink struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// External reports whether the link leaves the site (anything but mailto).
func (l ContactLink) External() bool {
	return !strings.HasPrefix(l.URL, "mailto:")
}

// Product is a standalone product page served next to the portfolio.
type Product struct {
	Title        string        `yaml:"title" json:"title"`
	Lead         string        `yaml:"lead" json:"lead"`
	CTA          ContactLink   `yaml:"cta" json:"cta"`
	Steps        []ProductStep `yaml:"steps" json:"steps"`
	Code         string        `yaml:"code" json:"code"`
	CodeLanguage string        `yaml:"code_language" json:"codeLanguage"`
	Tiers        []Tier        `yaml:"tiers" json:"tiers"`
	Closing      string        `yaml:"closing" json:"closing"`
	ClosingLinks []ContactLink `yaml:"closing_links" json:"closingLinks"`
}

// Enabled reports whether the page has anything to show.
func (p Product) Enabled() bool { return p.Title != "" }

type ProductStep struct {
	Number      string `yaml:"number" json:"number"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

// Tier is a pricing plan. An empty Period means the price is not recurring.
type Tier struct {
	Name        string      `yaml:"name" json:"name"`
	Price       string      `yaml:"price" json:"price"`
	Period      string      `yaml:"period" json:"period"`
	Badge       string      `yaml:"badge" json:"badge"`
	Features    []Feature   `yaml:"features" json:"features"`
	CTA         ContactLink `yaml:"cta" json:"cta"`
	Highlighted bool        `yaml:"highlighted" json:"highlighted"`
}

type Feature struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Footer struct {
	Tagline   string `yaml:"tagline" json:"tagline"`
	Signature string `yaml:"signature" json:"signature"`
	EndOfLine string `yaml:"end_of_line" json:"endOfLine"`
}

// Default returns the embedded site content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load reads content from a YAML file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content and checks that the page can be rendered.
// Configuration mismatches that only degrade the page are reported by
// Validate instead.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) check() error {
	if len(c.Sections) == 0 {
		return ErrNoSections
	}
	if len(c.Testimonials) == 0 {
		return ErrNoTestimonials
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// MetricValues returns the hero metric literals in display order.
func (c *Content) MetricValues() []string {
	out := make([]string, len(c.Hero.Metrics))
	for i, m := range c.Hero.Metrics {
		out[i] = m.Value
	}
	return out
}

// Layouts are the section ids the page and the terminal preview have a
// dedicated layout for. Any other section is rendered with its title only.
var Layouts = []string{"about", "journey", "systems", "evidence", "writing", "contact"}

// HasLayout reports whether id has a dedicated layout.
func HasLayout(id string) bool { return slices.Contains(Layouts, id) }

// SectionIDs returns the section ids in page order.
func (c *Content) SectionIDs() []string {
	out := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = s.ID
	}
	return out
}

// Section returns the section with the given id.
func (c *Content) Section(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Next returns the id of the section after id, or "" if id is last or
// unknown.
func (c *Content) Next(id string) string {
	for i, s := range c.Sections {
		if s.ID == id && i+1 < len(c.Sections) {
			return c.Sections[i+1].ID
		}
	}
	return ""
}
