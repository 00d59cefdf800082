package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if c.Hero.Name == "" {
		t.Error("hero name is empty")
	}
	if got := c.MetricValues(); len(got) != 5 || got[4] != "6mo→6wk" {
		t.Errorf("MetricValues() = %v", got)
	}
	if len(c.Testimonials) == 0 {
		t.Error("no testimonials")
	}
	if w := c.Validate(); len(w) != 0 {
		t.Errorf("default content has warnings: %v", w)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no sections", "testimonials: [{quote: q}]", ErrNoSections},
		{"no testimonials", "sections: [{id: about}]", ErrNoTestimonials},
		{"duplicate ids", "sections: [{id: a}, {id: a}]\ntestimonials: [{quote: q}]", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("sections: [")); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := "sections: [{id: about}]\ntestimonials: [{quote: q, author: a}]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.SectionIDs(); len(got) != 1 || got[0] != "about" {
		t.Errorf("SectionIDs() = %v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestValidateMismatches(t *testing.T) {
	doc := `
nav:
  - {label: About, href: "#about"}
  - {label: Systems, href: "#systems"}
  - {label: Blog, href: "https://medium.com"}
sections: [{id: about}]
testimonials: [{quote: q}]
hero:
  metrics:
    - {value: "39", label: tools}
    - {value: Production, label: status}
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	warnings := c.Validate()
	if len(warnings) != 2 {
		t.Fatalf("Validate() = %v, want 2 warnings", warnings)
	}
	if warnings[0].Field != "nav[1]" || !strings.Contains(warnings[0].Message, "systems") {
		t.Errorf("first warning = %v", warnings[0])
	}
	if warnings[1].Field != "hero.metrics[1]" {
		t.Errorf("second warning = %v", warnings[1])
	}
}

func TestValidateSectionWithoutLayout(t *testing.T) {
	c, err := Parse([]byte("sections: [{id: about}, {id: labs, title: Labs}]\ntestimonials: [{quote: q}]\n"))
	if err != nil {
		t.Fatal(err)
	}
	warnings := c.Validate()
	if len(warnings) != 1 || warnings[0].Field != "sections[1]" || !strings.Contains(warnings[0].Message, `"labs"`) {
		t.Errorf("Validate() = %v, want one warning for labs", warnings)
	}
	if !HasLayout("evidence") || HasLayout("labs") {
		t.Error("HasLayout disagrees with Layouts")
	}
}

func TestNext(t *testing.T) {
	c := &Content{Sections: []Section{{ID: "about"}, {ID: "journey"}, {ID: "contact"}}}
	for id, want := range map[string]string{"about": "journey", "journey": "contact", "contact": "", "labs": ""} {
		if got := c.Next(id); got != want {
			t.Errorf("Next(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestDefaultSupplementaryRecords(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if c.Portfolio.Name == "" || c.Portfolio.Status == "" {
		t.Errorf("portfolio system = %+v", c.Portfolio)
	}
	if len(c.Instruments.Items) != 6 {
		t.Errorf("instrumentation items = %d, want 6", len(c.Instruments.Items))
	}
	if c.Approach.Governance.Tag != "[GOVERNANCE]" {
		t.Errorf("governance = %+v", c.Approach.Governance)
	}

	m := c.Memory
	if !m.Enabled() || len(m.Steps) != 3 || len(m.Tiers) != 3 || m.Code == "" {
		t.Fatalf("memory page = %+v", m)
	}
	highlighted := 0
	for _, tier := range m.Tiers {
		if tier.Highlighted {
			highlighted++
		}
	}
	if highlighted != 1 {
		t.Errorf("%d highlighted tiers, want 1", highlighted)
	}
	if (Product{}).Enabled() {
		t.Error("empty product page reported enabled")
	}
}

func TestTimelineSpan(t *testing.T) {
	tests := []struct {
		entry TimelineEntry
		want  string
	}{
		{TimelineEntry{Year: "2025", EndYear: "present"}, "2025 — Present"},
		{TimelineEntry{Year: "2021", EndYear: "2025"}, "2021 — 2025"},
		{TimelineEntry{Year: "2018"}, "2018"},
	}
	for _, tt := range tests {
		if got := tt.entry.Span(); got != tt.want {
			t.Errorf("Span() = %q, want %q", got, tt.want)
		}
	}
}

func TestContactLinkExternal(t *testing.T) {
	if (ContactLink{URL: "mailto:a@b.c"}).External() {
		t.Error("mailto link reported external")
	}
	if !(ContactLink{URL: "https://github.com/rezzedai"}).External() {
		t.Error("https link reported internal")
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "hello", "hello"},
		{"strong", "Author of **CacheBash**", "Author of <strong>CacheBash</strong>"},
		{"raw html dropped", "<script>x</script>", "<!-- raw HTML omitted -->"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.src))
			if !strings.Contains(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.src, got, tt.want)
			}
			if strings.Contains(got, "<script>") {
				t.Errorf("Markdown(%q) kept raw script tag", tt.src)
			}
		})
	}
}
