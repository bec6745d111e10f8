package risk

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Pattern is one class of risky phrasing. Matchers are regular expressions
// compiled case-insensitively when the catalog is loaded.
type Pattern struct {
	ID          string   `yaml:"id" json:"id"`
	Category    Category `yaml:"category" json:"category"`
	Severity    Severity `yaml:"severity" json:"severity"`
	Patterns    []string `yaml:"patterns" json:"patterns"`
	Description string   `yaml:"description" json:"description"`
	Explanation string   `yaml:"explanation" json:"explanation"`
	Suggestion  string   `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	Locales     []string `yaml:"locales,omitempty" json:"locales,omitempty"`

	matchers []*regexp.Regexp
}

// AppliesTo reports whether the pattern is active for the locale code.
func (p *Pattern) AppliesTo(code string) bool {
	if len(p.Locales) == 0 {
		return true
	}
	for _, l := range p.Locales {
		if l == code {
			return true
		}
	}
	return false
}

// Mention is a legal clause that must appear on a quote of the given locale
// when its condition holds.
type Mention struct {
	ID        string           `yaml:"id" json:"id"`
	Category  string           `yaml:"category" json:"category"`
	Locale    string           `yaml:"locale" json:"locale"`
	Label     string           `yaml:"label" json:"label"`
	Text      string           `yaml:"text" json:"text"`
	Mandatory bool             `yaml:"mandatory" json:"mandatory"`
	Condition *quote.Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// AppliesTo reports whether the mention's condition holds for r. A mention
// without condition always applies.
func (m *Mention) AppliesTo(r quote.Record) bool {
	return m.Condition == nil || m.Condition.Eval(r)
}

// AutoFixRule describes how to correct the text matched by one pattern.
type AutoFixRule struct {
	Type        FixType `yaml:"type" json:"type"`
	Pattern     string  `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Replacement string  `yaml:"replacement,omitempty" json:"replacement,omitempty"`
	Suffix      string  `yaml:"suffix,omitempty" json:"suffix,omitempty"`

	re *regexp.Regexp
}

// MissingMentionText holds the wording of missing-mention findings in one
// locale. Description may contain {label}, replaced by the mention label.
type MissingMentionText struct {
	Description string `yaml:"description" json:"description"`
	Explanation string `yaml:"explanation" json:"explanation"`
	Suggestion  string `yaml:"suggestion" json:"suggestion"`
}

// Catalog is the immutable set of risk patterns, legal mentions, auto-fix
// rules and recommendation sentences.
type Catalog struct {
	Version               string                         `yaml:"version" json:"version"`
	Patterns              []*Pattern                     `yaml:"patterns" json:"patterns"`
	Mentions              []*Mention                     `yaml:"mentions" json:"mentions"`
	MissingMention        map[string]*MissingMentionText `yaml:"missing_mention,omitempty" json:"missing_mention,omitempty"`
	AutoFixes             map[string]*AutoFixRule        `yaml:"autofixes" json:"autofixes"`
	Recommendations       map[Category]string            `yaml:"recommendations" json:"recommendations"`
	AutoFixRecommendation string                         `yaml:"autofix_recommendation" json:"autofix_recommendation"`

	byID map[string]*Pattern
}

// ValidationError is one catalog defect, located by the YAML path of the
// offending node (e.g. "patterns[vague].severity").
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

// Error renders the defect as "path: message", followed by the offending
// value in quotes when there is one.
func (e ValidationError) Error() string {
	if e.Value == nil {
		return e.Path + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s %q", e.Path, e.Message, fmt.Sprint(e.Value))
}

// ValidationErrors lists every defect of a catalog in the order they were
// found, so that one run reports them all.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "catalog has %d defect(s)", len(errs))
	for _, e := range errs {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// LoadCatalog parses and validates a YAML catalog. Unknown keys are
// rejected. Validation failures are returned as ValidationErrors.
func LoadCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing catalog: empty document")
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if errs := c.compile(); len(errs) > 0 {
		return nil, errs
	}
	return &c, nil
}

// LoadCatalogFile reads and loads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := LoadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var defaultCatalog = mustCatalog(defaultCatalogYAML)

func mustCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("risk: built-in catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// DefaultCatalogYAML returns the source of the built-in catalog, as a
// starting point for custom catalogs.
func DefaultCatalogYAML() []byte {
	return bytes.Clone(defaultCatalogYAML)
}

func (c *Catalog) compile() ValidationErrors {
	var errs ValidationErrors
	add := func(path, message string, value any) {
		errs = append(errs, ValidationError{Path: path, Message: message, Value: value})
	}

	if strings.TrimSpace(c.Version) == "" {
		add("version", "required field is missing", nil)
	}
	if len(c.Patterns) == 0 {
		add("patterns", "at least one pattern is required", nil)
	}

	c.byID = make(map[string]*Pattern, len(c.Patterns))
	for i, p := range c.Patterns {
		field := fmt.Sprintf("patterns[%d]", i)
		if p == nil {
			add(field, "pattern is empty", nil)
			continue
		}
		if p.ID == "" {
			add(field+".id", "required field is missing", nil)
		} else {
			field = fmt.Sprintf("patterns[%s]", p.ID)
			if _, dup := c.byID[p.ID]; dup {
				add(field+".id", "duplicate pattern id", p.ID)
			} else {
				c.byID[p.ID] = p
			}
		}
		if !p.Category.IsValid() {
			add(field+".category", "unknown category", string(p.Category))
		}
		if !p.Severity.IsValid() {
			add(field+".severity", "unknown severity", string(p.Severity))
		}
		if len(p.Patterns) == 0 {
			add(field+".patterns", "at least one matcher is required", nil)
		}
		if strings.TrimSpace(p.Description) == "" {
			add(field+".description", "required field is missing", nil)
		}
		for _, code := range p.Locales {
			if _, ok := locale.Lookup(code); !ok {
				add(field+".locales", "unknown locale", code)
			}
		}

		p.matchers = p.matchers[:0]
		for j, expr := range p.Patterns {
			re, err := compileMatcher(expr)
			if err != nil {
				add(fmt.Sprintf("%s.patterns[%d]", field, j), err.Error(), expr)
				continue
			}
			p.matchers = append(p.matchers, re)
		}
	}

	seenMentions := make(map[string]bool, len(c.Mentions))
	for i, m := range c.Mentions {
		field := fmt.Sprintf("mentions[%d]", i)
		if m == nil {
			add(field, "mention is empty", nil)
			continue
		}
		if m.ID == "" {
			add(field+".id", "required field is missing", nil)
		} else {
			field = fmt.Sprintf("mentions[%s]", m.ID)
			if seenMentions[m.ID] {
				add(field+".id", "duplicate mention id", m.ID)
			}
			seenMentions[m.ID] = true
		}
		if _, ok := locale.Lookup(m.Locale); !ok {
			add(field+".locale", "unknown locale", m.Locale)
		}
		if strings.TrimSpace(m.Text) == "" {
			add(field+".text", "required field is missing", nil)
		}
		if m.Condition != nil {
			if err := m.Condition.Compile(); err != nil {
				add(field+".condition", err.Error(), nil)
			}
		}
	}

	codes := make([]string, 0, len(c.MissingMention))
	for code := range c.MissingMention {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		field := fmt.Sprintf("missing_mention[%s]", code)
		if _, ok := locale.Lookup(code); !ok {
			add(field, "unknown locale", code)
		}
		text := c.MissingMention[code]
		if text == nil || strings.TrimSpace(text.Description) == "" {
			add(field+".description", "required field is missing", nil)
		}
	}

	ids := make([]string, 0, len(c.AutoFixes))
	for id := range c.AutoFixes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		rule := c.AutoFixes[id]
		field := fmt.Sprintf("autofixes[%s]", id)
		if _, ok := c.byID[id]; !ok {
			add(field, "auto-fix for unknown pattern", id)
		}
		if rule == nil {
			add(field, "auto-fix is empty", nil)
			continue
		}
		switch rule.Type {
		case FixReplace:
			if rule.Pattern == "" {
				add(field+".pattern", "replace needs a pattern", nil)
				break
			}
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				add(field+".pattern", err.Error(), rule.Pattern)
				break
			}
			rule.re = re
		case FixAppend:
			if rule.Suffix == "" {
				add(field+".suffix", "append needs a suffix", nil)
			}
		case FixRemove:
		default:
			add(field+".type", "unknown auto-fix type (valid: replace, append, remove)", string(rule.Type))
		}
	}

	categories := make([]string, 0, len(c.Recommendations))
	for category := range c.Recommendations {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for _, name := range categories {
		category := Category(name)
		if !category.IsValid() {
			add("recommendations", "unknown category", name)
		}
		if strings.TrimSpace(c.Recommendations[category]) == "" {
			add(fmt.Sprintf("recommendations[%s]", name), "sentence is empty", nil)
		}
	}
	return errs
}

func compileMatcher(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("matcher is empty")
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, err
	}
	if re.MatchString("") {
		return nil, fmt.Errorf("matcher accepts the empty string")
	}
	return re, nil
}

// Pattern returns the pattern with the given id.
func (c *Catalog) Pattern(id string) (*Pattern, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// PatternsFor returns the patterns active for the locale code, in catalog
// order. Patterns without locale restriction apply everywhere.
func (c *Catalog) PatternsFor(code string) []*Pattern {
	out := make([]*Pattern, 0, len(c.Patterns))
	for _, p := range c.Patterns {
		if p.AppliesTo(code) {
			out = append(out, p)
		}
	}
	return out
}

// MandatoryMentionsFor returns the mandatory mentions of the locale code
// whose condition holds for r, in catalog order.
func (c *Catalog) MandatoryMentionsFor(code string, r quote.Record) []*Mention {
	var out []*Mention
	for _, m := range c.Mentions {
		if m.Locale == code && m.Mandatory && m.AppliesTo(r) {
			out = append(out, m)
		}
	}
	return out
}

// MentionsFor returns every mention declared for the locale code, mandatory
// or not.
func (c *Catalog) MentionsFor(code string) []*Mention {
	var out []*Mention
	for _, m := range c.Mentions {
		if m.Locale == code {
			out = append(out, m)
		}
	}
	return out
}
