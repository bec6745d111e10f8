package locale

import (
	"fmt"
	"strings"
)

// DefaultCode is the pack used for unknown or empty codes. Records created
// before the locale field existed were all Belgian French.
const DefaultCode = "fr-BE"

type registry struct {
	packs  []*Pack
	byCode map[string]*Pack
}

func newRegistry(packs ...*Pack) (*registry, error) {
	r := &registry{byCode: make(map[string]*Pack, len(packs))}
	for _, pack := range packs {
		if err := validatePack(pack); err != nil {
			return nil, err
		}
		if _, exists := r.byCode[pack.Code]; exists {
			return nil, fmt.Errorf("locale pack %q registered twice", pack.Code)
		}
		r.byCode[pack.Code] = pack
		r.packs = append(r.packs, pack)
	}
	if _, ok := r.byCode[DefaultCode]; !ok {
		return nil, fmt.Errorf("default locale pack %q is missing", DefaultCode)
	}
	return r, nil
}

func validatePack(pack *Pack) error {
	if pack == nil {
		return fmt.Errorf("locale pack cannot be nil")
	}
	if strings.TrimSpace(pack.Code) == "" {
		return fmt.Errorf("locale pack code is required")
	}
	if pack.NumberFormats.Quote == "" || pack.NumberFormats.Invoice == "" {
		return fmt.Errorf("locale pack %q: number formats are required", pack.Code)
	}
	if pack.Currency.Position != SymbolBefore && pack.Currency.Position != SymbolAfter {
		return fmt.Errorf("locale pack %q: invalid currency position %q", pack.Code, pack.Currency.Position)
	}

	seen := make(map[string]bool, len(pack.Compliance.Rules))
	for i := range pack.Compliance.Rules {
		rule := &pack.Compliance.Rules[i]
		if rule.ID == "" {
			return fmt.Errorf("locale pack %q: rule %d has no id", pack.Code, i)
		}
		if seen[rule.ID] {
			return fmt.Errorf("locale pack %q: duplicate rule %q", pack.Code, rule.ID)
		}
		seen[rule.ID] = true

		switch rule.Severity {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("locale pack %q: rule %q has invalid severity %q", pack.Code, rule.ID, rule.Severity)
		}
		if err := rule.Check.Compile(); err != nil {
			return fmt.Errorf("locale pack %q: rule %q: %w", pack.Code, rule.ID, err)
		}
	}
	return nil
}

var builtin = mustRegistry(frBE(), nlBE(), deBE(), frFR(), frCH())

func mustRegistry(packs ...*Pack) *registry {
	r, err := newRegistry(packs...)
	if err != nil {
		panic(fmt.Sprintf("locale: %v", err))
	}
	return r
}

// Get returns a copy of the pack for code. Unknown and empty codes resolve
// to the default pack; codes are compared case-sensitively.
func Get(code string) *Pack {
	if pack, ok := builtin.byCode[code]; ok {
		return pack.Clone()
	}
	return builtin.byCode[DefaultCode].Clone()
}

// Lookup returns a copy of the pack for code without falling back.
func Lookup(code string) (*Pack, bool) {
	pack, ok := builtin.byCode[code]
	if !ok {
		return nil, false
	}
	return pack.Clone(), true
}

// List returns copies of every pack in declaration order.
func List() []*Pack {
	out := make([]*Pack, len(builtin.packs))
	for i, pack := range builtin.packs {
		out[i] = pack.Clone()
	}
	return out
}

// Codes returns the codes of every pack in declaration order.
func Codes() []string {
	codes := make([]string, len(builtin.packs))
	for i, pack := range builtin.packs {
		codes[i] = pack.Code
	}
	return codes
}
