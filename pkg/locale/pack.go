// Package locale provides the compiled-in jurisdiction packs (tax rates,
// currency conventions, legal boilerplate, vocabulary, compliance rules and
// numbering templates) used to render and check quotes.
//
// Packs are immutable for the process lifetime. Adding a jurisdiction means
// adding a pack; existing packs are never patched so that quotes created
// under them keep identical formatting.
package locale

import (
	"github.com/shopspring/decimal"

	"github.com/coolbeans/quotecheck/pkg/quote"
)

// SymbolPosition places the currency symbol relative to the amount.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Pack is the full configuration of one jurisdiction-language pair.
// Every accessor of this package returns a private copy, so changes made
// by a caller never reach the registered packs.
type Pack struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Country  string `yaml:"country" json:"country"`
	Language string `yaml:"language" json:"language"`

	Tax           TaxRates      `yaml:"tax" json:"tax"`
	Currency      Currency      `yaml:"currency" json:"currency"`
	Legal         LegalTexts    `yaml:"legal" json:"legal"`
	Vocabulary    Vocabulary    `yaml:"vocabulary" json:"vocabulary"`
	Compliance    Compliance    `yaml:"compliance" json:"compliance"`
	NumberFormats NumberFormats `yaml:"number_formats" json:"number_formats"`
}

// Clone returns a deep copy of the pack.
func (p *Pack) Clone() *Pack {
	out := *p
	out.Tax.Options = append([]TaxOption(nil), p.Tax.Options...)
	if p.Vocabulary.Extra != nil {
		out.Vocabulary.Extra = make(map[string]string, len(p.Vocabulary.Extra))
		for k, v := range p.Vocabulary.Extra {
			out.Vocabulary.Extra[k] = v
		}
	}
	out.Compliance.RequiredFields = append([]string(nil), p.Compliance.RequiredFields...)
	out.Compliance.MandatoryMentions = append([]string(nil), p.Compliance.MandatoryMentions...)
	if p.Compliance.Rules != nil {
		out.Compliance.Rules = make([]ComplianceRule, len(p.Compliance.Rules))
		for i, rule := range p.Compliance.Rules {
			rule.Check = rule.Check.Clone()
			out.Compliance.Rules[i] = rule
		}
	}
	return &out
}

// TaxRates lists the VAT rates in force for the jurisdiction, in percent.
type TaxRates struct {
	Standard     decimal.Decimal `yaml:"standard" json:"standard"`
	Reduced      decimal.Decimal `yaml:"reduced" json:"reduced"`
	SuperReduced decimal.Decimal `yaml:"super_reduced" json:"super_reduced"`
	Zero         decimal.Decimal `yaml:"zero" json:"zero"`
	Options      []TaxOption     `yaml:"options" json:"options"`
}

// TaxOption is one selectable VAT rate with its display strings.
type TaxOption struct {
	Value       decimal.Decimal `yaml:"value" json:"value"`
	Label       string          `yaml:"label" json:"label"`
	Description string          `yaml:"description" json:"description"`
}

// Currency describes how amounts are written.
type Currency struct {
	Code               string         `yaml:"code" json:"code"`
	Symbol             string         `yaml:"symbol" json:"symbol"`
	Position           SymbolPosition `yaml:"position" json:"position"`
	DecimalSeparator   string         `yaml:"decimal_separator" json:"decimal_separator"`
	ThousandsSeparator string         `yaml:"thousands_separator" json:"thousands_separator"`
	Decimals           int32          `yaml:"decimals" json:"decimals"`
}

// LegalTexts holds the canonical boilerplate of the jurisdiction. An empty
// string means the clause does not exist there (e.g. no statutory
// withdrawal right in Switzerland).
type LegalTexts struct {
	ValidityPeriod     string `yaml:"validity_period" json:"validity_period"`
	PaymentTerms       string `yaml:"payment_terms" json:"payment_terms"`
	LatePaymentPenalty string `yaml:"late_payment_penalty" json:"late_payment_penalty"`
	WithdrawalRight    string `yaml:"withdrawal_right,omitempty" json:"withdrawal_right,omitempty"`
	Jurisdiction       string `yaml:"jurisdiction" json:"jurisdiction"`
	DataProtection     string `yaml:"data_protection" json:"data_protection"`
	Insurance          string `yaml:"insurance,omitempty" json:"insurance,omitempty"`
}

// HasWithdrawalRight reports whether the jurisdiction defines a withdrawal
// clause.
func (l LegalTexts) HasWithdrawalRight() bool {
	return l.WithdrawalRight != ""
}

// Vocabulary keys understood by Term for the core terms.
const (
	TermQuote           = "quote"
	TermInvoice         = "invoice"
	TermClient          = "client"
	TermVAT             = "vat"
	TermVATNumber       = "vat_number"
	TermCompanyRegistry = "company_registry"
	TermTotal           = "total"
)

// Vocabulary holds the domain terms every pack defines plus free-form,
// pack-specific extras.
type Vocabulary struct {
	Quote           string            `yaml:"quote" json:"quote"`
	Invoice         string            `yaml:"invoice" json:"invoice"`
	Client          string            `yaml:"client" json:"client"`
	VAT             string            `yaml:"vat" json:"vat"`
	VATNumber       string            `yaml:"vat_number" json:"vat_number"`
	CompanyRegistry string            `yaml:"company_registry" json:"company_registry"`
	Total           string            `yaml:"total" json:"total"`
	Extra           map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Term resolves a vocabulary key, looking at the core terms first.
func (v Vocabulary) Term(key string) (string, bool) {
	switch key {
	case TermQuote:
		return v.Quote, v.Quote != ""
	case TermInvoice:
		return v.Invoice, v.Invoice != ""
	case TermClient:
		return v.Client, v.Client != ""
	case TermVAT:
		return v.VAT, v.VAT != ""
	case TermVATNumber:
		return v.VATNumber, v.VATNumber != ""
	case TermCompanyRegistry:
		return v.CompanyRegistry, v.CompanyRegistry != ""
	case TermTotal:
		return v.Total, v.Total != ""
	}
	term, ok := v.Extra[key]
	return term, ok
}

// RuleSeverity grades a compliance rule failure.
type RuleSeverity string

const (
	SeverityError   RuleSeverity = "error"
	SeverityWarning RuleSeverity = "warning"
	SeverityInfo    RuleSeverity = "info"
)

// ComplianceRule is a named predicate a compliant quote must satisfy.
type ComplianceRule struct {
	ID          string          `yaml:"id" json:"id"`
	Description string          `yaml:"description" json:"description"`
	Check       quote.Condition `yaml:"check" json:"check"`
	Severity    RuleSeverity    `yaml:"severity" json:"severity"`
}

// Compliance groups the jurisdiction's validation requirements.
type Compliance struct {
	RequiredFields    []string         `yaml:"required_fields" json:"required_fields"`
	MandatoryMentions []string         `yaml:"mandatory_mentions" json:"mandatory_mentions"`
	Rules             []ComplianceRule `yaml:"rules" json:"rules"`
}

// NumberFormats holds numbering templates. Placeholders: {YYYY}, {YY},
// {MM}, {NNNN} and {NNN}.
type NumberFormats struct {
	Quote   string `yaml:"quote" json:"quote"`
	Invoice string `yaml:"invoice" json:"invoice"`
}

func pct(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
