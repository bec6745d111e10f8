package locale

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/coolbeans/quotecheck/pkg/quote"
)

// Hints are the loosely typed signals available when guessing the locale of
// a client. Every field is optional.
type Hints struct {
	VATNumber     string `json:"vatNumber,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	BrowserLocale string `json:"browserLocale,omitempty"`
}

// DetectLocale guesses a pack code from hints. Signals are tried in order
// (VAT prefix, postal code, country name, browser locale) and the first one
// that resolves wins. It always returns a registered code.
func DetectLocale(h Hints) string {
	if code, ok := fromVATNumber(h.VATNumber); ok {
		return code
	}
	if code, ok := fromPostalCode(h.PostalCode); ok {
		return code
	}
	if code, ok := fromCountry(h.Country); ok {
		return code
	}
	if code, ok := fromBrowserLocale(h.BrowserLocale); ok {
		return code
	}
	return DefaultCode
}

func fromVATNumber(vat string) (string, bool) {
	v := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '.' || r == '-' {
			return -1
		}
		return r
	}, vat))

	switch {
	case strings.HasPrefix(v, "CHE"), strings.HasPrefix(v, "CH"):
		return "fr-CH", true
	case strings.HasPrefix(v, "BE"):
		return "fr-BE", true
	case strings.HasPrefix(v, "FR"):
		return "fr-FR", true
	}
	return "", false
}

func fromPostalCode(postal string) (string, bool) {
	p := strings.ToUpper(strings.TrimSpace(postal))
	if p == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(p, "CH-"):
		return "fr-CH", true
	case strings.HasPrefix(p, "BE-"):
		return belgianPostal(strings.TrimPrefix(p, "BE-"))
	case strings.HasPrefix(p, "B-"):
		return belgianPostal(strings.TrimPrefix(p, "B-"))
	case strings.HasPrefix(p, "FR-"), strings.HasPrefix(p, "F-"):
		return "fr-FR", true
	}

	if !allDigits(p) {
		return "", false
	}
	switch len(p) {
	case 5:
		return "fr-FR", true
	case 4:
		// Swiss codes are also four digits; without a prefix they are
		// read as Belgian.
		return belgianPostal(p)
	}
	return "", false
}

// belgianPostal maps a Belgian postal code to the language of its region:
// 4700-4799 is the German-speaking community, 1500-3999 and 8000-9999 are
// Flanders, everything else is Brussels or Wallonia.
func belgianPostal(p string) (string, bool) {
	n, err := strconv.Atoi(p)
	if err != nil || len(p) != 4 {
		return "", false
	}
	switch {
	case n >= 4700 && n <= 4799:
		return "de-BE", true
	case n >= 1500 && n <= 3999, n >= 8000 && n <= 9999:
		return "nl-BE", true
	}
	return "fr-BE", true
}

var countryNames = map[string]string{
	"belgique":    "fr-BE",
	"belgium":     "fr-BE",
	"be":          "fr-BE",
	"belgië":      "nl-BE",
	"belgie":      "nl-BE",
	"belgien":     "de-BE",
	"france":      "fr-FR",
	"frankreich":  "fr-FR",
	"frankrijk":   "fr-FR",
	"fr":          "fr-FR",
	"suisse":      "fr-CH",
	"switzerland": "fr-CH",
	"schweiz":     "fr-CH",
	"svizzera":    "fr-CH",
	"zwitserland": "fr-CH",
	"ch":          "fr-CH",
}

func fromCountry(country string) (string, bool) {
	code, ok := countryNames[strings.ToLower(strings.TrimSpace(country))]
	return code, ok
}

func fromBrowserLocale(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		if code, ok := fromTag(tag); ok {
			return code, true
		}
	}
	return "", false
}

func fromTag(tag language.Tag) (string, bool) {
	if _, ok := Lookup(tag.String()); ok {
		return tag.String(), true
	}

	base, _ := tag.Base()
	region := ""
	if r, conf := tag.Region(); conf == language.Exact {
		region = r.String()
	}

	switch base.String() {
	case "nl":
		return "nl-BE", true
	case "de":
		if region == "CH" {
			return "fr-CH", true
		}
		return "de-BE", true
	case "fr":
		switch region {
		case "FR":
			return "fr-FR", true
		case "CH":
			return "fr-CH", true
		}
		return "fr-BE", true
	}

	switch region {
	case "BE":
		return "fr-BE", true
	case "FR":
		return "fr-FR", true
	case "CH":
		return "fr-CH", true
	}
	return "", false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Record fields consulted by HintsFromRecord.
const (
	FieldClientPostalCode = "client_postal_code"
	FieldClientCountry    = "client_country"
	FieldBrowserLocale    = "browser_locale"
)

// HintsFromRecord collects detection hints from a quote record.
func HintsFromRecord(r quote.Record) Hints {
	return Hints{
		VATNumber:     r.Text(quote.FieldVATNumber),
		PostalCode:    r.Text(FieldClientPostalCode),
		Country:       r.Text(FieldClientCountry),
		BrowserLocale: r.Text(FieldBrowserLocale),
	}
}

// Resolve picks the pack code for a record: the explicit code if given,
// then the record's own locale field, then detection from its hints.
// Explicit and stored codes that are not registered fall back to the
// default pack like Get does.
func Resolve(explicit string, r quote.Record) string {
	if code := strings.TrimSpace(explicit); code != "" {
		return Get(code).Code
	}
	if code := r.Text(quote.FieldLocale); code != "" {
		return Get(strings.TrimSpace(code)).Code
	}
	return DetectLocale(HintsFromRecord(r))
}
