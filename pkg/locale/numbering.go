package locale

import (
	"fmt"
	"strings"
	"time"
)

// DocumentKind selects which numbering template to use.
type DocumentKind string

const (
	KindQuote   DocumentKind = "quote"
	KindInvoice DocumentKind = "invoice"
)

// ParseDocumentKind accepts "quote", "invoice" or "" (quote).
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindQuote:
		return KindQuote, nil
	case KindInvoice:
		return KindInvoice, nil
	}
	return "", fmt.Errorf("unknown document kind %q (valid: quote, invoice)", s)
}

// FormatQuoteNumber renders the quote number for seq issued at date under
// the pack for code.
func FormatQuoteNumber(code string, seq int, date time.Time) string {
	return Get(code).FormatNumber(KindQuote, seq, date)
}

// FormatInvoiceNumber renders the invoice number for seq issued at date
// under the pack for code.
func FormatInvoiceNumber(code string, seq int, date time.Time) string {
	return Get(code).FormatNumber(KindInvoice, seq, date)
}

// FormatNumber substitutes the placeholders of the pack's template. The
// sequence is zero-padded to the placeholder width but never truncated;
// negative sequences render as zero.
func (p *Pack) FormatNumber(kind DocumentKind, seq int, date time.Time) string {
	template := p.NumberFormats.Quote
	if kind == KindInvoice {
		template = p.NumberFormats.Invoice
	}
	if seq < 0 {
		seq = 0
	}

	r := strings.NewReplacer(
		"{YYYY}", fmt.Sprintf("%04d", date.Year()),
		"{YY}", fmt.Sprintf("%02d", date.Year()%100),
		"{MM}", fmt.Sprintf("%02d", int(date.Month())),
		"{NNNN}", fmt.Sprintf("%04d", seq),
		"{NNN}", fmt.Sprintf("%03d", seq),
	)
	return r.Replace(template)
}
