// Package quote models the loosely typed quote records consumed by the risk
// engine and the predicates evaluated against them.
//
// A Record is decoded from JSON or YAML produced by the quote editor. Fields
// may be missing, blank or of an unexpected type; every accessor treats such
// fields as absent instead of failing.
package quote

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a quote-like document: text fields, line items and jurisdiction
// metadata. Unknown fields are carried along and ignored by the engine.
type Record map[string]any

// Well-known field names of the quote input contract.
const (
	FieldNotes            = "notes"
	FieldDescription      = "description"
	FieldClientAddress    = "client_address"
	FieldTitle            = "title"
	FieldTaxRate          = "tax_rate"
	FieldSector           = "sector"
	FieldIsConsumer       = "is_consumer"
	FieldIsRemoteContract = "is_remote_contract"
	FieldAnnualRevenue    = "annual_revenue"
	FieldVATNumber        = "vat_number"
	FieldItems            = "items"
	FieldLocale           = "locale"
)

// Lookup resolves a dotted path such as "client.address" or
// "items[2].description". It returns false when any segment is missing,
// has the wrong shape, or resolves to nil.
func (r Record) Lookup(path string) (any, bool) {
	if r == nil || strings.TrimSpace(path) == "" {
		return nil, false
	}

	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}

		if name != "" {
			m, ok := asMap(current)
			if !ok {
				return nil, false
			}
			value, found := m[name]
			if !found {
				return nil, false
			}
			current = value
		}

		for _, index := range indexes {
			list, ok := current.([]any)
			if !ok || index < 0 || index >= len(list) {
				return nil, false
			}
			current = list[index]
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// String returns the string stored at path. Non-string values are reported
// as absent.
func (r Record) String(path string) (string, bool) {
	value, ok := r.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Text returns the string at path, or "" when it is absent or blank.
// Unlike String, a whitespace-only value is reported as "".
func (r Record) Text(path string) string {
	s, ok := r.String(path)
	if !ok || strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Number returns the numeric value at path. JSON and YAML decoders produce
// different Go types for numbers; all of them are accepted. Strings are not
// coerced.
func (r Record) Number(path string) (float64, bool) {
	value, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}
	return toFloat(value)
}

// Bool returns the boolean at path.
func (r Record) Bool(path string) (bool, bool) {
	value, ok := r.Lookup(path)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// IsEmpty reports whether the value at path is absent, a blank string, or an
// empty list or object.
func (r Record) IsEmpty(path string) bool {
	value, ok := r.Lookup(path)
	if !ok {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case Record:
		return len(v) == 0
	}
	return false
}

// Items returns the quote line items. The slice keeps the original indexes;
// entries that are not objects are returned as nil records so callers can
// still report positions like "items[3].description".
func (r Record) Items() []Record {
	value, ok := r.Lookup(FieldItems)
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}

	items := make([]Record, len(list))
	for i, entry := range list {
		if m, ok := asMap(entry); ok {
			items[i] = Record(m)
		}
	}
	return items
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Record:
		return map[string]any(v), true
	}
	return nil, false
}

// parseSegment splits "items[0][1]" into ("items", [0 1]).
func parseSegment(segment string) (string, []int, bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		return segment, nil, segment != ""
	}

	name := segment[:open]
	rest := segment[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return "", nil, false
		}
		index, err := strconv.Atoi(rest[1:closing])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, index)
		rest = rest[closing+1:]
	}
	return name, indexes, true
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
