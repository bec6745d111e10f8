package quote

import (
	"fmt"
	"regexp"
	"strings"
)

// Operator is a field comparison understood by Condition.
type Operator string

// Supported operators.
const (
	OpEq      Operator = "eq"
	OpNe      Operator = "ne"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpIn      Operator = "in"
	OpPresent Operator = "present"
	OpAbsent  Operator = "absent"
	OpTrue    Operator = "true"
	OpFalse   Operator = "false"
	OpMatches Operator = "matches"
)

// Condition is a pure predicate over a Record, expressed as data so it can
// live in YAML catalogs and compiled-in locale packs alike.
//
// Exactly one of All, Any, Not or Field must be set. Field conditions apply
// Op to the value found at the dotted path Field:
//
//	eq, ne          compare with Value (numbers numerically, strings case-insensitively)
//	lt lte gt gte   numeric comparison with Value; false when the field is not a number
//	in              eq against any of Values
//	present/absent  non-blank value exists / does not exist
//	true            field is the boolean true
//	false           field is not true (absent counts as false)
//	matches         string field matches the regular expression in Value
//
// Conditions must be compiled with Compile before Eval; an uncompiled
// "matches" condition never matches.
type Condition struct {
	All    []Condition `yaml:"all,omitempty" json:"all,omitempty"`
	Any    []Condition `yaml:"any,omitempty" json:"any,omitempty"`
	Not    *Condition  `yaml:"not,omitempty" json:"not,omitempty"`
	Field  string      `yaml:"field,omitempty" json:"field,omitempty"`
	Op     Operator    `yaml:"op,omitempty" json:"op,omitempty"`
	Value  any         `yaml:"value,omitempty" json:"value,omitempty"`
	Values []any       `yaml:"values,omitempty" json:"values,omitempty"`

	compiled *regexp.Regexp
}

// All builds a conjunction.
func All(conditions ...Condition) Condition {
	return Condition{All: conditions}
}

// Any builds a disjunction.
func Any(conditions ...Condition) Condition {
	return Condition{Any: conditions}
}

// Not negates a condition.
func Not(condition Condition) Condition {
	return Condition{Not: &condition}
}

// Field builds a single field comparison.
func Field(path string, op Operator, value any) Condition {
	return Condition{Field: path, Op: op, Value: value}
}

// FieldIn builds an "in" comparison.
func FieldIn(path string, values ...any) Condition {
	return Condition{Field: path, Op: OpIn, Values: values}
}

// Clone returns a deep copy of the condition tree. Compiled expressions are
// shared; a regexp is safe for concurrent use.
func (c Condition) Clone() Condition {
	out := c
	if c.All != nil {
		out.All = make([]Condition, len(c.All))
		for i, sub := range c.All {
			out.All[i] = sub.Clone()
		}
	}
	if c.Any != nil {
		out.Any = make([]Condition, len(c.Any))
		for i, sub := range c.Any {
			out.Any[i] = sub.Clone()
		}
	}
	if c.Not != nil {
		not := c.Not.Clone()
		out.Not = &not
	}
	if c.Values != nil {
		out.Values = append([]any(nil), c.Values...)
	}
	return out
}

// Compile validates the condition tree and compiles regular expressions.
// The returned error names the offending node.
func (c *Condition) Compile() error {
	return c.compile("condition")
}

func (c *Condition) compile(at string) error {
	kinds := 0
	if len(c.All) > 0 {
		kinds++
	}
	if len(c.Any) > 0 {
		kinds++
	}
	if c.Not != nil {
		kinds++
	}
	if c.Field != "" {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("%s: exactly one of all, any, not or field must be set", at)
	}

	switch {
	case len(c.All) > 0:
		for i := range c.All {
			if err := c.All[i].compile(fmt.Sprintf("%s.all[%d]", at, i)); err != nil {
				return err
			}
		}
		return nil
	case len(c.Any) > 0:
		for i := range c.Any {
			if err := c.Any[i].compile(fmt.Sprintf("%s.any[%d]", at, i)); err != nil {
				return err
			}
		}
		return nil
	case c.Not != nil:
		return c.Not.compile(at + ".not")
	}

	at = fmt.Sprintf("%s(%s)", at, c.Field)
	switch c.Op {
	case OpEq, OpNe:
		if !isScalar(c.Value) {
			return fmt.Errorf("%s: operator %q needs a scalar value", at, c.Op)
		}
	case OpLt, OpLte, OpGt, OpGte:
		if _, ok := toFloat(c.Value); !ok {
			return fmt.Errorf("%s: operator %q needs a numeric value", at, c.Op)
		}
	case OpIn:
		if len(c.Values) == 0 {
			return fmt.Errorf("%s: operator %q needs at least one value", at, c.Op)
		}
		for _, v := range c.Values {
			if !isScalar(v) {
				return fmt.Errorf("%s: operator %q needs scalar values", at, c.Op)
			}
		}
	case OpPresent, OpAbsent, OpTrue, OpFalse:
	case OpMatches:
		expr, ok := c.Value.(string)
		if !ok || expr == "" {
			return fmt.Errorf("%s: operator %q needs a regular expression", at, c.Op)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("%s: compiling %q: %w", at, expr, err)
		}
		c.compiled = re
	case "":
		return fmt.Errorf("%s: operator is required", at)
	default:
		return fmt.Errorf("%s: unknown operator %q", at, c.Op)
	}
	return nil
}

// Eval evaluates the condition against a record.
func (c *Condition) Eval(r Record) bool {
	switch {
	case len(c.All) > 0:
		for i := range c.All {
			if !c.All[i].Eval(r) {
				return false
			}
		}
		return true
	case len(c.Any) > 0:
		for i := range c.Any {
			if c.Any[i].Eval(r) {
				return true
			}
		}
		return false
	case c.Not != nil:
		return !c.Not.Eval(r)
	case c.Field == "":
		return false
	}

	value, found := r.Lookup(c.Field)
	switch c.Op {
	case OpPresent:
		return !r.IsEmpty(c.Field)
	case OpAbsent:
		return r.IsEmpty(c.Field)
	case OpTrue:
		b, ok := value.(bool)
		return found && ok && b
	case OpFalse:
		b, ok := value.(bool)
		return !(found && ok && b)
	case OpEq:
		return found && equalValues(value, c.Value)
	case OpNe:
		return !found || !equalValues(value, c.Value)
	case OpIn:
		if !found {
			return false
		}
		for _, candidate := range c.Values {
			if equalValues(value, candidate) {
				return true
			}
		}
		return false
	case OpLt, OpLte, OpGt, OpGte:
		left, ok := toFloat(value)
		if !found || !ok {
			return false
		}
		right, _ := toFloat(c.Value)
		switch c.Op {
		case OpLt:
			return left < right
		case OpLte:
			return left <= right
		case OpGt:
			return left > right
		default:
			return left >= right
		}
	case OpMatches:
		s, ok := value.(string)
		return found && ok && c.compiled != nil && c.compiled.MatchString(strings.TrimSpace(s))
	}
	return false
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := toFloat(v)
	return ok
}

func equalValues(actual, expected any) bool {
	if a, ok := toFloat(actual); ok {
		e, ok := toFloat(expected)
		return ok && a == e
	}
	switch a := actual.(type) {
	case string:
		e, ok := expected.(string)
		return ok && strings.EqualFold(strings.TrimSpace(a), e)
	case bool:
		e, ok := expected.(bool)
		return ok && a == e
	}
	return false
}
