package quote

import (
	"strings"
	"testing"
)

func TestConditionEval(t *testing.T) {
	record := Record{
		"tax_rate":       float64(6),
		"sector":         "renovation",
		"is_consumer":    true,
		"annual_revenue": 20000,
		"vat_number":     "BE0123.456.789",
		"blank":          "  ",
	}

	tests := []struct {
		name      string
		condition Condition
		want      bool
	}{
		{"eq number", Field("tax_rate", OpEq, 6), true},
		{"eq number mismatch", Field("tax_rate", OpEq, 21), false},
		{"eq string case-insensitive", Field("sector", OpEq, "RENOVATION"), true},
		{"eq on missing field", Field("nope", OpEq, "x"), false},
		{"ne on missing field", Field("nope", OpNe, "x"), true},
		{"ne mismatch", Field("tax_rate", OpNe, 21), true},
		{"in", FieldIn("sector", "CONSTRUCTION", "RENOVATION"), true},
		{"in miss", FieldIn("sector", "PLUMBING"), false},
		{"lt", Field("annual_revenue", OpLt, 37500), true},
		{"gte", Field("annual_revenue", OpGte, 37500), false},
		{"lt on string field", Field("sector", OpLt, 10), false},
		{"present", Field("vat_number", OpPresent, nil), true},
		{"present blank", Field("blank", OpPresent, nil), false},
		{"absent", Field("nope", OpAbsent, nil), true},
		{"true", Field("is_consumer", OpTrue, nil), true},
		{"true on missing", Field("is_remote_contract", OpTrue, nil), false},
		{"false on missing", Field("is_remote_contract", OpFalse, nil), true},
		{"false on true", Field("is_consumer", OpFalse, nil), false},
		{"matches", Field("vat_number", OpMatches, `^BE\d{4}\.\d{3}\.\d{3}$`), true},
		{"matches miss", Field("vat_number", OpMatches, `^FR`), false},
		{"all", All(Field("tax_rate", OpEq, 6), FieldIn("sector", "RENOVATION")), true},
		{"all fails", All(Field("tax_rate", OpEq, 6), Field("is_consumer", OpFalse, nil)), false},
		{"any", Any(Field("tax_rate", OpEq, 21), Field("is_consumer", OpTrue, nil)), true},
		{"not", Not(Field("tax_rate", OpEq, 6)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			condition := tt.condition
			if err := condition.Compile(); err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got := condition.Eval(record); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditionCompileErrors(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		wantErr   string
	}{
		{"empty", Condition{}, "exactly one"},
		{"two kinds", Condition{Field: "a", Op: OpTrue, Not: &Condition{Field: "b", Op: OpTrue}}, "exactly one"},
		{"missing operator", Condition{Field: "a"}, "operator is required"},
		{"unknown operator", Field("a", "between", 1), "unknown operator"},
		{"numeric operator with string", Field("a", OpLt, "x"), "numeric value"},
		{"in without values", FieldIn("a"), "at least one value"},
		{"bad regex", Field("a", OpMatches, "("), "compiling"},
		{"nested error path", All(Field("a", OpTrue, nil), Field("b", "zz", nil)), "condition.all[1](b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			condition := tt.condition
			err := condition.Compile()
			if err == nil {
				t.Fatalf("Compile() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Compile() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConditionUncompiledMatches(t *testing.T) {
	condition := Field("vat_number", OpMatches, `^BE`)
	if condition.Eval(Record{"vat_number": "BE1"}) {
		t.Error("uncompiled matches condition should not match")
	}
}

func TestConditionClone(t *testing.T) {
	original := All(
		FieldIn("client_type", "b2c", "particulier"),
		Not(Field("vat_number", OpMatches, `^BE`)),
	)
	if err := original.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	clone := original.Clone()
	clone.All[0].Values[0] = "b2b"
	clone.All[1].Not.Field = "client_name"

	if original.All[0].Values[0] != "b2c" {
		t.Errorf("original Values changed to %v", original.All[0].Values[0])
	}
	if original.All[1].Not.Field != "vat_number" {
		t.Errorf("original Not.Field changed to %q", original.All[1].Not.Field)
	}

	r := Record{"client_type": "b2c", "vat_number": "FR1"}
	fresh := original.Clone()
	if !fresh.Eval(r) {
		t.Error("clone of a compiled condition should evaluate like the original")
	}
}
