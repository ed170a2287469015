package review

import (
	"testing"

	"github.com/dshills/govlint/internal/schema"
)

func findings(sevs ...schema.Severity) []schema.Finding {
	out := make([]schema.Finding, len(sevs))
	for i, s := range sevs {
		out[i] = schema.Finding{Severity: s, Code: schema.CodeIncompletePrinciple}
	}
	return out
}

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		in   []schema.Finding
		want int
	}{
		{"clean", nil, 100},
		{"one error", findings(schema.SeverityError), 85},
		{"one warning", findings(schema.SeverityWarning), 96},
		{"mixed", findings(schema.SeverityError, schema.SeverityWarning, schema.SeverityWarning), 77},
		{"clamped", findings(
			schema.SeverityError, schema.SeverityError, schema.SeverityError,
			schema.SeverityError, schema.SeverityError, schema.SeverityError,
			schema.SeverityError), 0},
	}
	for _, tc := range cases {
		if got := Score(tc.in); got != tc.want {
			t.Errorf("%s: Score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPass(t *testing.T) {
	if !Pass(nil) {
		t.Error("no findings should pass")
	}
	if !Pass(findings(schema.SeverityWarning, schema.SeverityWarning)) {
		t.Error("warnings alone should pass")
	}
	if Pass(findings(schema.SeverityWarning, schema.SeverityError)) {
		t.Error("any error should fail")
	}
}

func TestCounts(t *testing.T) {
	errs, warns := Counts(findings(schema.SeverityError, schema.SeverityWarning, schema.SeverityError))
	if errs != 2 || warns != 1 {
		t.Errorf("Counts = (%d, %d), want (2, 1)", errs, warns)
	}
}

func TestFilterBySeverity(t *testing.T) {
	in := findings(schema.SeverityError, schema.SeverityWarning, schema.SeverityError)

	if got := FilterBySeverity(in, schema.SeverityWarning); len(got) != 3 {
		t.Errorf("warning threshold kept %d findings, want 3", len(got))
	}
	got := FilterBySeverity(in, schema.SeverityError)
	if len(got) != 2 {
		t.Fatalf("error threshold kept %d findings, want 2", len(got))
	}
	for _, f := range got {
		if f.Severity != schema.SeverityError {
			t.Errorf("filtered finding has severity %s", f.Severity)
		}
	}
}
