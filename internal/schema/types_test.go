package schema

import "testing"

func TestIsValidCode(t *testing.T) {
	valid := []Code{
		CodeNotFound, CodeReadError, CodeMalformedHeader, CodeInvalidDate,
		CodeInvalidVersion, CodeMissingPrinciples, CodeIncompletePrinciple,
		CodeMissingGovernance, CodeVersionMismatch,
	}
	for _, c := range valid {
		if !IsValidCode(c) {
			t.Errorf("IsValidCode(%s) = false, want true", c)
		}
	}
	if IsValidCode(Code("Bogus")) {
		t.Error("IsValidCode(Bogus) = true, want false")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(CodeNotFound) || !IsFatal(CodeReadError) {
		t.Error("NotFound and ReadError must be fatal")
	}
	if IsFatal(CodeMissingGovernance) {
		t.Error("MissingGovernance must not be fatal")
	}
}

func TestFindingConstructors(t *testing.T) {
	f := Errorf(CodeIncompletePrinciple, "Doc > Core Principles", "principle %d has no %s", 2, "rationale")
	if f.Severity != SeverityError {
		t.Errorf("Severity = %s, want error", f.Severity)
	}
	if f.Message != "principle 2 has no rationale" {
		t.Errorf("Message = %q", f.Message)
	}
	if f.Section != "Doc > Core Principles" {
		t.Errorf("Section = %q", f.Section)
	}

	w := Warnf(CodeMissingGovernance, "", "no versioning policy")
	if w.Severity != SeverityWarning {
		t.Errorf("Severity = %s, want warning", w.Severity)
	}
}
