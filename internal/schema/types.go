package schema

import "fmt"

// Report is the top-level output structure for a validation run.
type Report struct {
	Tool    string           `json:"tool"`
	Version string           `json:"version"`
	RunID   string           `json:"run_id"`
	Summary Summary          `json:"summary"`
	Results []DocumentResult `json:"results"`
}

// Summary holds aggregate counts across every document in the run.
type Summary struct {
	Documents    int `json:"documents"`
	Passed       int `json:"passed"`
	Failed       int `json:"failed"`
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
}

// DocumentResult is the outcome of validating a single document.
// Pass is true iff the document produced no error-severity finding.
// Err is set only for documents that could not be loaded at all; such
// documents are skipped and carry a single fatal finding.
type DocumentResult struct {
	Path     string    `json:"path"`
	Hash     string    `json:"hash,omitempty"` // "sha256:<hex>" of the loaded file
	Pass     bool      `json:"pass"`
	Score    int       `json:"score"`
	Findings []Finding `json:"findings"`
	Patches  []Patch   `json:"patches,omitempty"`
	Err      string    `json:"error,omitempty"`
}

// Severity levels for findings.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Code classifies a finding. NotFound and ReadError are fatal for the
// affected document; every other code is a collected structural or
// versioning finding.
type Code string

const (
	CodeNotFound            Code = "NotFound"
	CodeReadError           Code = "ReadError"
	CodeMalformedHeader     Code = "MalformedHeader"
	CodeInvalidDate         Code = "InvalidDate"
	CodeInvalidVersion      Code = "InvalidVersion"
	CodeMissingPrinciples   Code = "MissingPrinciples"
	CodeIncompletePrinciple Code = "IncompletePrinciple"
	CodeMissingGovernance   Code = "MissingGovernance"
	CodeVersionMismatch     Code = "VersionMismatch"
)

// IsValidCode reports whether c is one of the defined finding codes.
func IsValidCode(c Code) bool {
	switch c {
	case CodeNotFound,
		CodeReadError,
		CodeMalformedHeader,
		CodeInvalidDate,
		CodeInvalidVersion,
		CodeMissingPrinciples,
		CodeIncompletePrinciple,
		CodeMissingGovernance,
		CodeVersionMismatch:
		return true
	}
	return false
}

// IsFatal reports whether c aborts validation of the affected document.
func IsFatal(c Code) bool {
	return c == CodeNotFound || c == CodeReadError
}

// Finding is a single validation result.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	// Section is the heading path of the offending section,
	// e.g. "Core Principles > III. Test-First". Empty for
	// document-level findings.
	Section string `json:"section,omitempty"`
	Line    int    `json:"line,omitempty"`
	// Quote is a short excerpt of the offending text. Quotes pass
	// through secret redaction before rendering unless disabled.
	Quote string `json:"quote,omitempty"`
	// Missing names the absent part for findings with a mechanical
	// fix: "rules", "rationale", or "governance". Patch suggestion
	// keys on this, never on message wording.
	Missing string `json:"missing,omitempty"`
}

// Patch is a machine-applicable suggested fix for a finding.
type Patch struct {
	Code    Code   `json:"code"`
	Section string `json:"section,omitempty"`
	Before  string `json:"before"`
	After   string `json:"after"`
}

// Errorf constructs an error-severity finding.
func Errorf(code Code, section, format string, args ...any) Finding {
	return newFinding(SeverityError, code, section, format, args...)
}

// Warnf constructs a warning-severity finding.
func Warnf(code Code, section, format string, args ...any) Finding {
	return newFinding(SeverityWarning, code, section, format, args...)
}

func newFinding(sev Severity, code Code, section, format string, args ...any) Finding {
	return Finding{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Section:  section,
	}
}
