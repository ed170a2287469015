package review

import "github.com/dshills/govlint/internal/schema"

// Score computes the deterministic document health score from all
// findings. Score is always computed before any --severity-threshold
// filtering. Start: 100, -15 per error, -4 per warning, clamped at 0.
func Score(findings []schema.Finding) int {
	score := 100
	for _, f := range findings {
		switch f.Severity {
		case schema.SeverityError:
			score -= 15
		case schema.SeverityWarning:
			score -= 4
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Pass reports whether a document passes: no error-severity finding.
// Pass is always computed before any --severity-threshold filtering.
func Pass(findings []schema.Finding) bool {
	for _, f := range findings {
		if f.Severity == schema.SeverityError {
			return false
		}
	}
	return true
}

// Counts returns the pre-filter error and warning counts.
func Counts(findings []schema.Finding) (errors, warnings int) {
	for _, f := range findings {
		switch f.Severity {
		case schema.SeverityError:
			errors++
		case schema.SeverityWarning:
			warnings++
		}
	}
	return
}

// FilterBySeverity returns only findings at or above the threshold.
// The warning threshold keeps everything; the error threshold drops
// warnings from the output without affecting score, counts, or pass.
func FilterBySeverity(findings []schema.Finding, threshold schema.Severity) []schema.Finding {
	if threshold != schema.SeverityError {
		return findings
	}
	out := make([]schema.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity == schema.SeverityError {
			out = append(out, f)
		}
	}
	return out
}
