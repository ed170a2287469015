// Package structure validates the section layout of a governance
// document: a principles section with numbered, complete principles,
// and a governance section carrying an amendment procedure and a
// versioning policy. Validation is best-effort; every violation is
// collected as a finding and none aborts the run.
package structure

import (
	"strings"

	"github.com/dshills/govlint/internal/profile"
	"github.com/dshills/govlint/internal/schema"
	"github.com/dshills/govlint/internal/section"
)

// Validate checks the section tree against the profile's structural
// rules and returns all findings in document order.
func Validate(root *section.Section, prof *profile.Profile) []schema.Finding {
	findings := validatePrinciples(root, prof)
	findings = append(findings, validateGovernance(root, prof)...)
	return findings
}

func validatePrinciples(root *section.Section, prof *profile.Profile) []schema.Finding {
	core := root.Find(prof.PrincipleSections...)
	if core == nil {
		return []schema.Finding{schema.Errorf(schema.CodeMissingPrinciples, "",
			"no %q section found", prof.PrincipleSections[0])}
	}

	principles := section.Principles(core)
	if len(principles) < prof.MinPrinciples {
		f := schema.Errorf(schema.CodeMissingPrinciples, core.Path(),
			"%q must contain at least %d numbered principle(s), found %d",
			core.Title, prof.MinPrinciples, len(principles))
		f.Line = core.Line
		return []schema.Finding{f}
	}

	var findings []schema.Finding
	for _, p := range principles {
		findings = append(findings, validatePrinciple(p)...)
	}
	findings = append(findings, checkOrdinals(core, principles, prof)...)
	return findings
}

func validatePrinciple(p section.Principle) []schema.Finding {
	var findings []schema.Finding
	if len(p.Rules) == 0 {
		f := schema.Errorf(schema.CodeIncompletePrinciple, p.Section.Path(),
			"principle %d (%s) has no rules list", p.Ordinal, p.Title)
		f.Line = p.Section.Line
		f.Quote = excerpt(p.Section)
		f.Missing = "rules"
		findings = append(findings, f)
	}
	if strings.TrimSpace(p.Rationale) == "" {
		f := schema.Errorf(schema.CodeIncompletePrinciple, p.Section.Path(),
			"principle %d (%s) has no rationale", p.Ordinal, p.Title)
		f.Line = p.Section.Line
		f.Quote = excerpt(p.Section)
		f.Missing = "rationale"
		findings = append(findings, f)
	}
	return findings
}

// excerpt returns the first non-empty body line of a section, capped,
// for use as the finding's quote. Falls back to the heading title for
// body-less sections.
func excerpt(sec *section.Section) string {
	for _, line := range sec.Body {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if len(t) > 120 {
			t = t[:120]
		}
		return t
	}
	return sec.Title
}

// checkOrdinals flags numbering that would confuse amendment references:
// gaps or duplicates in the sequence, and a numbering style other than
// the one the profile expects.
func checkOrdinals(core *section.Section, principles []section.Principle, prof *profile.Profile) []schema.Finding {
	var findings []schema.Finding

	sequential := true
	for i, p := range principles {
		if p.Ordinal != i+1 {
			sequential = false
			break
		}
	}
	if !sequential {
		f := schema.Warnf(schema.CodeIncompletePrinciple, core.Path(),
			"principle ordinals are not sequential from 1")
		f.Line = core.Line
		findings = append(findings, f)
	}

	if prof.OrdinalStyle != "" {
		for _, p := range principles {
			if p.Style != prof.OrdinalStyle {
				f := schema.Warnf(schema.CodeIncompletePrinciple, p.Section.Path(),
					"principle %d uses %s numbering; the %s profile expects %s numerals",
					p.Ordinal, p.Style, prof.Name, prof.OrdinalStyle)
				f.Line = p.Section.Line
				findings = append(findings, f)
				break
			}
		}
	}

	return findings
}

func validateGovernance(root *section.Section, prof *profile.Profile) []schema.Finding {
	gov := root.Find(prof.GovernanceSections...)
	if gov == nil {
		f := schema.Errorf(schema.CodeMissingGovernance, "",
			"no %q section found", prof.GovernanceSections[0])
		f.Missing = "governance"
		return []schema.Finding{f}
	}

	var findings []schema.Finding
	if !mentions(gov, "amendment") {
		f := schema.Warnf(schema.CodeMissingGovernance, gov.Path(),
			"%q section has no amendment procedure", gov.Title)
		f.Line = gov.Line
		f.Quote = excerpt(gov)
		findings = append(findings, f)
	}
	if !mentions(gov, "versioning policy", "semantic version", "versioning") {
		f := schema.Warnf(schema.CodeMissingGovernance, gov.Path(),
			"%q section has no versioning policy", gov.Title)
		f.Line = gov.Line
		f.Quote = excerpt(gov)
		findings = append(findings, f)
	}
	return findings
}

// mentions reports whether the section's title, its own body, a child
// heading, or a child body contains any of the given phrases,
// case-insensitively.
func mentions(sec *section.Section, phrases ...string) bool {
	texts := []string{sec.Title, sec.BodyText()}
	for _, child := range sec.Children {
		texts = append(texts, child.Title, child.BodyText())
	}
	haystack := strings.ToLower(strings.Join(texts, "\n"))
	for _, p := range phrases {
		if strings.Contains(haystack, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
