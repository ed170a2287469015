package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/govlint/internal/profile"
	"github.com/dshills/govlint/internal/schema"
	"github.com/dshills/govlint/internal/section"
)

func mustProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	p, err := profile.Get(name)
	require.NoError(t, err)
	return p
}

func validate(t *testing.T, doc, profileName string) []schema.Finding {
	t.Helper()
	return Validate(section.Parse(doc), mustProfile(t, profileName))
}

func byCode(findings []schema.Finding, code schema.Code) []schema.Finding {
	var out []schema.Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

const completeDoc = `# Constitution

## Core Principles

### I. Spec-First

- MUST write the spec first

Rationale: contracts before code.

### II. Test-First

- MUST write a failing test first

Rationale: tests document behavior.

## Governance

Amendments require approval and a version bump.

### Versioning Policy

Semantic versioning applies.
`

func TestValidate_CompleteDocumentPasses(t *testing.T) {
	findings := validate(t, completeDoc, "constitution")
	assert.Empty(t, findings)
}

func TestValidate_MissingPrinciplesSection(t *testing.T) {
	doc := "# Constitution\n\n## Governance\n\nAmendments and versioning policy.\n"
	findings := validate(t, doc, "constitution")

	missing := byCode(findings, schema.CodeMissingPrinciples)
	require.Len(t, missing, 1)
	assert.Equal(t, schema.SeverityError, missing[0].Severity)
}

func TestValidate_NoNumberedPrinciples(t *testing.T) {
	doc := "# Constitution\n\n## Core Principles\n\nJust prose, no numbered principles.\n\n## Governance\n\nAmendments and versioning policy.\n"
	findings := validate(t, doc, "constitution")

	missing := byCode(findings, schema.CodeMissingPrinciples)
	require.Len(t, missing, 1)
	assert.Contains(t, missing[0].Message, "at least 1")
}

// A principle with rules but an empty rationale yields exactly one
// IncompletePrinciple error and the document fails overall.
func TestValidate_EmptyRationale(t *testing.T) {
	doc := `# Constitution

## Core Principles

### I. Bare

- MUST have rules only

### II. Complete

- MUST have both parts

Rationale: completeness matters.

## Governance

Amendments require approval per the versioning policy.
`
	findings := validate(t, doc, "constitution")

	incomplete := byCode(findings, schema.CodeIncompletePrinciple)
	require.Len(t, incomplete, 1)
	assert.Equal(t, schema.SeverityError, incomplete[0].Severity)
	assert.Contains(t, incomplete[0].Message, "rationale")
	assert.Contains(t, incomplete[0].Section, "I. Bare")
	assert.Equal(t, "rationale", incomplete[0].Missing)
	assert.Equal(t, "- MUST have rules only", incomplete[0].Quote)
}

func TestValidate_EmptyRules(t *testing.T) {
	doc := `# Constitution

## Core Principles

### I. Prose-Only

This principle explains itself but binds nobody.

## Governance

Amendments require approval per the versioning policy.
`
	findings := validate(t, doc, "constitution")

	incomplete := byCode(findings, schema.CodeIncompletePrinciple)
	require.Len(t, incomplete, 1)
	assert.Contains(t, incomplete[0].Message, "rules")
	assert.Equal(t, "rules", incomplete[0].Missing)
	assert.Equal(t, "This principle explains itself but binds nobody.", incomplete[0].Quote)
}

// A document missing Governance entirely yields exactly one
// MissingGovernance finding and nothing else when the principles are
// complete.
func TestValidate_MissingGovernance(t *testing.T) {
	doc := `# Constitution

## Core Principles

### I. Spec-First

- MUST write the spec first

Rationale: contracts before code.
`
	findings := validate(t, doc, "constitution")

	require.Len(t, findings, 1)
	assert.Equal(t, schema.CodeMissingGovernance, findings[0].Code)
	assert.Equal(t, schema.SeverityError, findings[0].Severity)
	assert.Equal(t, "governance", findings[0].Missing)
}

func TestValidate_GovernanceSubsectionWarnings(t *testing.T) {
	doc := `# Constitution

## Core Principles

### I. Spec-First

- MUST write the spec first

Rationale: contracts before code.

## Governance

Decisions are made by consensus.
`
	findings := validate(t, doc, "constitution")

	gov := byCode(findings, schema.CodeMissingGovernance)
	require.Len(t, gov, 2)
	for _, f := range gov {
		assert.Equal(t, schema.SeverityWarning, f.Severity)
	}
	assert.Contains(t, gov[0].Message, "amendment")
	assert.Contains(t, gov[1].Message, "versioning")
}

func TestValidate_NonSequentialOrdinals(t *testing.T) {
	doc := `# Constitution

## Core Principles

### I. First

- MUST do this

Rationale: reasons.

### III. Third

- MUST do that

Rationale: more reasons.

## Governance

Amendments require approval per the versioning policy.
`
	findings := validate(t, doc, "constitution")

	warnings := byCode(findings, schema.CodeIncompletePrinciple)
	require.Len(t, warnings, 1)
	assert.Equal(t, schema.SeverityWarning, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "sequential")
}

func TestValidate_OrdinalStyleMismatch(t *testing.T) {
	doc := `# Constitution

## Core Principles

### 1. Arabic

- MUST do this

Rationale: reasons.

## Governance

Amendments require approval per the versioning policy.
`
	// The constitution profile expects roman numerals; charter accepts any.
	findings := validate(t, doc, "constitution")
	warnings := byCode(findings, schema.CodeIncompletePrinciple)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "roman")

	assert.Empty(t, validate(t, doc, "charter"))
}

func TestValidate_CharterSectionAliases(t *testing.T) {
	doc := `# Charter

## Principles

### 1. Open

- MUST work in the open

Rationale: visibility builds trust.

## Amendments

Changes follow the versioning policy.
`
	assert.Empty(t, validate(t, doc, "charter"))
}
