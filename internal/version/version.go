// Package version enforces the semantic-version rules a governance
// document declares for itself: strict MAJOR.MINOR.PATCH form,
// monotonic non-decrease across the document's lineage, and consistency
// between the declared change type and the actual numeric delta.
package version

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/dshills/govlint/internal/frontmatter"
	"github.com/dshills/govlint/internal/schema"
)

// ErrInvalidVersion reports a version string that is not three
// dot-separated non-negative integers.
var ErrInvalidVersion = errors.New("invalid version")

// Record is one point in a document's revision lineage.
type Record struct {
	Version     *semver.Version
	ChangeType  frontmatter.ChangeType
	Ratified    time.Time
	LastAmended time.Time
	hasRatified bool
	hasAmended  bool
}

// NewRecord builds a Record from a parsed header. Fails with
// ErrInvalidVersion when the version string is malformed; governance
// versions carry no prerelease or build metadata.
func NewRecord(h *frontmatter.Header) (*Record, error) {
	v, err := semver.StrictNewVersion(h.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, h.Version, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("%w: %q: prerelease and build metadata are not permitted", ErrInvalidVersion, h.Version)
	}

	r := &Record{Version: v, ChangeType: h.ChangeType}
	r.Ratified, r.hasRatified = h.RatifiedTime()
	r.LastAmended, r.hasAmended = h.LastAmendedTime()
	return r, nil
}

// Check validates the current record against an optional prior record
// from the same document lineage. Without a prior record only internal
// well-formedness applies (already established by NewRecord), plus the
// ratified/amended date ordering.
func Check(current *Record, prior *Record) []schema.Finding {
	var findings []schema.Finding

	if current.hasRatified && current.hasAmended && current.LastAmended.Before(current.Ratified) {
		findings = append(findings, schema.Warnf(schema.CodeVersionMismatch, "",
			"last amended %s precedes ratification %s",
			current.LastAmended.Format(frontmatter.DateLayout),
			current.Ratified.Format(frontmatter.DateLayout)))
	}

	if prior == nil {
		return findings
	}

	if current.Version.LessThan(prior.Version) {
		findings = append(findings, schema.Errorf(schema.CodeVersionMismatch, "",
			"version regressed from %s to %s", prior.Version, current.Version))
		return findings
	}

	if prior.hasAmended && current.hasAmended && current.LastAmended.Before(prior.LastAmended) {
		findings = append(findings, schema.Warnf(schema.CodeVersionMismatch, "",
			"amendment date moved backwards across revisions (%s, then %s)",
			prior.LastAmended.Format(frontmatter.DateLayout),
			current.LastAmended.Format(frontmatter.DateLayout)))
	}

	if f, ok := checkDeclaredChange(current, prior); !ok {
		findings = append(findings, f)
	}

	return findings
}

// checkDeclaredChange verifies that the declared change type matches the
// numeric delta between prior and current. A MAJOR bump must increment
// major and reset minor and patch to zero; MINOR keeps major, increments
// minor, and resets patch; PATCH touches the patch component only.
func checkDeclaredChange(current, prior *Record) (schema.Finding, bool) {
	cur, old := current.Version, prior.Version

	mismatch := func(want string) (schema.Finding, bool) {
		return schema.Errorf(schema.CodeVersionMismatch, "",
			"header declares a %s change but version went from %s to %s (%s)",
			current.ChangeType, old, cur, want), false
	}

	switch current.ChangeType {
	case frontmatter.ChangeMajor:
		if cur.Major() <= old.Major() || cur.Minor() != 0 || cur.Patch() != 0 {
			return mismatch("expected the major component to increment with minor and patch reset to 0")
		}
	case frontmatter.ChangeMinor:
		if cur.Major() != old.Major() || cur.Minor() <= old.Minor() || cur.Patch() != 0 {
			return mismatch("expected the minor component to increment with patch reset to 0")
		}
	case frontmatter.ChangePatch:
		if cur.Major() != old.Major() || cur.Minor() != old.Minor() || cur.Patch() <= old.Patch() {
			return mismatch("expected only the patch component to increment")
		}
	case frontmatter.ChangeNone:
		// Version unchanged across a dated amendment is suspicious even
		// when no change type is declared.
		if cur.Equal(old) && current.hasAmended && prior.hasAmended && current.LastAmended.After(prior.LastAmended) {
			return schema.Warnf(schema.CodeVersionMismatch, "",
				"document amended without a version change (still %s)", cur), false
		}
	}
	return schema.Finding{}, true
}
