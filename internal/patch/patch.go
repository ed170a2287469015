// Package patch turns fixable findings into machine-applicable diffs in
// diff-match-patch format, suitable for --patch-out.
package patch

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/govlint/internal/schema"
)

const governanceSkeleton = "## Governance\n\n" +
	"Amendments require documented approval and a version bump per the\n" +
	"versioning policy below.\n\n" +
	"### Versioning Policy\n\n" +
	"This document follows semantic versioning: MAJOR for breaking\n" +
	"governance changes, MINOR for additive ones, PATCH for clarifications."

// Suggest derives patches for the findings that have a mechanical fix,
// selected by the finding's Missing field: a missing governance section
// gets a skeleton appended, and a principle without a rationale gets a
// placeholder paragraph under its heading.
// docRaw is the original document text; anchors are taken from it so the
// resulting diff applies cleanly.
func Suggest(docRaw string, findings []schema.Finding) []schema.Patch {
	var patches []schema.Patch
	lines := strings.Split(docRaw, "\n")

	for _, f := range findings {
		switch {
		case f.Missing == "governance":
			anchor := lastNonEmptyLine(lines)
			if anchor == "" {
				continue
			}
			patches = append(patches, schema.Patch{
				Code:   f.Code,
				Before: anchor,
				After:  anchor + "\n\n" + governanceSkeleton,
			})

		case f.Missing == "rationale":
			if f.Line < 1 || f.Line > len(lines) {
				continue
			}
			heading := lines[f.Line-1]
			patches = append(patches, schema.Patch{
				Code:    f.Code,
				Section: f.Section,
				Before:  heading,
				After:   heading + "\n\nRationale: state why this principle is non-negotiable.",
			})
		}
	}

	return patches
}

func lastNonEmptyLine(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}

// GenerateDiff converts patches into a unified diff-match-patch string.
// Patches whose anchor cannot be located in the document are skipped
// with a warning written to w (may be nil). Both sides are normalized
// before diffing to avoid spurious whitespace diffs.
func GenerateDiff(docRaw string, patches []schema.Patch, w io.Writer) string {
	if len(patches) == 0 {
		return ""
	}

	normDoc := normalize(docRaw)
	dmp := diffmatchpatch.New()
	var out strings.Builder

	for _, p := range patches {
		before, after, ok := resolve(p, docRaw, normDoc)
		if !ok {
			if w != nil {
				fmt.Fprintf(w, "WARN: patch for %s could not be anchored in the document\n", p.Code)
			}
			continue
		}

		diffs := dmp.DiffMain(before, after, false)
		patchList := dmp.PatchMake(before, diffs)
		patchText := dmp.PatchToText(patchList)
		if patchText == "" {
			continue
		}

		out.WriteString(fmt.Sprintf("# patch for %s\n", p.Code))
		out.WriteString(patchText)
		out.WriteString("\n")
	}

	return out.String()
}

// resolve attempts to locate p.Before in docRaw using exact or
// normalized matching.
func resolve(p schema.Patch, docRaw, normDoc string) (before, after string, ok bool) {
	if strings.Contains(docRaw, p.Before) {
		return p.Before, p.After, true
	}

	normBefore := normalize(p.Before)
	if strings.Contains(normDoc, normBefore) {
		return normBefore, normalize(p.After), true
	}

	return "", "", false
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
