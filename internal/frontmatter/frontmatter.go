// Package frontmatter extracts the delimited metadata header of a
// governance document: semantic version, declared change type, and the
// ratification / amendment dates.
//
// Two delimiter grammars are recognized at the top of a document: YAML
// front matter fenced by "---" lines, and a sync-impact HTML comment
// ("<!-- sync-impact ... -->") whose body is key: value lines. Both
// grammars parse into the same Header record. Headers are optional; a
// document without one yields a nil Header and no error.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the only accepted date format for header dates.
const DateLayout = "2006-01-02"

// Sentinel errors for header parsing failures.
var (
	ErrMalformedHeader = errors.New("malformed header")
	ErrInvalidDate     = errors.New("invalid date")
)

// ChangeType is the declared semantic-version bump classification.
type ChangeType string

const (
	ChangeNone  ChangeType = ""
	ChangeMajor ChangeType = "MAJOR"
	ChangeMinor ChangeType = "MINOR"
	ChangePatch ChangeType = "PATCH"
)

// Header is the parsed front-matter record. Dates are kept as validated
// DateLayout strings so that Marshal round-trips byte-for-byte.
type Header struct {
	Version     string
	ChangeType  ChangeType
	Ratified    string
	LastAmended string
}

// RatifiedTime returns the parsed ratification date, if present.
func (h *Header) RatifiedTime() (time.Time, bool) {
	return headerTime(h.Ratified)
}

// LastAmendedTime returns the parsed last-amended date, if present.
func (h *Header) LastAmendedTime() (time.Time, bool) {
	return headerTime(h.LastAmended)
}

func headerTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// headerYAML fixes the key order for Marshal output.
type headerYAML struct {
	Version     string `yaml:"version"`
	ChangeType  string `yaml:"change_type,omitempty"`
	Ratified    string `yaml:"ratified,omitempty"`
	LastAmended string `yaml:"last_amended,omitempty"`
}

// Marshal re-serializes the header as a YAML front-matter block. Parsing
// the output yields an identical Header.
func (h *Header) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(headerYAML{
		Version:     h.Version,
		ChangeType:  string(h.ChangeType),
		Ratified:    h.Ratified,
		LastAmended: h.LastAmended,
	}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

// Parse scans the top of raw for a header block. It returns (nil, nil)
// when no block is present. A block that is present but missing the
// version field fails with ErrMalformedHeader naming the field; a date
// that does not match DateLayout fails with ErrInvalidDate.
func Parse(raw string) (*Header, error) {
	body, ok, err := extractBlock(raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	// Decode into strings so scalars keep their raw spelling; the
	// strict date check below must see "2025-6-1" as written, not a
	// YAML-resolved timestamp.
	fields := map[string]string{}
	if err := yaml.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	norm := make(map[string]string, len(fields))
	for k, v := range fields {
		norm[normalizeKey(k)] = v
	}

	h := &Header{}

	version, ok := lookup(norm, "version")
	if !ok || strings.TrimSpace(version) == "" {
		return nil, fmt.Errorf("%w: missing required field %q", ErrMalformedHeader, "version")
	}
	h.Version = strings.TrimSpace(version)

	if ct, ok := lookup(norm, "change_type", "change", "bump"); ok {
		parsed, err := parseChangeType(ct)
		if err != nil {
			return nil, err
		}
		h.ChangeType = parsed
	}

	if d, ok := lookup(norm, "ratified", "ratification_date"); ok {
		if h.Ratified, err = parseDate("ratified", d); err != nil {
			return nil, err
		}
	}
	if d, ok := lookup(norm, "last_amended", "amended", "last_amended_on"); ok {
		if h.LastAmended, err = parseDate("last_amended", d); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// extractBlock returns the key/value body of the header block and
// whether one was found at all.
func extractBlock(raw string) (string, bool, error) {
	if strings.HasPrefix(raw, "---\n") || strings.HasPrefix(raw, "---\r\n") {
		rest := raw[strings.Index(raw, "\n")+1:]
		end := findFenceEnd(rest)
		if end < 0 {
			return "", false, fmt.Errorf("%w: front matter opened but never closed", ErrMalformedHeader)
		}
		return rest[:end], true, nil
	}

	if strings.HasPrefix(raw, "<!--") {
		firstLine := raw
		if i := strings.Index(raw, "\n"); i >= 0 {
			firstLine = raw[:i]
		}
		marker := strings.ToLower(firstLine)
		if !strings.Contains(marker, "sync impact") && !strings.Contains(marker, "sync-impact") {
			return "", false, nil
		}
		end := strings.Index(raw, "-->")
		if end < 0 {
			return "", false, fmt.Errorf("%w: sync-impact comment opened but never closed", ErrMalformedHeader)
		}
		body := raw[len("<!--"):end]
		// Drop the marker line itself; the remainder is key: value lines.
		if i := strings.Index(body, "\n"); i >= 0 {
			body = body[i+1:]
		} else {
			body = ""
		}
		return body, true, nil
	}

	return "", false, nil
}

// findFenceEnd locates the closing "---" line in the text following the
// opening fence and returns the offset of its start, or -1.
func findFenceEnd(rest string) int {
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "---" {
			return offset
		}
		offset += len(line)
	}
	return -1
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "-", "_")
	return k
}

// lookup returns the first matching key's value.
func lookup(fields map[string]string, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v, true
		}
	}
	return "", false
}

func parseChangeType(s string) (ChangeType, error) {
	switch ChangeType(strings.ToUpper(strings.TrimSpace(s))) {
	case ChangeMajor:
		return ChangeMajor, nil
	case ChangeMinor:
		return ChangeMinor, nil
	case ChangePatch:
		return ChangePatch, nil
	case ChangeNone:
		return ChangeNone, nil
	}
	return ChangeNone, fmt.Errorf("%w: change_type must be MAJOR, MINOR, or PATCH, got %q", ErrMalformedHeader, s)
}

func parseDate(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: field %q: %q is not a %s date", ErrInvalidDate, field, s, DateLayout)
	}
	// Reject dates that normalize differently (e.g. 2025-6-13).
	if t.Format(DateLayout) != s {
		return "", fmt.Errorf("%w: field %q: %q is not a %s date", ErrInvalidDate, field, s, DateLayout)
	}
	return s, nil
}
