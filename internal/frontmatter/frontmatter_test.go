package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlHeader = `---
version: 2.1.0
change_type: MINOR
ratified: 2025-06-13
last_amended: 2026-01-10
---

# Constitution
`

const commentHeader = `<!-- Sync Impact Report
version: 1.4.2
change: PATCH
ratified: 2024-11-02
last amended: 2025-02-18
-->

# Constitution
`

func TestParse_YAMLHeader(t *testing.T) {
	h, err := Parse(yamlHeader)
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "2.1.0", h.Version)
	assert.Equal(t, ChangeMinor, h.ChangeType)
	assert.Equal(t, "2025-06-13", h.Ratified)
	assert.Equal(t, "2026-01-10", h.LastAmended)
}

func TestParse_SyncImpactComment(t *testing.T) {
	h, err := Parse(commentHeader)
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "1.4.2", h.Version)
	assert.Equal(t, ChangePatch, h.ChangeType)
	assert.Equal(t, "2024-11-02", h.Ratified)
	assert.Equal(t, "2025-02-18", h.LastAmended)
}

func TestParse_NoHeader(t *testing.T) {
	h, err := Parse("# Constitution\n\nNo metadata here.\n")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestParse_PlainCommentIsNotAHeader(t *testing.T) {
	h, err := Parse("<!-- just a comment -->\n# Constitution\n")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestParse_MissingVersion(t *testing.T) {
	_, err := Parse("---\nratified: 2025-06-13\n---\n# Doc\n")
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "version")
}

func TestParse_UnclosedFence(t *testing.T) {
	_, err := Parse("---\nversion: 1.0.0\n# Doc\n")
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParse_BadChangeType(t *testing.T) {
	_, err := Parse("---\nversion: 1.0.0\nchange_type: HUGE\n---\n")
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "HUGE")
}

func TestParse_InvalidDate(t *testing.T) {
	cases := []string{
		"---\nversion: 1.0.0\nratified: June 13, 2025\n---\n",
		"---\nversion: 1.0.0\nlast_amended: 2025-13-40\n---\n",
		"---\nversion: 1.0.0\nratified: 2025-6-1\n---\n",
	}
	for _, raw := range cases {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, "input: %q", raw)
	}
}

func TestParse_ChangeTypeCaseInsensitive(t *testing.T) {
	h, err := Parse("---\nversion: 1.0.0\nchange_type: minor\n---\n")
	require.NoError(t, err)
	assert.Equal(t, ChangeMinor, h.ChangeType)
}

// Round-trip: parsing a marshaled header yields the same four fields.
func TestMarshal_RoundTrip(t *testing.T) {
	orig := &Header{
		Version:     "3.2.1",
		ChangeType:  ChangeMajor,
		Ratified:    "2023-04-01",
		LastAmended: "2025-12-31",
	}

	out, err := orig.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(string(out))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, orig, parsed)
}

func TestMarshal_RoundTripMinimal(t *testing.T) {
	orig := &Header{Version: "1.0.0"}

	out, err := orig.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(string(out))
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}

func TestHeaderTimes(t *testing.T) {
	h := &Header{Version: "1.0.0", Ratified: "2025-06-13"}

	ratified, ok := h.RatifiedTime()
	require.True(t, ok)
	assert.Equal(t, "2025-06-13", ratified.Format(DateLayout))

	_, ok = h.LastAmendedTime()
	assert.False(t, ok)
}
