package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govlint.yml")
	content := "profile: charter\nformat: md\nseverity_threshold: error\nignore:\n  - \"**/drafts/**\"\njobs: 2\nredact: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "charter", cfg.Profile)
	assert.Equal(t, "md", cfg.Format)
	assert.Equal(t, "error", cfg.SeverityThreshold)
	assert.Equal(t, 2, cfg.Jobs)
	require.NotNil(t, cfg.Redact)
	assert.False(t, *cfg.Redact)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoad_DefaultMissingIsEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("profile: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestIgnored(t *testing.T) {
	cfg := &Config{Ignore: []string{"**/drafts/**", "README.md"}}

	assert.True(t, cfg.Ignored(filepath.Join("docs", "drafts", "wip.md")))
	assert.True(t, cfg.Ignored("README.md"))
	assert.True(t, cfg.Ignored(filepath.Join("sub", "README.md")))
	assert.False(t, cfg.Ignored(filepath.Join("docs", "constitution.md")))
}

func TestIgnored_NoPatterns(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.Ignored("anything.md"))
}
