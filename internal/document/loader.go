package document

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Sentinel errors distinguishing the two fatal load failures.
var (
	ErrNotFound = errors.New("document not found")
	ErrRead     = errors.New("document unreadable")
)

// Document holds a loaded governance document with derived metadata.
type Document struct {
	Path      string
	Name      string // base name without extension, used as the logical identifier
	Hash      string // "sha256:<hex>"
	Raw       string // original content
	LineCount int
}

// Load reads a governance document from disk, verifies it decodes as
// UTF-8 text, and computes its content hash.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s: content is not valid UTF-8", ErrRead, path)
	}

	raw := string(data)
	sum := sha256.Sum256(data)

	return &Document{
		Path:      path,
		Name:      logicalName(path),
		Hash:      fmt.Sprintf("sha256:%x", sum),
		Raw:       raw,
		LineCount: countLines(raw),
	}, nil
}

// logicalName strips the directory and extension from a path, so that
// "memory/constitution.md" and a prior snapshot "constitution.v1.md"
// can be related by the caller.
func logicalName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// countLines counts content lines, not counting the empty remainder
// after a trailing newline.
func countLines(content string) int {
	lines := strings.Split(content, "\n")
	n := len(lines)
	if n > 0 && lines[n-1] == "" {
		n--
	}
	return n
}
