// Package section parses a markdown document into a tree of headed
// sections and extracts the numbered principles a governance document
// declares under its principles section.
package section

import (
	"regexp"
	"strings"
)

// Section is one headed region of a document. The root section has
// level 0 and an empty title; its Body is any text before the first
// heading (the front-matter block included).
type Section struct {
	Title    string
	Level    int
	Line     int // 1-based line of the heading
	Body     []string
	Children []*Section
	parent   *Section
}

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// Parse builds the section tree for a markdown document. Headings
// inside fenced code blocks are ignored.
func Parse(raw string) *Section {
	root := &Section{}
	current := root

	inFence := false
	fenceMarker := ""

	for i, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if inFence {
			current.Body = append(current.Body, line)
			if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = true
			fenceMarker = trimmed[:3]
			current.Body = append(current.Body, line)
			continue
		}

		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			current.Body = append(current.Body, line)
			continue
		}

		sec := &Section{
			Title: m[2],
			Level: len(m[1]),
			Line:  i + 1,
		}

		parent := current
		for parent.Level >= sec.Level && parent.parent != nil {
			parent = parent.parent
		}
		sec.parent = parent
		parent.Children = append(parent.Children, sec)
		current = sec
	}

	return root
}

// Path returns the heading path from the document root to s,
// joined with " > ".
func (s *Section) Path() string {
	var parts []string
	for cur := s; cur != nil && cur.Level > 0; cur = cur.parent {
		parts = append([]string{cur.Title}, parts...)
	}
	return strings.Join(parts, " > ")
}

// BodyText returns the section's own body (child sections excluded)
// with surrounding blank lines trimmed.
func (s *Section) BodyText() string {
	return strings.TrimSpace(strings.Join(s.Body, "\n"))
}

// Find returns the first section in the tree whose title matches any of
// the given titles, case-insensitively. Search is depth-first from s.
func (s *Section) Find(titles ...string) *Section {
	for _, child := range s.Children {
		if titleMatches(child.Title, titles) {
			return child
		}
		if found := child.Find(titles...); found != nil {
			return found
		}
	}
	return nil
}

func titleMatches(title string, wanted []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, w := range wanted {
		if normalized == strings.ToLower(w) {
			return true
		}
	}
	return false
}
