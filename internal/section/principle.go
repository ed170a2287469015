package section

import (
	"regexp"
	"strings"
)

// OrdinalStyle distinguishes roman-numeral principles ("III.") from
// arabic ones ("3.").
type OrdinalStyle string

const (
	OrdinalRoman  OrdinalStyle = "roman"
	OrdinalArabic OrdinalStyle = "arabic"
)

// Principle is a numbered sub-section of the principles section:
// an ordinal, a title, an imperative Rules list, and a Rationale
// paragraph. Either part may be empty; completeness is judged by the
// structure validator, not here.
type Principle struct {
	Ordinal   int
	Style     OrdinalStyle
	Title     string
	Section   *Section
	Rules     []string
	Rationale string
}

var (
	principlePattern = regexp.MustCompile(`^(?:Principle\s+)?([IVXLCDM]+|[0-9]+)[.):]\s+(.+)$`)
	listItemPattern  = regexp.MustCompile(`^\s*(?:[-*+]|[0-9]+[.)])\s+(.+)$`)
	rationaleLabel   = regexp.MustCompile(`^\*{0,2}_?Rationale_?\*{0,2}:?\*{0,2}\s*(.*)$`)
	rulesLabel       = regexp.MustCompile(`^\*{0,2}_?Rules_?\*{0,2}:?\*{0,2}\s*$`)
)

// Principles extracts the numbered principles that are direct children
// of the given section.
func Principles(parent *Section) []Principle {
	if parent == nil {
		return nil
	}
	var out []Principle
	for _, child := range parent.Children {
		m := principlePattern.FindStringSubmatch(child.Title)
		if m == nil {
			continue
		}
		ordinal, style, ok := parseOrdinal(m[1])
		if !ok {
			continue
		}
		p := Principle{
			Ordinal: ordinal,
			Style:   style,
			Title:   strings.TrimSpace(m[2]),
			Section: child,
		}
		p.Rules, p.Rationale = rulesAndRationale(child)
		out = append(out, p)
	}
	return out
}

// rulesAndRationale splits a principle's content into its imperative
// list items and its rationale prose. Explicit "Rules" / "Rationale"
// labels (bold paragraphs or sub-headings) take precedence; without a
// rationale label, any non-list prose in the body counts as rationale.
func rulesAndRationale(sec *Section) ([]string, string) {
	var rules []string
	var rationale []string

	collect := func(lines []string) {
		inRationale := false
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if rulesLabel.MatchString(trimmed) {
				inRationale = false
				continue
			}
			if m := rationaleLabel.FindStringSubmatch(trimmed); m != nil {
				inRationale = true
				if rest := strings.TrimSpace(m[1]); rest != "" {
					rationale = append(rationale, rest)
				}
				continue
			}
			if m := listItemPattern.FindStringSubmatch(line); m != nil && !inRationale {
				rules = append(rules, strings.TrimSpace(m[1]))
				continue
			}
			if inRationale {
				rationale = append(rationale, trimmed)
			} else if !strings.HasPrefix(trimmed, "```") && !strings.HasPrefix(trimmed, "~~~") {
				// Unlabeled prose in the body counts as rationale.
				rationale = append(rationale, trimmed)
			}
		}
	}

	collect(sec.Body)
	for _, child := range sec.Children {
		switch {
		case rulesLabel.MatchString(child.Title):
			for _, line := range child.Body {
				if m := listItemPattern.FindStringSubmatch(line); m != nil {
					rules = append(rules, strings.TrimSpace(m[1]))
				}
			}
		case rationaleLabel.MatchString(child.Title):
			if text := child.BodyText(); text != "" {
				rationale = append(rationale, text)
			}
		}
	}

	return rules, strings.Join(rationale, "\n")
}

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// parseOrdinal converts a roman or arabic ordinal token to its value.
func parseOrdinal(token string) (int, OrdinalStyle, bool) {
	if token[0] >= '0' && token[0] <= '9' {
		n := 0
		for i := 0; i < len(token); i++ {
			if token[i] < '0' || token[i] > '9' {
				return 0, "", false
			}
			n = n*10 + int(token[i]-'0')
		}
		return n, OrdinalArabic, n > 0
	}
	n := parseRoman(token)
	if n <= 0 {
		return 0, "", false
	}
	return n, OrdinalRoman, true
}

func parseRoman(s string) int {
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}
