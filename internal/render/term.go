package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/govlint/internal/schema"
)

// termRenderer produces ANSI-styled output for interactive terminals.
type termRenderer struct{}

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	pathStyle    = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func (r *termRenderer) Render(report *schema.Report) ([]byte, error) {
	var sb strings.Builder

	for _, res := range report.Results {
		badge := passStyle.Render("PASS")
		if !res.Pass {
			badge = failStyle.Render("FAIL")
		}
		fmt.Fprintf(&sb, "%s %s %s\n", badge, pathStyle.Render(res.Path),
			dimStyle.Render(fmt.Sprintf("(%d/100)", res.Score)))

		if res.Err != "" {
			fmt.Fprintf(&sb, "  %s %s\n", errorStyle.Render("load error:"), res.Err)
		}

		for _, f := range res.Findings {
			sev := warnStyle.Render(string(f.Severity))
			if f.Severity == schema.SeverityError {
				sev = errorStyle.Render(string(f.Severity))
			}
			fmt.Fprintf(&sb, "  %s %s %s\n", sev, dimStyle.Render(string(f.Code)), f.Message)
			if f.Section != "" {
				loc := f.Section
				if f.Line > 0 {
					loc = fmt.Sprintf("%s (line %d)", loc, f.Line)
				}
				fmt.Fprintf(&sb, "    %s\n", sectionStyle.Render(loc))
			}
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%d document(s): %d passed, %d failed — %d error(s), %d warning(s)\n",
		report.Summary.Documents, report.Summary.Passed, report.Summary.Failed,
		report.Summary.ErrorCount, report.Summary.WarningCount)

	return []byte(sb.String()), nil
}
