package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/govlint/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Parse(`# Governance Validation Report

**Documents:** {{ .Summary.Documents }} | **Passed:** {{ .Summary.Passed }} | **Failed:** {{ .Summary.Failed }}
**Errors:** {{ .Summary.ErrorCount }} | **Warnings:** {{ .Summary.WarningCount }}
> Note: counts reflect all findings; --severity-threshold may hide some from this output.
{{ range .Results }}
---

## {{ .Path }} — {{ if .Pass }}PASS{{ else }}FAIL{{ end }} ({{ .Score }}/100)
{{ if .Err }}
**Load error:** {{ .Err }}
{{ end }}{{ range .Findings }}
### {{ .Code }} · {{ .Severity }}
{{ .Message }}
{{ if .Section }}
> {{ .Section }}{{ if .Line }} (line {{ .Line }}){{ end }}
{{ end }}{{ if .Quote }}
> "{{ .Quote }}"
{{ end }}{{ end }}{{ if .Patches }}
**Suggested fixes:** {{ len .Patches }} (see --patch-out for machine-applicable diffs)
{{ end }}{{ end }}
---
*Run: {{ .RunID }} | {{ .Tool }} {{ .Version }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
