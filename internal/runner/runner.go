// Package runner drives the validation pipeline over a batch of
// documents: load, parse front matter, parse sections, validate
// structure, check version rules, and collect findings. Documents are
// independent, so each is validated on its own worker.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/govlint/internal/document"
	"github.com/dshills/govlint/internal/frontmatter"
	"github.com/dshills/govlint/internal/patch"
	"github.com/dshills/govlint/internal/profile"
	"github.com/dshills/govlint/internal/redact"
	"github.com/dshills/govlint/internal/review"
	"github.com/dshills/govlint/internal/schema"
	"github.com/dshills/govlint/internal/section"
	"github.com/dshills/govlint/internal/structure"
	"github.com/dshills/govlint/internal/version"
)

// Options configures a validation run.
type Options struct {
	Profile *profile.Profile

	// PriorPath is an optional prior snapshot of the same logical
	// document, used for version-lineage checks. Only meaningful when
	// a single document is validated.
	PriorPath string

	// Jobs caps concurrent document workers; <= 0 means NumCPU.
	Jobs int

	// Redact scrubs secret-looking strings from finding quotes.
	Redact bool

	// Suggest attaches mechanical fix patches to each result.
	Suggest bool

	// ToolVersion is stamped into the report.
	ToolVersion string

	Logger *zap.Logger
}

// Run validates every path and returns the aggregated report. A
// document that cannot be loaded is skipped with a fatal entry; it
// never blocks validation of the others.
func Run(ctx context.Context, paths []string, opts Options) (*schema.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Profile == nil {
		opts.Profile, _ = profile.Get("")
	}

	var prior *version.Record
	if opts.PriorPath != "" {
		var err error
		prior, err = loadPrior(opts.PriorPath)
		if err != nil {
			return nil, err
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]schema.DocumentResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug("validating document", zap.String("path", path))
			results[i] = validateDocument(path, prior, opts)
			logger.Debug("document validated",
				zap.String("path", path),
				zap.Bool("pass", results[i].Pass),
				zap.Int("findings", len(results[i].Findings)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &schema.Report{
		Tool:    "govlint",
		Version: opts.ToolVersion,
		RunID:   uuid.NewString(),
		Results: results,
	}
	for _, res := range results {
		report.Summary.Documents++
		if res.Pass {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
		errs, warns := review.Counts(res.Findings)
		report.Summary.ErrorCount += errs
		report.Summary.WarningCount += warns
	}
	return report, nil
}

// loadPrior reads a prior snapshot and extracts its version record.
// A prior snapshot without a header or with a malformed version cannot
// anchor lineage checks, so these are hard errors for the run.
func loadPrior(path string) (*version.Record, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading prior snapshot: %w", err)
	}
	header, err := frontmatter.Parse(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("parsing prior snapshot header: %w", err)
	}
	if header == nil {
		return nil, fmt.Errorf("prior snapshot %s has no metadata header", path)
	}
	rec, err := version.NewRecord(header)
	if err != nil {
		return nil, fmt.Errorf("prior snapshot %s: %w", path, err)
	}
	return rec, nil
}

// validateDocument runs the single-document pipeline. All structural
// and versioning findings are collected; only load failures abort.
func validateDocument(path string, prior *version.Record, opts Options) schema.DocumentResult {
	doc, err := document.Load(path)
	if err != nil {
		return fatalResult(path, err)
	}

	var findings []schema.Finding

	header, err := frontmatter.Parse(doc.Raw)
	switch {
	case errors.Is(err, frontmatter.ErrInvalidDate):
		findings = append(findings, schema.Errorf(schema.CodeInvalidDate, "", "%s", headerErrMessage(err)))
	case err != nil:
		findings = append(findings, schema.Errorf(schema.CodeMalformedHeader, "", "%s", headerErrMessage(err)))
	case header == nil && opts.Profile.RequireHeader:
		findings = append(findings, schema.Warnf(schema.CodeMalformedHeader, "",
			"document has no metadata header; the %s profile expects one", opts.Profile.Name))
	}

	root := section.Parse(doc.Raw)
	findings = append(findings, structure.Validate(root, opts.Profile)...)

	if header != nil && err == nil {
		rec, recErr := version.NewRecord(header)
		if recErr != nil {
			findings = append(findings, schema.Errorf(schema.CodeInvalidVersion, "", "%s", recErr.Error()))
		} else {
			findings = append(findings, version.Check(rec, prior)...)
		}
	}

	if opts.Redact {
		redact.Findings(findings)
	}

	res := schema.DocumentResult{
		Path:     path,
		Hash:     doc.Hash,
		Pass:     review.Pass(findings),
		Score:    review.Score(findings),
		Findings: findings,
	}
	if opts.Suggest {
		res.Patches = patch.Suggest(doc.Raw, findings)
	}
	return res
}

func fatalResult(path string, err error) schema.DocumentResult {
	code := schema.CodeReadError
	if errors.Is(err, document.ErrNotFound) {
		code = schema.CodeNotFound
	}
	return schema.DocumentResult{
		Path:     path,
		Pass:     false,
		Findings: []schema.Finding{schema.Errorf(code, "", "%s", err.Error())},
		Err:      err.Error(),
	}
}

// headerErrMessage strips the sentinel prefix so messages read cleanly
// next to the finding code.
func headerErrMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"malformed header: ", "invalid date: "} {
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

// ExpandPaths resolves the CLI path arguments. Arguments containing
// glob metacharacters are expanded with doublestar (supporting **) and
// filtered through ignored; literal paths pass through untouched so a
// missing file still surfaces as a NotFound result. Order is preserved
// and duplicates are dropped.
func ExpandPaths(args []string, ignored func(string) bool) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			if ignored != nil && ignored(m) {
				continue
			}
			add(m)
		}
	}

	return out, nil
}
