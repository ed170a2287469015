package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	configpkg "github.com/dshills/govlint/internal/config"
	"github.com/dshills/govlint/internal/document"
	"github.com/dshills/govlint/internal/patch"
	"github.com/dshills/govlint/internal/profile"
	"github.com/dshills/govlint/internal/render"
	"github.com/dshills/govlint/internal/review"
	"github.com/dshills/govlint/internal/runner"
	"github.com/dshills/govlint/internal/schema"
	"github.com/dshills/govlint/internal/watch"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// validateFlags holds the parsed flags for the validate command.
type validateFlags struct {
	profileName       string
	priorPath         string
	format            string
	out               string
	severityThreshold string
	patchOut          string
	configPath        string
	jobs              int
	noRedact          bool
	verbose           bool

	// Changed markers from pflag. A flag set explicitly on the command
	// line wins over the config file even at its default value.
	profileSet  bool
	formatSet   bool
	severitySet bool
	jobsSet     bool
	noRedactSet bool
}

// watchFlags holds the parsed flags for the watch command.
type watchFlags struct {
	profileName string
	debounce    time.Duration
	jobs        int
}

func main() {
	root := &cobra.Command{
		Use:   "govlint",
		Short: "Validate governance documents",
		Long: "Govlint validates constitution-style governance documents: metadata header,\n" +
			"required section structure, principle completeness, and semantic-version rules.",
	}

	var vf validateFlags
	validateCmd := &cobra.Command{
		Use:   "validate <path|glob>...",
		Short: "Validate documents and produce a findings report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vf.profileSet = cmd.Flags().Changed("profile")
			vf.formatSet = cmd.Flags().Changed("format")
			vf.severitySet = cmd.Flags().Changed("severity-threshold")
			vf.jobsSet = cmd.Flags().Changed("jobs")
			vf.noRedactSet = cmd.Flags().Changed("no-redact")
			return runValidate(args, vf)
		},
	}

	f := validateCmd.Flags()
	f.StringVar(&vf.profileName, "profile", "", "Document profile: constitution, charter, or general")
	f.StringVar(&vf.priorPath, "prior", "", "Prior snapshot of the document for version-lineage checks")
	f.StringVar(&vf.format, "format", "json", "Output format: json, md, or term")
	f.StringVar(&vf.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&vf.severityThreshold, "severity-threshold", "warning", "Minimum severity to emit: warning or error")
	f.StringVar(&vf.patchOut, "patch-out", "", "Write suggested fixes in diff-match-patch format to this file")
	f.StringVar(&vf.configPath, "config", "", "Config file (default "+configpkg.DefaultFile+" if present)")
	f.IntVar(&vf.jobs, "jobs", 0, "Max documents validated in parallel (0 = number of CPUs)")
	f.BoolVar(&vf.noRedact, "no-redact", false, "Leave secret-looking strings in finding quotes unredacted")
	f.BoolVar(&vf.verbose, "verbose", false, "Print processing steps to stderr")

	var wf watchFlags
	watchCmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Revalidate documents whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, wf)
		},
	}

	wfl := watchCmd.Flags()
	wfl.StringVar(&wf.profileName, "profile", "", "Document profile: constitution, charter, or general")
	wfl.DurationVar(&wf.debounce, "debounce", 200*time.Millisecond, "Delay before revalidating after a change burst")
	wfl.IntVar(&wf.jobs, "jobs", 0, "Max documents validated in parallel (0 = number of CPUs)")

	root.AddCommand(validateCmd)
	root.AddCommand(watchCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			}
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func runValidate(args []string, flags validateFlags) error {
	// --- Step 1: Load config and merge flags (flags win) ---
	cfg, err := configpkg.Load(flags.configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	merged := mergeConfig(flags, cfg)

	if err := checkFlags(merged); err != nil {
		return codeError(3, "invalid flags: %s", err)
	}

	// --- Step 2: Resolve profile ---
	prof, err := profile.Get(merged.profileName)
	if err != nil {
		return codeError(3, "%s", err)
	}

	// --- Step 3: Expand paths ---
	paths, err := runner.ExpandPaths(args, cfg.Ignored)
	if err != nil {
		return codeError(3, "%s", err)
	}
	if len(paths) == 0 {
		return codeError(3, "no documents matched the given paths")
	}
	if merged.priorPath != "" && len(paths) > 1 {
		return codeError(3, "--prior applies to a single document, got %d", len(paths))
	}

	// --- Step 4: Run the pipeline ---
	logger := zap.NewNop()
	if merged.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return codeError(3, "creating logger: %s", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	report, err := runner.Run(context.Background(), paths, runner.Options{
		Profile:     prof,
		PriorPath:   merged.priorPath,
		Jobs:        merged.jobs,
		Redact:      !merged.noRedact,
		Suggest:     merged.patchOut != "",
		ToolVersion: version,
		Logger:      logger,
	})
	if err != nil {
		return codeError(3, "%s", err)
	}

	// --- Step 5: Write patches ---
	if merged.patchOut != "" {
		if err := writePatches(report, merged.patchOut); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: patch write failed: %s\n", err)
			// Continue — patches are advisory
		}
	}

	// --- Step 6: Apply severity threshold (output only; summary, score,
	// and pass/fail always reflect all findings) ---
	threshold := schema.Severity(merged.severityThreshold)
	for i := range report.Results {
		report.Results[i].Findings = review.FilterBySeverity(report.Results[i].Findings, threshold)
	}

	// --- Step 7: Render output ---
	renderer, err := render.NewRenderer(merged.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}

	if merged.out != "" {
		if err := os.WriteFile(merged.out, outputBytes, 0o644); err != nil {
			return codeError(3, "writing output file: %s", err)
		}
	} else {
		if _, err := os.Stdout.Write(outputBytes); err != nil {
			return codeError(3, "writing output: %s", err)
		}
		// Ensure output ends with a newline for terminal friendliness.
		if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
			fmt.Fprintln(os.Stdout)
		}
	}

	// --- Step 8: Exit code contract ---
	return exitForReport(report)
}

// exitForReport maps a report to the exit-code contract: 2 when any
// document could not be loaded at all, 1 when any document has an
// error-severity finding, 0 otherwise.
func exitForReport(report *schema.Report) error {
	fatal := 0
	for _, res := range report.Results {
		if res.Err != "" {
			fatal++
		}
	}
	if fatal > 0 {
		return codeError(2, "%d document(s) could not be loaded", fatal)
	}
	if report.Summary.Failed > 0 {
		return &exitErr{code: 1}
	}
	return nil
}

// writePatches regenerates each result's suggested-fix diff against the
// document's current text and concatenates them into a single file.
func writePatches(report *schema.Report, path string) error {
	var out []byte
	for _, res := range report.Results {
		if len(res.Patches) == 0 {
			continue
		}
		doc, err := document.Load(res.Path)
		if err != nil {
			continue
		}
		diff := patch.GenerateDiff(doc.Raw, res.Patches, os.Stderr)
		if diff != "" {
			out = append(out, []byte(fmt.Sprintf("# document: %s\n%s", res.Path, diff))...)
		}
	}
	return os.WriteFile(path, out, 0o644)
}

// settings holds the effective options after config-file merge.
type settings struct {
	profileName       string
	priorPath         string
	format            string
	out               string
	severityThreshold string
	patchOut          string
	jobs              int
	noRedact          bool
	verbose           bool
}

func mergeConfig(flags validateFlags, cfg *configpkg.Config) settings {
	m := settings{
		profileName:       flags.profileName,
		priorPath:         flags.priorPath,
		format:            flags.format,
		out:               flags.out,
		severityThreshold: flags.severityThreshold,
		patchOut:          flags.patchOut,
		jobs:              flags.jobs,
		noRedact:          flags.noRedact,
		verbose:           flags.verbose,
	}
	if !flags.profileSet && cfg.Profile != "" {
		m.profileName = cfg.Profile
	}
	if !flags.formatSet && cfg.Format != "" {
		m.format = cfg.Format
	}
	if !flags.severitySet && cfg.SeverityThreshold != "" {
		m.severityThreshold = cfg.SeverityThreshold
	}
	if !flags.jobsSet && cfg.Jobs > 0 {
		m.jobs = cfg.Jobs
	}
	if !flags.noRedactSet && cfg.Redact != nil && !*cfg.Redact {
		m.noRedact = true
	}
	return m
}

// checkFlags returns an error if any effective setting is invalid.
func checkFlags(m settings) error {
	switch m.format {
	case "json", "md", "term":
	default:
		return fmt.Errorf("--format must be json, md, or term, got %q", m.format)
	}

	switch schema.Severity(m.severityThreshold) {
	case schema.SeverityWarning, schema.SeverityError:
	default:
		return fmt.Errorf("--severity-threshold must be warning or error, got %q", m.severityThreshold)
	}

	if m.jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", m.jobs)
	}

	return nil
}

func runWatch(args []string, flags watchFlags) error {
	prof, err := profile.Get(flags.profileName)
	if err != nil {
		return codeError(3, "%s", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.Config{
		Paths:    args,
		Debounce: flags.debounce,
		Options: runner.Options{
			Profile:     prof,
			Jobs:        flags.jobs,
			Redact:      true,
			ToolVersion: version,
			Logger:      logger,
		},
		Logger: logger,
	})
	if err != nil {
		return codeError(3, "creating watcher: %s", err)
	}
	defer w.Close() //nolint:errcheck

	if err := w.Start(ctx); err != nil {
		return codeError(3, "starting watcher: %s", err)
	}

	renderer, _ := render.NewRenderer("term")
	for report := range w.Reports() {
		out, err := renderer.Render(report)
		if err != nil {
			logger.Warn("rendering report", zap.Error(err))
			continue
		}
		os.Stdout.Write(out) //nolint:errcheck
	}

	return nil
}
