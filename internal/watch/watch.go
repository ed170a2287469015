// Package watch revalidates governance documents as they change on
// disk. Events are debounced so editors that write in bursts trigger a
// single validation pass.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/govlint/internal/runner"
	"github.com/dshills/govlint/internal/schema"
)

// Config configures a Watcher.
type Config struct {
	// Paths are the files or directories to watch. Directories are
	// watched for markdown files.
	Paths []string

	// Debounce is how long to wait for more changes before
	// revalidating. Zero means 200ms.
	Debounce time.Duration

	// Runner options used for each validation pass.
	Options runner.Options

	Logger *zap.Logger
}

// Watcher revalidates changed documents and emits a report per pass.
type Watcher struct {
	cfg     Config
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]bool // path set awaiting revalidation

	reports chan *schema.Report
}

// New creates a Watcher for the given paths.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	return &Watcher{
		cfg:     cfg,
		logger:  logger,
		watcher: fsw,
		pending: make(map[string]bool),
		reports: make(chan *schema.Report, 16),
	}, nil
}

// Reports returns the channel of validation reports, one per debounced
// change burst. The channel closes when the watcher stops.
func (w *Watcher) Reports() <-chan *schema.Report {
	return w.reports
}

// Start registers the watches, runs an initial validation pass over
// every watched document, and processes events until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	for _, p := range w.cfg.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		target := p
		if !info.IsDir() {
			target = filepath.Dir(p)
		}
		if err := w.watcher.Add(target); err != nil {
			return err
		}
	}

	if docs := w.watchedDocuments(); len(docs) > 0 {
		w.validate(ctx, docs)
	}

	go w.loop(ctx)
	return nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.reports)

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))
			w.pendingMu.Lock()
			w.pending[event.Name] = true
			w.pendingMu.Unlock()
			// Drain a fired-but-unconsumed tick so the reset opens a
			// full debounce window instead of an immediate stale one.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.pendingMu.Lock()
			paths := make([]string, 0, len(w.pending))
			for p := range w.pending {
				paths = append(paths, p)
			}
			w.pending = make(map[string]bool)
			w.pendingMu.Unlock()
			if len(paths) > 0 {
				w.validate(ctx, paths)
			}
		}
	}
}

// relevant filters events down to writes and creates of documents we
// care about: markdown files, or any explicitly watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}
	for _, p := range w.cfg.Paths {
		if sameFile(p, event.Name) {
			return true
		}
	}
	ext := filepath.Ext(event.Name)
	return ext == ".md" || ext == ".markdown"
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

// watchedDocuments lists the documents the initial pass should cover:
// explicit files as given, and markdown files at the top level of
// watched directories.
func (w *Watcher) watchedDocuments() []string {
	var docs []string
	for _, p := range w.cfg.Paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			docs = append(docs, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if !e.IsDir() && (ext == ".md" || ext == ".markdown") {
				docs = append(docs, filepath.Join(p, e.Name()))
			}
		}
	}
	return docs
}

func (w *Watcher) validate(ctx context.Context, paths []string) {
	report, err := runner.Run(ctx, paths, w.cfg.Options)
	if err != nil {
		w.logger.Error("validation pass failed", zap.Error(err))
		return
	}

	w.logger.Info("validation pass complete",
		zap.Int("documents", report.Summary.Documents),
		zap.Int("passed", report.Summary.Passed),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("errors", report.Summary.ErrorCount),
		zap.Int("warnings", report.Summary.WarningCount))

	select {
	case w.reports <- report:
	case <-ctx.Done():
	}
}
