// Package watch re-runs an import whenever one of its input tables
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long the watcher waits after the last change
// before running the handler. Spreadsheet tools save in several writes.
const DefaultDebounce = 500 * time.Millisecond

// ErrNoInputs is returned by New when there is nothing to watch.
var ErrNoInputs = errors.New("no input files to watch")

// Handler is called with the changed paths once a burst of changes settles.
type Handler func(ctx context.Context, changed []string) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period between the last change and the
// handler call.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher runs a Handler when watched files are written or recreated.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	handler  Handler
	logger   *slog.Logger
}

// New returns a watcher for paths. Empty paths are ignored.
func New(paths []string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch handler is nil")
	}

	w := &Watcher{
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		handler:  handler,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	seenDirs := make(map[string]bool)
	for _, path := range paths {
		if path == "" {
			continue
		}
		absolute, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		w.files[absolute] = true

		// Editors often replace a file instead of writing it in place, so
		// the parent directory is watched rather than the file itself.
		dir := filepath.Dir(absolute)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, ErrNoInputs
	}
	sort.Strings(w.dirs)

	return w, nil
}

// Files returns the watched files in lexical order.
func (w *Watcher) Files() []string {
	return sortedKeys(w.files)
}

// Run watches until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.logger.Info("watching input tables", "files", w.Files())

	return w.loop(ctx, watcher.Events, watcher.Errors)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := make(map[string]bool)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			fire = time.After(w.debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			changed := sortedKeys(pending)
			pending = make(map[string]bool)

			if err := w.handler(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", "changed", changed, "error", err)
				continue
			}
			w.logger.Info("rebuilt after change", "changed", changed)
		}
	}
}

// relevant reports whether event touched a watched file's content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	absolute, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[absolute]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
