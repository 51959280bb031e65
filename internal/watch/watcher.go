package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"aniclip/internal/logging"
)

// DefaultDebounce is how long the directory must stay quiet before the
// handler runs.
const DefaultDebounce = 500 * time.Millisecond

// tickInterval is how often pending events are checked against the debounce window.
const tickInterval = 50 * time.Millisecond

// Handler receives the watched files that changed, sorted.
type Handler func(ctx context.Context, changed []string)

// Options tune a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher invokes a handler when any of a fixed set of files changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	pending   map[string]struct{}
	lastEvent time.Time
}

// New watches the parent directories of files. The directories must exist.
func New(files []string, handler Handler, opts Options) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("watch: no files to watch")
	}
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]struct{}, len(files)),
		handler:  handler,
		debounce: opts.Debounce,
		logger:   logging.NewComponentLogger(opts.Logger, "watch"),
		pending:  make(map[string]struct{}),
	}

	var dirs []string
	for _, file := range files {
		file = filepath.Clean(file)
		w.files[file] = struct{}{}
		if dir := filepath.Dir(file); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", logging.String(logging.FieldPath, dir))
	}
	return w, nil
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "file watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "a change may have been missed"),
			)

		case <-ticker.C:
			if changed := w.takeSettled(time.Now()); len(changed) > 0 {
				w.handler(ctx, changed)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(event.Name)
	if _, ok := w.files[name]; !ok {
		return
	}
	w.logger.Debug("data file event",
		logging.String(logging.FieldPath, name),
		logging.String("op", event.Op.String()),
	)

	w.mu.Lock()
	w.pending[name] = struct{}{}
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// takeSettled returns and clears the pending files once no event has
// arrived for the debounce window.
func (w *Watcher) takeSettled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 || now.Sub(w.lastEvent) < w.debounce {
		return nil
	}
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	clear(w.pending)
	slices.Sort(changed)
	return changed
}
