// Package watch re-runs analysis when source files change. Events are
// debounced so editors that write in bursts trigger one run per file.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/augurlabs/augur/internal/scanner"
	"github.com/augurlabs/augur/pkg/config"
)

// DefaultDebounce is applied when no debounce interval is given.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a directory tree and invokes a callback for each
// changed source file once it has been stable for the debounce interval.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	scanner   *scanner.Scanner
	cfg       *config.Config
	debounce  time.Duration
	root      string
	callback  func(path string)

	mu      sync.Mutex
	pending map[string]time.Time
}

// New creates a watcher rooted at path.
func New(root string, cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		scanner:   scanner.New(cfg),
		cfg:       cfg,
		debounce:  debounce,
		root:      root,
		pending:   make(map[string]time.Time),
	}, nil
}

// SetCallback sets the function invoked for each changed file.
func (w *Watcher) SetCallback(cb func(path string)) {
	w.callback = cb
}

// Start watches the tree until the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watchTree(w.root); err != nil {
		return err
	}

	go w.drainPending(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// watchTree adds root and every non-excluded directory below it to the
// filesystem watch list.
func (w *Watcher) watchTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		for _, excluded := range w.cfg.Exclude.Dirs {
			if info.Name() == excluded {
				return filepath.SkipDir
			}
		}
		return w.fsWatcher.Add(path)
	})
}

// handleEvent records writes and creates of analyzable files. Newly
// created directories join the watch list so their contents are seen.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watchTree(event.Name)
			return
		}
	}

	ok, err := w.scanner.ScanFile(event.Name)
	if err != nil || !ok {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// drainPending flushes files that stayed quiet for the debounce window.
func (w *Watcher) drainPending(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, lastMod := range w.pending {
		if now.Sub(lastMod) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	if w.callback == nil {
		return
	}
	for _, path := range ready {
		w.callback(path)
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// WatchedPaths returns the directories currently watched.
func (w *Watcher) WatchedPaths() []string {
	return w.fsWatcher.WatchList()
}
