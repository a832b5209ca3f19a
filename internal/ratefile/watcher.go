package ratefile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a Store whenever its rate file changes on disk.
type Watcher struct {
	path     string
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher watches the directory containing path, so files replaced by
// rename (as most editors and config management tools do) are still seen.
func NewWatcher(path string, store *Store, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{path: abs, store: store, watcher: w, debounce: debounce}, nil
}

// Run blocks until ctx is cancelled. Reload failures are logged and the
// previous table stays active.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	reload := newDebouncer(w.debounce, func() {
		if err := w.store.ReloadFrom(w.path); err != nil {
			slog.Error("rate table reload failed, keeping previous table", "path", w.path, "error", err)
		}
	})
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename) {
				slog.Debug("rate file changed", "path", event.Name, "op", event.Op.String())
				reload.Trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
