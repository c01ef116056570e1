package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"niptreport/internal/log"
)

// DefaultDebounce delay between the last file event and invalidation
const DefaultDebounce = 200 * time.Millisecond

// Watcher invalidates a Cache when its source file changes on disk.
// The parent directory is watched so replace-by-rename saves are seen.
type Watcher struct {
	cache    *Cache
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	Debounce time.Duration

	// OnInvalidate runs after each invalidation, if set
	OnInvalidate func()
}

// NewWatcher starts watching the cache's source directory
func NewWatcher(cache *Cache, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(cache.Path())
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		cache:    cache,
		watcher:  fw,
		logger:   log.OrDiscard(logger).WithComponent(log.ComponentWatcher),
		Debounce: DefaultDebounce,
	}, nil
}

// Run processes file events until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	target := w.cache.Path()
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			op := event.Op.String()
			debounceTimer = time.AfterFunc(w.Debounce, func() {
				w.cache.Invalidate()
				w.logger.Info("source changed, cache invalidated", log.FieldFile, target, "op", op)
				if w.OnInvalidate != nil {
					w.OnInvalidate()
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.FieldError, err)
		}
	}
}
