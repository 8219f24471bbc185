package roles

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumelens/internal/errors"
)

// Watcher reloads the role taxonomy when its file changes, so taxonomy
// edits take effect without a restart. Reloads are debounced because
// editors and atomic writes fire several events per save.
type Watcher struct {
	mu sync.Mutex

	path  string
	store *Store

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger  *errors.Logger
	running bool
}

// NewWatcher creates a watcher that reloads store from path on change.
func NewWatcher(path string, store *Store, debounceDelay time.Duration, logger *errors.Logger) *Watcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	return &Watcher{
		path:          path,
		store:         store,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		logger:        logger,
	}
}

// Start begins watching the roles file.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("roles watcher is already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = fsWatcher

	// Watch the directory too so atomic writes (rename) are caught.
	if err := fsWatcher.Add(w.path); err != nil {
		if dirErr := fsWatcher.Add(filepath.Dir(w.path)); dirErr != nil {
			if closeErr := fsWatcher.Close(); closeErr != nil && w.logger != nil {
				w.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
			}
			return fmt.Errorf("failed to watch roles file %s: %w", w.path, err)
		}
	} else if err := fsWatcher.Add(filepath.Dir(w.path)); err != nil && w.logger != nil {
		w.logger.Warn("Failed to watch roles directory", "directory", filepath.Dir(w.path), "error", err)
	}

	w.running = true
	go w.watchLoop()

	if w.logger != nil {
		w.logger.Info("Roles file watcher started", "file", w.path, "debounce_delay", w.debounceDelay)
	}
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	if err := w.fsWatcher.Close(); err != nil {
		if w.logger != nil {
			w.logger.LogError(err, "Failed to close roles file watcher")
		}
		return err
	}
	w.running = false

	if w.logger != nil {
		w.logger.Info("Roles file watcher stopped")
	}
	return nil
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.LogError(err, "Roles file watcher error")
			}

		case <-w.reloadChan:
			w.reload()

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != w.path && filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}

// reload re-reads the roles file. A broken file keeps the previous
// taxonomy in place.
func (w *Watcher) reload() {
	profiles, err := LoadFile(w.path)
	if err != nil {
		if w.logger != nil {
			w.logger.LogError(err, "Roles file reload failed, keeping previous taxonomy", "file", w.path)
		}
		return
	}
	w.store.Replace(profiles)
	if w.logger != nil {
		w.logger.Info("Roles taxonomy reloaded", "file", w.path, "categories", len(profiles))
	}
}
