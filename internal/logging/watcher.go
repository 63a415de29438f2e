package logging

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads the logging section when the config file changes, so
// debug mode and categories can be toggled on a running service.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatchConfig builds a watcher for the config file at path.
func WatchConfig(path string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		watcher: watcher,
		path:    path,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. Editors replace files on save, so the parent
// directory is watched and events filtered to the config file name.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for cleanup.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *ConfigWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Collapses the burst of events an editor save produces into one reload.
	var pending bool
	debounce := time.NewTicker(500 * time.Millisecond)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			Get(CategoryBoot).Warn("config watcher error: %v", err)
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			if err := loadConfig(w.path); err != nil {
				Get(CategoryBoot).Warn("config reload failed: %v", err)
				continue
			}
			Boot("logging config reloaded (debug=%v)", IsDebugMode())
		}
	}
}
