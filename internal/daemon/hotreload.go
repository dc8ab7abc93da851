package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/traypos/internal/config"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors often write a file in several steps.
const DefaultDebounce = 250 * time.Millisecond

// ConfigWatcher watches the config file (and any extra files it depends on,
// such as the display layout) and reloads the configuration when they change.
// Invalid configurations are reported and the previous one stays current.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Files to watch
	configPath string
	extraPaths []string

	debounce time.Duration

	// Current valid config
	currentConfig *config.Config

	// Callbacks
	onReloadCallback func(newConfig *config.Config)
	onErrorCallback  func(err error)

	watcher *fsnotify.Watcher

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewConfigWatcher creates a watcher for the config file at configPath.
func NewConfigWatcher(configPath string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	return &ConfigWatcher{
		logger:     logger,
		configPath: configPath,
		debounce:   DefaultDebounce,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// AddPath adds another file whose changes trigger a reload.
// Must be called before Start.
func (w *ConfigWatcher) AddPath(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path != "" {
		w.extraPaths = append(w.extraPaths, path)
	}
}

// SetDebounce sets the quiet period before a reload.
func (w *ConfigWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if d > 0 {
		w.debounce = d
	}
}

// SetReloadCallback sets the callback to invoke when config is successfully reloaded.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback to invoke when config reload fails validation.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching. Directories are watched rather than the files
// themselves so that atomic renames are seen.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.Config) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for _, path := range w.watchedPaths() {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		dirs[dir] = true
	}
	if len(dirs) == 0 {
		_ = watcher.Close()
		w.mu.Unlock()
		return fmt.Errorf("no watchable directories for %s", w.configPath)
	}

	w.watcher = watcher
	w.currentConfig = initialConfig
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(ctx)

	w.logger.Debug("config watcher started", "path", w.configPath, "extra", w.extraPaths, "debounce", w.debounce)
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("error closing file watcher", "error", err)
	}
	w.logger.Debug("config watcher stopped")
}

// GetCurrentConfig returns the current valid configuration.
func (w *ConfigWatcher) GetCurrentConfig() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

// IsRunning returns whether the watcher is currently running.
func (w *ConfigWatcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// watchedPaths returns the config path and extra paths. Caller holds mu.
func (w *ConfigWatcher) watchedPaths() []string {
	return append([]string{w.configPath}, w.extraPaths...)
}

func (w *ConfigWatcher) isWatched(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, path := range w.watchedPaths() {
		if filepath.Clean(path) == filepath.Clean(name) {
			return true
		}
	}
	return false
}

// watchLoop is the main event loop.
func (w *ConfigWatcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	w.mu.RLock()
	debounce := w.debounce
	events := w.watcher.Events
	errs := w.watcher.Errors
	w.mu.RUnlock()

	var reloadC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !w.isWatched(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Debug("watched file changed", "file", event.Name, "op", event.Op.String())
				reloadC = time.After(debounce)
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-reloadC:
			reloadC = nil
			w.reload()
		}
	}
}

// reload loads and validates the config and notifies the callbacks.
func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	reloadCallback := w.onReloadCallback
	errorCallback := w.onErrorCallback
	w.mu.RUnlock()

	newConfig, err := config.LoadConfig(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		if errorCallback != nil {
			errorCallback(err)
		}
		return
	}

	w.mu.Lock()
	w.currentConfig = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded successfully", "path", w.configPath)
	if reloadCallback != nil {
		reloadCallback(newConfig)
	}
}
