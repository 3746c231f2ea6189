package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

// SelectorsWatcher watches the selectors override file and pushes freshly
// loaded selectors to a callback when the file changes. Site markup drifts
// often enough that selector updates should not require a restart.
type SelectorsWatcher struct {
	mu sync.RWMutex

	selectorsFile string
	lastModTime   time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	onReload func(config.Selectors)
	logger   *errors.Logger

	running bool
}

// NewSelectorsWatcher creates a watcher for the given selectors file.
func NewSelectorsWatcher(selectorsFile string, debounceDelay time.Duration, onReload func(config.Selectors), logger *errors.Logger) (*SelectorsWatcher, error) {
	if selectorsFile == "" {
		return nil, fmt.Errorf("selectors file path cannot be empty")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &SelectorsWatcher{
		selectorsFile: selectorsFile,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		onReload:      onReload,
		logger:        logger,
	}, nil
}

// Start begins watching the selectors file for changes.
func (sw *SelectorsWatcher) Start() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.running {
		return fmt.Errorf("selectors watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	sw.fsWatcher = watcher

	if stat, err := os.Stat(sw.selectorsFile); err == nil {
		sw.lastModTime = stat.ModTime()
	}

	if err := sw.addFileToWatcher(sw.selectorsFile); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && sw.logger != nil {
			sw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return err
	}

	sw.running = true
	go sw.watchLoop()

	if sw.logger != nil {
		sw.logger.Info("Selectors file watcher started",
			"file", sw.selectorsFile,
			"debounce_delay", sw.debounceDelay)
	}
	return nil
}

// Stop stops the selectors file watcher.
func (sw *SelectorsWatcher) Stop() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if !sw.running {
		return nil
	}

	close(sw.stopChan)

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}

	if sw.fsWatcher != nil {
		if err := sw.fsWatcher.Close(); err != nil {
			if sw.logger != nil {
				sw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	sw.running = false

	if sw.logger != nil {
		sw.logger.Info("Selectors file watcher stopped")
	}
	return nil
}

// IsRunning returns whether the watcher is currently running.
func (sw *SelectorsWatcher) IsRunning() bool {
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return sw.running
}

// addFileToWatcher adds the file and its directory to the watcher. The
// directory is watched too so atomic writes (rename operations) are caught.
func (sw *SelectorsWatcher) addFileToWatcher(file string) error {
	if err := sw.fsWatcher.Add(file); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := sw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if sw.logger != nil {
				sw.logger.Info("Watching directory for selectors file",
					"file", file, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", file, err)
	}

	dir := filepath.Dir(file)
	if err := sw.fsWatcher.Add(dir); err != nil {
		if sw.logger != nil {
			sw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}
	return nil
}

// hasFileChanged checks whether the selectors file has been modified since
// the last observed state.
func (sw *SelectorsWatcher) hasFileChanged() bool {
	stat, err := os.Stat(sw.selectorsFile)
	if err != nil {
		if os.IsNotExist(err) && !sw.lastModTime.IsZero() {
			sw.lastModTime = time.Time{}
			return true
		}
		return false
	}

	if sw.lastModTime.IsZero() || stat.ModTime().After(sw.lastModTime) {
		sw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// watchLoop is the main event loop for file watching.
func (sw *SelectorsWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-sw.fsWatcher.Events:
			if !ok {
				return
			}
			if sw.shouldProcessEvent(event) {
				sw.scheduleReload()
			}

		case err, ok := <-sw.fsWatcher.Errors:
			if !ok {
				return
			}
			if sw.logger != nil {
				sw.logger.LogError(err, "File watcher error")
			}

		case <-sw.reloadChan:
			// Debounced reload trigger
			if sw.hasFileChanged() {
				sw.reload()
			}

		case <-sw.stopChan:
			return
		}
	}
}

// reload re-parses the selectors file and hands the result to the callback.
// A file that fails to parse keeps the previous selectors in effect.
func (sw *SelectorsWatcher) reload() {
	selectors, err := config.LoadSelectors(sw.selectorsFile)
	if err != nil {
		if sw.logger != nil {
			sw.logger.LogError(err, "Failed to reload selectors, keeping previous set",
				"file", sw.selectorsFile)
		}
		return
	}

	if sw.logger != nil {
		sw.logger.Info("Selectors file changed, reloaded", "file", sw.selectorsFile)
	}
	if sw.onReload != nil {
		sw.onReload(selectors)
	}
}

// shouldProcessEvent determines if a file system event should trigger a
// reload check.
func (sw *SelectorsWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != sw.selectorsFile &&
		filepath.Base(event.Name) != filepath.Base(sw.selectorsFile) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload.
func (sw *SelectorsWatcher) scheduleReload() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}

	sw.debounceTimer = time.AfterFunc(sw.debounceDelay, func() {
		select {
		case sw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}
