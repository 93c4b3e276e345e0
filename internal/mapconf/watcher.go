package mapconf

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before maps are
// re-validated.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives the results of one re-validation. The matches are
// ended once it returns.
type ReloadFunc func(results []Result)

// Watcher watches the maps directory and re-validates every map into fresh
// matches when a document changes. It never touches a running match.
type Watcher struct {
	loader   *Loader
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	stopOnce sync.Once
	stopErr  error
	// wg tracks the event loop and any reload in flight
	wg sync.WaitGroup

	// Debounce rapid file changes
	debounce     time.Duration
	lastReload   time.Time
	pendingTimer *time.Timer
	stopped      bool
	timerMu      sync.Mutex
}

// NewWatcher creates a watcher over the loader's directory. A debounce of
// zero or less uses DefaultDebounce.
func NewWatcher(loader *Loader, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		loader:   loader,
		onReload: onReload,
		watcher:  fsWatcher,
		stopChan: make(chan struct{}),
		debounce: debounce,
	}, nil
}

// Start begins watching the maps directory.
func (w *Watcher) Start() error {
	dir := w.loader.Dir()
	if dir == "" {
		log.Warn("No maps directory configured, watcher not started")
		return nil
	}

	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.run()

	log.Info("Watching maps directory: %s", dir)
	return nil
}

// Stop stops the watcher, cancels a pending reload and waits for one that
// is already running. Calling Stop again is a no-op.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		w.timerMu.Lock()
		w.stopped = true
		if w.pendingTimer != nil {
			w.pendingTimer.Stop()
		}
		w.timerMu.Unlock()

		close(w.stopChan)
		w.wg.Wait()
		w.stopErr = w.watcher.Close()
	})
	return w.stopErr
}

// LastReload returns when maps were last re-validated.
func (w *Watcher) LastReload() time.Time {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	return w.lastReload
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !IsMapFile(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	log.Debug("Map file changed: %s (%s)", filepath.Base(event.Name), event.Op)
	w.scheduleReload()
}

func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.stopped {
		return
	}
	if w.pendingTimer != nil {
		w.pendingTimer.Stop()
	}
	w.pendingTimer = time.AfterFunc(w.debounce, w.doReload)
}

func (w *Watcher) doReload() {
	w.timerMu.Lock()
	if w.stopped {
		w.timerMu.Unlock()
		return
	}
	w.wg.Add(1)
	w.lastReload = time.Now()
	w.timerMu.Unlock()
	defer w.wg.Done()

	log.Info("Re-validating maps...")
	results, err := w.loader.LoadDir()
	if err != nil {
		log.Error("Failed to reload maps: %v", err)
		return
	}
	for _, r := range results {
		switch {
		case r.Match == nil:
			log.Error("%s: %v", filepath.Base(r.Path), r.Err)
		case r.Err != nil:
			log.Error("%s: %d diagnostics, fatal", filepath.Base(r.Path), r.Match.Diag.Len())
		default:
			log.Info("%s: ok (%d diagnostics)", filepath.Base(r.Path), r.Match.Diag.Len())
		}
	}
	if w.onReload != nil {
		w.onReload(results)
	}
	for _, r := range results {
		if r.Match != nil {
			r.Match.End()
		}
	}
}
