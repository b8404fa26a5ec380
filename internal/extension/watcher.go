package extension

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Watcher watches extension directories for changes and triggers a reload
// of the owning directory once the edits settle. Rapid saves within the
// quiet period collapse into a single reload; a change that settles while
// a reload for the same directory is still in flight is deferred into a
// follow-up reload rather than run concurrently or dropped.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	onChange    func(dir string)
	logger      *zap.Logger
	roots       map[string]bool // watched extension roots
	debounceMap map[string]time.Time
	debounceDur time.Duration
	group       singleflight.Group
	reloads     sync.WaitGroup
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity for debugging.
type WatcherStats struct {
	EventsSeen       int
	ReloadsTriggered int
	Errors           int
	LastEventTime    time.Time
	LastEventPath    string
}

// NewWatcher creates a running watcher. onChange receives the watched root
// directory that settled; it runs on a watcher goroutine.
func NewWatcher(debounce time.Duration, logger *zap.Logger, onChange func(dir string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		watcher:     fsw,
		onChange:    onChange,
		logger:      logger.Named("watcher"),
		roots:       make(map[string]bool),
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		running:     true,
	}

	go w.run()
	return w, nil
}

// Watch adds an extension root directory (and its immediate
// subdirectories, where packaged extensions keep their entry files) to the
// watch set.
func (w *Watcher) Watch(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.mu.Lock()
	w.roots[dir] = true
	w.mu.Unlock()

	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			sub := filepath.Join(dir, entry.Name())
			if err := w.watcher.Add(sub); err != nil {
				w.logger.Warn("failed to watch extension subdirectory",
					zap.String("dir", sub), zap.Error(err))
			}
		}
	}

	w.logger.Info("watching extensions directory", zap.String("dir", dir))
	return nil
}

// Stop stops the watcher and waits for the run loop and any in-flight
// reloads to finish, so a racing reload cannot re-register extensions into
// a manager that is tearing down.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.reloads.Wait()

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing filesystem watcher", zap.Error(err))
	}
	w.logger.Debug("watcher stopped")
}

// Stats returns a snapshot of the watcher's activity counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("filesystem watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processSettled()
		}
	}
}

// handleEvent records a relevant event against its owning watched root.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !relevantChange(event) {
		return
	}

	root, ok := w.resolveRoot(event.Name)
	if !ok {
		return
	}

	// New subdirectory under a root: watch it so its entry file is seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new subdirectory",
					zap.String("dir", event.Name), zap.Error(err))
			}
		}
	}

	w.logger.Debug("extension file changed",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.EventsSeen++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.debounceMap[root] = time.Now()
	w.mu.Unlock()
}

// processSettled fires the reload callback for every root whose last event
// is past the quiet period.
func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for root, last := range w.debounceMap {
		if now.Sub(last) >= w.debounceDur {
			settled = append(settled, root)
			delete(w.debounceMap, root)
		}
	}
	w.stats.ReloadsTriggered += len(settled)
	w.mu.Unlock()

	for _, root := range settled {
		root := root
		w.reloads.Add(1)
		go func() {
			defer w.reloads.Done()
			_, _, shared := w.group.Do(root, func() (any, error) {
				w.onChange(root)
				return nil, nil
			})
			if shared {
				// Joined a reload that was already in flight, so the
				// on-disk state it saw may predate this trigger. Queue
				// the root again; the next sweep picks it up as settled.
				w.mu.Lock()
				w.debounceMap[root] = time.Now().Add(-w.debounceDur)
				w.mu.Unlock()
			}
		}()
	}
}

// resolveRoot maps an event path back to the watched extension root it
// belongs to. Entry files may live one level below the root.
func (w *Watcher) resolveRoot(path string) (string, bool) {
	dir := filepath.Dir(path)

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.roots[dir] {
		return dir, true
	}
	if parent := filepath.Dir(dir); w.roots[parent] {
		return parent, true
	}
	return "", false
}

// relevantChange filters events down to extension sources and manifests.
func relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.HasSuffix(base, ".go") || base == manifestFile {
		return true
	}
	// Directory create/remove changes what the root contains.
	if filepath.Ext(base) == "" {
		return true
	}
	return false
}
