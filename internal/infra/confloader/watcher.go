package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher drives hot reload of WireMesh configuration: it observes
// config files on disk and invokes registered callbacks when one is
// rewritten, so long-running processes can pick up changes such as a
// new log level without a restart.
type Watcher struct {
	fs        *fsnotify.Watcher
	mu        sync.RWMutex
	callbacks []func(string)
	done      chan struct{}
	logger    *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a config file watcher. It holds an inotify (or
// platform equivalent) handle, so callers must Stop it when done.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:     fs,
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers a config file for change tracking. The parent
// directory is watched rather than the file itself: editors that save
// via rename-and-replace would otherwise detach the watch.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)
	if err := w.fs.Add(dir); err != nil {
		w.logger.Error("cannot watch config directory", "path", dir, "error", err)
		return err
	}
	w.logger.Debug("watching config file", "dir", dir, "file", filepath.Base(path))
	return nil
}

// OnChange registers a reload callback. It receives the path of the
// changed file and runs on the watch goroutine, so it must not block.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start consumes filesystem events until Stop is called. Write and
// create events fire the reload callbacks; everything else (chmod,
// remove) is ignored.
func (w *Watcher) Start() {
	w.logger.Info("config watcher started")

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.logger.Debug("config file changed", "file", ev.Name, "op", ev.Op.String())
				w.fire(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs Start on its own goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the watch loop and releases the filesystem handle.
func (w *Watcher) Stop() error {
	close(w.done)
	if err := w.fs.Close(); err != nil {
		w.logger.Error("config watcher close failed", "error", err)
		return err
	}
	w.logger.Info("config watcher stopped")
	return nil
}

func (w *Watcher) fire(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, cb := range w.callbacks {
		cb(path)
	}
}
