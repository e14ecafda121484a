// Package watcher flags the document index as stale when any of the
// ingested files changes on disk. It does not re-ingest; the
// front-end surfaces the staleness and lets the user decide.
package watcher

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Watcher observes a set of ingested files. The first relevant event
// after Watch marks the set stale; further events are no-ops until the
// next Watch call resets the flag.
type Watcher struct {
	fw       *fsnotify.Watcher
	onStale  func(path string)
	done     chan struct{}
	closeOne sync.Once

	mu    sync.Mutex
	stale bool
}

// New creates a watcher. onStale is called at most once per Watch set,
// from the watcher's goroutine, with the path that changed.
func New(onStale func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		onStale: onStale,
		done:    make(chan struct{}),
	}
	go w.loop()

	return w, nil
}

// Watch replaces the watched file set and resets the staleness flag.
func (w *Watcher) Watch(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, watched := range w.fw.WatchList() {
		if err := w.fw.Remove(watched); err != nil {
			logger.Warn("Unwatching %s: %v", watched, err)
		}
	}

	for _, path := range paths {
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	w.stale = false
	logger.Info("Watching %d file(s) for changes", len(paths))
	return nil
}

// Stale reports whether any watched file has changed since the last
// Watch call.
func (w *Watcher) Stale() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stale
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOne.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.markStale(event.Name)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher: %v", err)
		}
	}
}

func (w *Watcher) markStale(path string) {
	w.mu.Lock()
	already := w.stale
	w.stale = true
	w.mu.Unlock()

	if already {
		return
	}
	logger.Info("Watched file changed: %s", path)
	if w.onStale != nil {
		w.onStale(path)
	}
}
