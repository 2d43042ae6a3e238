package datastore

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watcher invalidates cache entries when files in the data directory are
// written, removed or renamed from outside the manager.
type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

func newWatcher(dir string, evict func(path string), log *zap.Logger) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &watcher{fs: fs, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fs.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					evict(event.Name)
				}
			case err, ok := <-fs.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.Error(err))
			}
		}
	}()

	return w, nil
}

// close stops the watcher and waits for the event loop to drain.
func (w *watcher) close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
