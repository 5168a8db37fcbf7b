// Package watch reloads an env file when it changes on disk.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/it-atelier-gn/envloader/internal/utils"
)

// defaultDebounce coalesces the event bursts editors and fsnotify
// backends produce for a single save.
const defaultDebounce = 200 * time.Millisecond

// Watcher monitors one env file and invokes a callback after each change.
type Watcher struct {
	path     string
	reload   func()
	debounce time.Duration
	pending  utils.AtomicBool
}

func New(path string, reload func()) *Watcher {
	return &Watcher{path: filepath.Clean(path), reload: reload, debounce: defaultDebounce}
}

// Start begins watching and returns immediately; events are handled on a
// background goroutine until ctx is done. The parent directory is
// watched, not the file itself, so editors that replace the file via
// rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Clean(evt.Name) != w.path {
					continue
				}
				w.scheduleReload(ctx)
			case err := <-watcher.Errors:
				log.Printf("watcher error: %v", err)
			}
		}
	}()
	return watcher.Add(filepath.Dir(w.path))
}

// scheduleReload fires the callback once per debounce window no matter
// how many events arrive inside it.
func (w *Watcher) scheduleReload(ctx context.Context) {
	if w.pending.Load() {
		return
	}
	w.pending.Store(true)
	time.AfterFunc(w.debounce, func() {
		w.pending.Store(false)
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}
