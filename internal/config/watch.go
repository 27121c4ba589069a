package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quizhost/buzzkit/internal/log"
)

// Watch observes the config file and invokes onChange after writes,
// debounced so editors that write in bursts trigger a single reload.
// The returned stop function releases the watcher.
//
// The parent directory is watched rather than the file itself: most
// editors replace the file on save, which would otherwise drop the
// watch after the first change.
func Watch(path string, debounce time.Duration, onChange func()) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	var mu sync.Mutex
	var timer *time.Timer

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				log.Debug(log.CatConfig, "Config file changed", "event", ev.Op.String())
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, onChange)
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.ErrorErr(log.CatConfig, "Config watch error", err)
			}
		}
	}()

	return func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		_ = watcher.Close()
	}, nil
}
