package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reloads a configuration file whenever it changes on disk.
// Editors typically replace files via rename, so the parent directory is
// watched and events are filtered down to the target file.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*LauncherConfig, error)
	done     chan struct{}
}

// NewWatcher starts watching configPath. onChange is invoked after each
// change with the reloaded configuration, or with the load error when the
// new contents do not parse or validate.
func NewWatcher(configPath string, onChange func(*LauncherConfig, error)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is required")
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", configPath, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()

	return w, nil
}

// Close stops the watcher. It is safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce bursts of events from editors that write in chunks.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				w.onChange(LoadConfig(w.path))
			})
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
