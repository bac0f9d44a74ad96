package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk. Only the
// latest reload is kept if the consumer falls behind.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	reloads chan *Config
	errs    chan error
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors that replace the file on save are seen too.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fw,
		reloads: make(chan *Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Reloads delivers a freshly loaded config after each change.
func (w *Watcher) Reloads() <-chan *Config {
	return w.reloads
}

// Errors delivers load and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				offer(w.errs, err)
				continue
			}
			applyFlags(cfg)
			offer(w.reloads, cfg)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			offer(w.errs, err)
		}
	}
}

// offer replaces any pending value so the channel always holds the newest.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
