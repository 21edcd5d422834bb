// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/rayview"
)

// ShaderWatcher watches a WGSL file and publishes its contents whenever
// it is written. The frame loop takes the newest source with Take.
//
// The directory is watched rather than the file, so that editors that
// replace the file on save keep triggering reloads.
type ShaderWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	notify  func()

	pending atomic.Pointer[string]

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// WatchShader starts watching path. notify is called from the watcher
// goroutine after new source was published; it must be safe for
// concurrent use, like a window's RequestRedraw.
//
// The current contents of the file are published immediately.
func WatchShader(path string, notify func()) (*ShaderWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("app: shader path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("app: shader watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("app: watch %s: %w", path, err)
	}
	w := &ShaderWatcher{
		path:    abs,
		watcher: watcher,
		notify:  notify,
		done:    make(chan struct{}),
	}
	if err := w.load(); err != nil {
		watcher.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.watch()
	rayview.Logger().Info("watching shader", "path", abs)
	return w, nil
}

func (w *ShaderWatcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := w.load(); err != nil {
				rayview.Logger().Warn("shader reload skipped", "err", err)
				continue
			}
			if w.notify != nil {
				w.notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			rayview.Logger().Warn("shader watcher", "err", err)
		}
	}
}

func (w *ShaderWatcher) load() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("app: read shader: %w", err)
	}
	// An editor may truncate before writing.
	if len(data) == 0 {
		return fmt.Errorf("app: read shader: %s is empty", w.path)
	}
	src := string(data)
	w.pending.Store(&src)
	return nil
}

// Take returns the source published since the last call, if any.
func (w *ShaderWatcher) Take() (string, bool) {
	p := w.pending.Swap(nil)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *ShaderWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
