/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package source

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"gradientdesigner/internal/domain"
	applog "gradientdesigner/internal/log"
)

// DefaultDebounce is the quiet period before a changed file is reloaded.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a gradient file whenever it changes on disk. Callbacks run
// on the watcher's goroutine; UI code has to hop back to its own thread.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onLoad   func(domain.Gradient)
	onError  func(error)
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
	log      *slog.Logger
}

// Watch starts watching path. The directory is watched rather than the file
// so editors that save by rename are picked up too.
func Watch(path string, debounce time.Duration, onLoad func(domain.Gradient), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:       fw,
		path:     abs,
		debounce: debounce,
		onLoad:   onLoad,
		onError:  onError,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		log:      applog.WithComponent("source"),
	}
	go w.loop()
	return w, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Stop ends the watch and waits for the goroutine to exit. Safe to call twice.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stopCh) })
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer func() { _ = w.fs.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if abs, _ := filepath.Abs(ev.Name); abs != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			g, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload failed", slog.String("path", w.path), slog.Any("err", err))
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.log.Debug("gradient reloaded", slog.String("path", w.path), slog.Int("stops", len(g.Stops)))
			if w.onLoad != nil {
				w.onLoad(g)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}
