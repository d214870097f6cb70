/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package log sets up the application's slog logger: a compact console
// handler for humans, an optional JSON file sink rotated by lumberjack, and a
// small context enricher that stamps records with the gesture being handled.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gradientdesigner/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "GD_LOG_LEVEL"  // debug|info|warn|error
	EnvFormat = "GD_LOG_FORMAT" // console|json
	EnvSource = "GD_LOG_SOURCE" // true|false
	EnvFile   = "GD_LOG_FILE"   // path; enables rotated JSON file output
)

// Options controls logger initialization. Zero value: info, console, stderr.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string
	// Console overrides stderr; used by tests.
	Console io.Writer
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	level   = new(slog.LevelVar)
)

// L returns the application logger, initializing it from the environment on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init installs a new application logger and makes it the slog default.
func Init(opts Options) {
	level.Set(parseLevel(opts.Level))
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var sinks []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		sinks = append(sinks, slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}))
	} else {
		sinks = append(sinks, &prettyTextHandler{opts: prettyOpts{Level: level, AddSource: opts.AddSource}, w: console})
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		w := &lj.Logger{Filename: f, MaxSize: 5, MaxBackups: 3, MaxAge: 14, Compress: true}
		sinks = append(sinks, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}))
	}

	var h slog.Handler = sinks[0]
	if len(sinks) > 1 {
		h = &fanout{hs: sinks}
	}
	logger := slog.New(&gestureEnricher{next: h}).With(
		slog.String("app", "gradientdesigner"),
		slog.String("ver", version.Version),
	)

	mu.Lock()
	current = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// FromEnv builds Options from GD_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: isTrue(os.Getenv(EnvSource)),
		File:      os.Getenv(EnvFile),
	}
}

// SetLevel changes the level of the installed logger without rebuilding it.
func SetLevel(s string) { level.Set(parseLevel(s)) }

// WithComponent returns a logger tagged with component=name.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation tags l with op=op.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

type gestureKey struct{}

// WithGesture returns a context whose log records carry gesture=name.
func WithGesture(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, gestureKey{}, name)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to every handler that accepts its level.
type fanout struct{ hs []slog.Handler }

func (f *fanout) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return &fanout{hs: out}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithGroup(name)
	}
	return &fanout{hs: out}
}

// gestureEnricher copies the gesture name from the context onto the record.
type gestureEnricher struct{ next slog.Handler }

func (e *gestureEnricher) Enabled(ctx context.Context, lvl slog.Level) bool {
	return e.next.Enabled(ctx, lvl)
}

func (e *gestureEnricher) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if g, ok := ctx.Value(gestureKey{}).(string); ok && g != "" {
			r.AddAttrs(slog.String("gesture", g))
		}
	}
	return e.next.Handle(ctx, r)
}

func (e *gestureEnricher) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gestureEnricher{next: e.next.WithAttrs(attrs)}
}

func (e *gestureEnricher) WithGroup(name string) slog.Handler {
	return &gestureEnricher{next: e.next.WithGroup(name)}
}
