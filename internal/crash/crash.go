/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic at the CLI or UI entry into a crash report.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"gradientdesigner/internal/domain"
	applog "gradientdesigner/internal/log"
	"gradientdesigner/internal/telemetry"
	"gradientdesigner/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// uploadFn sends the report when telemetry is opted in.
var uploadFn = telemetry.UploadCrash

// StateProvider returns the gradient being edited, if any.
type StateProvider func() (domain.Gradient, bool)

var (
	mu        sync.Mutex
	reportDir string
	state     StateProvider
)

// SetReportDir chooses where reports are written. Empty means the OS temp dir.
func SetReportDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	reportDir = dir
}

// SetStateProvider registers the source of the gradient snapshot saved with a report.
func SetStateProvider(p StateProvider) {
	mu.Lock()
	defer mu.Unlock()
	state = p
}

// Recover captures a panic, logs it with the stack, writes a report file
// and a snapshot of the current gradient, then exits with code 2.
//
// Usage: defer crash.Recover()
func Recover() {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(r, stack)
		if err != nil {
			l.Error("crash report not written", slog.Any("err", err))
		}
		if path, err := writeSnapshot(reportPath); err != nil {
			l.Error("gradient snapshot failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("gradient snapshot written", slog.String("path", path))
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

func currentState() (domain.Gradient, bool) {
	mu.Lock()
	p := state
	mu.Unlock()
	if p == nil {
		return domain.Gradient{}, false
	}
	return p()
}

func dir() string {
	mu.Lock()
	defer mu.Unlock()
	if reportDir == "" {
		return os.TempDir()
	}
	return reportDir
}

func writeReport(panicVal any, stack []byte) (string, error) {
	d := dir()
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(d, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Gradient Designer Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if g, ok := currentState(); ok {
		_, _ = fmt.Fprintf(&buf, "Stops: %d\n", len(g.Stops))
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}

	// opt-in only; a no-op unless telemetry is configured
	uploadFn(buf.Bytes())
	return path, nil
}

// writeSnapshot stores the current gradient as JSON next to the report.
// It returns "" when no provider is registered.
func writeSnapshot(reportPath string) (string, error) {
	g, ok := currentState()
	if !ok {
		return "", nil
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	if reportPath == "" {
		reportPath = filepath.Join(dir(), "crash.log")
	}
	path := reportPath[:len(reportPath)-len(filepath.Ext(reportPath))] + ".gradient.json"
	return path, os.WriteFile(path, data, 0o644)
}
