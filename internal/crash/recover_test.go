/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gradientdesigner/internal/domain"
)

// TestRecover_Panic ensures Recover handles a panic, writes the report and the
// gradient snapshot, and calls the injected exit function.
func TestRecover_Panic(t *testing.T) {
	d := isolate(t)

	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	uploaded := 0
	uploadFn = func([]byte) { uploaded++ }

	SetStateProvider(func() (domain.Gradient, bool) {
		return domain.Gradient{Stops: []domain.Stop{{Position: 0}, {Position: 1}}}, true
	})

	func() {
		defer Recover()
		panic("boom")
	}()

	var report, snap string
	files, _ := os.ReadDir(d)
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Name(), ".gradient.json"):
			snap = filepath.Join(d, f.Name())
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(d, f.Name())
		}
	}
	if report == "" || snap == "" {
		t.Fatalf("expected report and snapshot in %s, got %v", d, files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	if uploaded != 1 {
		t.Fatalf("expected one upload attempt, got %d", uploaded)
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	isolate(t)
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()
	func() {
		defer Recover()
	}()
	if called {
		t.Fatalf("exit called without a panic")
	}
}
