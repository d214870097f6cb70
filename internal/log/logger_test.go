/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestInitAndStructuredLoggingToFile verifies that the rotated file sink writes
// JSON records carrying the static, component and gesture attributes.
func TestInitAndStructuredLoggingToFile(t *testing.T) {
	fpath := filepath.Join(os.TempDir(), fmt.Sprintf("gd_log_%d.json", time.Now().UnixNano()))
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "console", File: fpath, Console: &console})

	l := WithOperation(WithComponent("marker"), "drag")
	ctx := WithGesture(context.Background(), "flick")
	l.InfoContext(ctx, "stop removed", slog.Int("index", 1))

	time.Sleep(50 * time.Millisecond)

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	if m["app"] != "gradientdesigner" {
		t.Fatalf("missing app attr: %v", m["app"])
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
	if m["component"] != "marker" || m["op"] != "drag" {
		t.Fatalf("component/op mismatch: %v %v", m["component"], m["op"])
	}
	if m["gesture"] != "flick" {
		t.Fatalf("gesture attr mismatch: %v", m["gesture"])
	}
	if m["msg"] != "stop removed" {
		t.Fatalf("msg mismatch: %v", m["msg"])
	}

	// the console sink received the same record
	if !strings.Contains(console.String(), "stop removed") || !strings.Contains(console.String(), "gesture=flick") {
		t.Fatalf("console output missing record: %q", console.String())
	}
}

func TestSetLevelAdjustsInstalledLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Console: &buf})
	WithComponent("t").Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}
	SetLevel("debug")
	WithComponent("t").Debug("shown")
	if !strings.Contains(buf.String(), "DBG shown") {
		t.Fatalf("debug record missing after SetLevel: %q", buf.String())
	}
}
