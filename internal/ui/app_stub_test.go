//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"strings"
	"testing"

	"gradientdesigner/internal/config"
	"gradientdesigner/internal/source"
)

func TestRun_HeadlessBuildExplainsHowToGetTheDesigner(t *testing.T) {
	g, _ := source.Preset(source.DefaultPreset)
	for _, opts := range []Options{{}, {Config: config.Defaults(), Gradient: g, Path: "g.json"}} {
		err := Run(opts)
		if err == nil {
			t.Fatal("headless Run returned nil")
		}
		for _, want := range []string{"UI not built", "-tags fyne", "./cmd/gradientdesigner"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q lacks %q", err, want)
			}
		}
	}
}
