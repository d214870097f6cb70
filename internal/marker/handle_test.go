/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package marker

import (
	"testing"

	"gradientdesigner/internal/vector"
)

func TestHandleShapes(t *testing.T) {
	h := &Handle{Bounds: vector.R(100, 60, 12, 18)}

	arrow := h.Arrow()
	if b := arrow.Bounds(); b.X != 100 || b.Y != 60 || b.W != 12 || b.H != 7 {
		t.Fatalf("arrow bounds: %+v", b)
	}
	if !arrow.Contains(vector.Pt{X: 106, Y: 64}) {
		t.Fatalf("arrow should cover its middle")
	}

	sw := h.Swatch()
	if sw.X != 102 || sw.Y != 68 || sw.W != 8 || sw.H != 8 {
		t.Fatalf("swatch: %+v", sw)
	}

	n := 0
	o := h.Outline()
	o.Segments(func(a, b vector.Pt) { n++ })
	if n != 5 {
		t.Fatalf("outline edges = %d, want 5", n)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Dragging: "dragging", ColourPicking: "colour-picking", Deleted: "deleted", State(42): "unknown"} {
		if s.String() != want {
			t.Fatalf("%d.String() = %q", int(s), s.String())
		}
	}
}
