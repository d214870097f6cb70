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
	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
	"gradientdesigner/internal/vector"
)

// State is where a handle is in its gesture cycle.
type State int

const (
	Idle State = iota
	Dragging
	ColourPicking
	// Deleted is terminal; the stop is gone and the handle is never reused.
	Deleted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case ColourPicking:
		return "colour-picking"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Handle is the on-screen marker for one stop. It refers to the stop by ID;
// Index is refreshed after every list mutation.
type Handle struct {
	ID     gradient.StopID
	Index  int
	Bounds vector.Rect
	Locked bool
	Colour domain.Colour

	state       State
	dragStart   vector.Pt
	startBounds vector.Rect
	downOffsetY float32
}

// State reports the handle's gesture state.
func (h *Handle) State() State { return h.state }

// Arrow is the filled pointer at the top of the marker.
func (h *Handle) Arrow() vector.Path {
	b := h.Bounds
	hw := b.W / 2
	var p vector.Path
	p.Triangle(vector.Pt{X: b.X, Y: b.Y + hw + 1}, vector.Pt{X: b.Right(), Y: b.Y + hw + 1}, vector.Pt{X: b.CentreX(), Y: b.Y})
	return p
}

// Swatch is the square that shows the stop colour.
func (h *Handle) Swatch() vector.Rect {
	return h.Bounds.BottomSlice(h.Bounds.W).Inset(2, 2)
}

// Outline is the black border: the arrow's upper edges plus the box sides and bottom.
func (h *Handle) Outline() vector.Path {
	b := h.Bounds
	hw := b.W / 2
	var p vector.Path
	p.MoveTo(b.X, b.Y+hw)
	p.LineTo(b.CentreX(), b.Y)
	p.LineTo(b.Right(), b.Y+hw)
	p.LineTo(b.Right(), b.Bottom())
	p.LineTo(b.X, b.Bottom())
	p.Close()
	return p
}
