/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package vector holds the small amount of 2D geometry the designer needs:
// rectangles for layout and hit-testing, and straight-edged paths for the
// marker shapes. Values are float32 to line up with Fyne's coordinates.
package vector

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Right() float32   { return r.X + r.W }
func (r Rect) Bottom() float32  { return r.Y + r.H }
func (r Rect) CentreX() float32 { return r.X + r.W/2 }
func (r Rect) CentreY() float32 { return r.Y + r.H/2 }
func (r Rect) Empty() bool      { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.Right() && p.Y <= r.Bottom()
}

// Inset shrinks r by dx,dy on every side (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Translate moves r by dx,dy.
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// WithY and WithHeight mirror the usual layout helpers.
func (r Rect) WithY(y float32) Rect      { r.Y = y; return r }
func (r Rect) WithHeight(h float32) Rect { r.H = h; return r }

// WithCentreX moves r horizontally so that its centre sits at x.
func (r Rect) WithCentreX(x float32) Rect { r.X = x - r.W/2; return r }

// BottomSlice returns the bottom h units of r.
func (r Rect) BottomSlice(h float32) Rect {
	if h > r.H {
		h = r.H
	}
	return Rect{X: r.X, Y: r.Bottom() - h, W: r.W, H: h}
}

// Pixels rounds r outwards to integer pixel edges after scaling by s.
func (r Rect) Pixels(s float32) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(float64(r.X * s)))
	y0 = int(math.Floor(float64(r.Y * s)))
	x1 = int(math.Ceil(float64(r.Right() * s)))
	y1 = int(math.Ceil(float64(r.Bottom() * s)))
	return
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := float32(math.Pow(10, float64(places)))
	return float32(math.Round(float64(v*pow))) / pow
}
