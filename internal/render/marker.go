/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	xvector "golang.org/x/image/vector"

	"gradientdesigner/internal/marker"
	"gradientdesigner/internal/vector"
)

var (
	White     = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Black     = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	Grey      = color.NRGBA{0x80, 0x80, 0x80, 0xff}
	LightGrey = color.NRGBA{0xd3, 0xd3, 0xd3, 0xff}
)

// Marker draws one stop handle. Coordinates are widget units with the widget
// origin at r.Min; Scale converts them to pixels.
type Marker struct {
	Handle *marker.Handle
	Scale  float32
}

func (m Marker) Render(dst draw.Image, r image.Rectangle) {
	h := m.Handle
	if h == nil || h.State() == marker.Deleted {
		return
	}
	s := scaleOr1(m.Scale)
	b := h.Bounds
	sw := h.Swatch()

	// shadow
	arrow := h.Arrow()
	fillPath(dst, r, &arrow, s, LightGrey)
	fillRect(dst, r, sw.Translate(1, 1), s, LightGrey)

	hw := b.W / 2
	fillRect(dst, r, vector.R(b.X, b.Y+hw, b.W, 1/s), s, Grey)

	fillRect(dst, r, sw, s, White)
	fillRect(dst, r, sw, s, nrgba(h.Colour))

	outline := h.Outline()
	strokePath(dst, r, &outline, s, 1, Black)
}

// Designer paints the whole designer widget for a controller: white
// background, the preview strip over a checkerboard, then the markers.
type Designer struct {
	Controller  *marker.Controller
	Scale       float32
	CheckerSize int
}

func (d Designer) Render(dst draw.Image, r image.Rectangle) {
	c := d.Controller
	s := scaleOr1(d.Scale)
	Fill{Colour: White}.Render(dst, r)

	x0, y0, x1, y1 := c.Preview().Pixels(s)
	pr := image.Rect(x0, y0, x1, y1).Add(r.Min).Intersect(r)
	Swatch(c.List(), false, int(math.Round(float64(float32(cellOr10(d.CheckerSize))*s)))).Render(dst, pr)

	active := c.Active()
	for _, h := range c.Handles() {
		if h != active {
			Marker{Handle: h, Scale: s}.Render(dst, r)
		}
	}
	if active != nil {
		Marker{Handle: active, Scale: s}.Render(dst, r)
	}
}

func fillRect(dst draw.Image, r image.Rectangle, rect vector.Rect, s float32, c color.Color) {
	x0, y0, x1, y1 := rect.Pixels(s)
	pr := image.Rect(x0, y0, x1, y1).Add(r.Min).Intersect(r)
	xdraw.Draw(dst, pr, image.NewUniform(c), image.Point{}, xdraw.Over)
}

func fillPath(dst draw.Image, r image.Rectangle, p *vector.Path, s float32, c color.Color) {
	if r.Empty() {
		return
	}
	z := xvector.NewRasterizer(r.Dx(), r.Dy())
	p.SubPaths(func(pts []vector.Pt, _ bool) {
		if len(pts) < 3 {
			return
		}
		z.MoveTo(pts[0].X*s, pts[0].Y*s)
		for _, pt := range pts[1:] {
			z.LineTo(pt.X*s, pt.Y*s)
		}
		z.ClosePath()
	})
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// strokePath draws every edge as a quad of the given width in widget units.
func strokePath(dst draw.Image, r image.Rectangle, p *vector.Path, s, width float32, c color.Color) {
	if r.Empty() {
		return
	}
	z := xvector.NewRasterizer(r.Dx(), r.Dy())
	half := width * s / 2
	p.Segments(func(a, b vector.Pt) {
		ax, ay, bx, by := a.X*s, a.Y*s, b.X*s, b.Y*s
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			return
		}
		nx, ny := -dy/l*half, dx/l*half
		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	})
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

func scaleOr1(s float32) float32 {
	if s <= 0 {
		return 1
	}
	return s
}

func cellOr10(c int) int {
	if c <= 0 {
		return 10
	}
	return c
}
