/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render rasterises the designer in software: the checkerboard
// backdrop, linear and radial gradient previews, and the stop markers. The
// same code paints the Fyne widget and the exported PNG swatches.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
)

// Renderable paints itself into r of dst.
type Renderable interface {
	Render(dst draw.Image, r image.Rectangle)
}

// Sampler returns the gradient colour at a position in [0,1].
// *gradient.StopList satisfies it.
type Sampler interface {
	ColourAt(position float64) domain.Colour
}

type stopSampler []gradient.Stop

func (s stopSampler) ColourAt(p float64) domain.Colour { return gradient.ColourAt(s, p) }

// FromGradient samples g directly, without building a StopList. Stops are
// clamped and sorted the same way a StopList would hold them.
func FromGradient(g domain.Gradient) Sampler {
	s := make(stopSampler, len(g.Stops))
	for i, st := range g.Stops {
		s[i] = gradient.Stop{Position: math.Max(0, math.Min(1, st.Position)), Colour: st.Colour}
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Position < s[j].Position })
	return s
}

// Checker colours match the classic transparency backdrop.
var (
	CheckerDark  = color.NRGBA{0xdd, 0xdd, 0xdd, 0xff}
	CheckerLight = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// Checkerboard fills with alternating square cells, dark first.
type Checkerboard struct {
	Cell        int
	Dark, Light color.Color
}

func (c Checkerboard) Render(dst draw.Image, r image.Rectangle) {
	cell := c.Cell
	if cell <= 0 {
		cell = 10
	}
	dark, light := c.Dark, c.Light
	if dark == nil {
		dark = CheckerDark
	}
	if light == nil {
		light = CheckerLight
	}
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ((x-r.Min.X)/cell+(y-r.Min.Y)/cell)%2 == 0 {
				dst.Set(x, y, dark)
			} else {
				dst.Set(x, y, light)
			}
		}
	}
}

// Linear paints the gradient left to right across r, composited over
// whatever dst already holds.
type Linear struct {
	Sampler Sampler
}

func (l Linear) Render(dst draw.Image, r image.Rectangle) {
	if r.Empty() || l.Sampler == nil {
		return
	}
	layer := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	w := float64(r.Dx())
	for x := 0; x < r.Dx(); x++ {
		c := nrgba(l.Sampler.ColourAt((float64(x) + 0.5) / w))
		for y := 0; y < r.Dy(); y++ {
			layer.SetNRGBA(x, y, c)
		}
	}
	xdraw.Copy(dst, r.Min, layer, layer.Bounds(), xdraw.Over, nil)
}

// Radial paints the gradient outwards from the top-left corner of r; the
// last stop is reached at the bottom-right corner.
type Radial struct {
	Sampler Sampler
}

func (rd Radial) Render(dst draw.Image, r image.Rectangle) {
	if r.Empty() || rd.Sampler == nil {
		return
	}
	layer := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	radius := math.Hypot(float64(r.Dx()), float64(r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			d := math.Hypot(float64(x)+0.5, float64(y)+0.5)
			layer.SetNRGBA(x, y, nrgba(rd.Sampler.ColourAt(d/radius)))
		}
	}
	xdraw.Copy(dst, r.Min, layer, layer.Bounds(), xdraw.Over, nil)
}

// Fill paints r with a solid colour.
type Fill struct {
	Colour color.Color
}

func (f Fill) Render(dst draw.Image, r image.Rectangle) {
	xdraw.Draw(dst, r, image.NewUniform(f.Colour), image.Point{}, xdraw.Src)
}

// Frame draws a one pixel border just inside r.
type Frame struct {
	Colour color.Color
}

func (f Frame) Render(dst draw.Image, r image.Rectangle) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, f.Colour)
		dst.Set(x, r.Max.Y-1, f.Colour)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, f.Colour)
		dst.Set(r.Max.X-1, y, f.Colour)
	}
}

// Layers renders each element into the same rectangle in order.
type Layers []Renderable

func (ls Layers) Render(dst draw.Image, r image.Rectangle) {
	for _, l := range ls {
		l.Render(dst, r)
	}
}

// Swatch is the usual preview: checkerboard, gradient, grey frame.
func Swatch(s Sampler, radial bool, cell int) Renderable {
	var g Renderable = Linear{Sampler: s}
	if radial {
		g = Radial{Sampler: s}
	}
	return Layers{Checkerboard{Cell: cell}, g, Frame{Colour: Grey}}
}

// Image renders rd into a new w by h image.
func Image(rd Renderable, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rd.Render(img, img.Bounds())
	return img
}

func nrgba(c domain.Colour) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
