/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export writes gradient swatches as PNG and PDF files.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
	"gradientdesigner/internal/render"
)

// PNGOptions controls PNG export behavior.
// - Width, Height: size of the swatch in pixels; 512x64 when zero
// - Radial: paint the radial preview instead of the linear strip
// - Labels: add a row with a tick and the position of every stop
// - CheckerSize: backdrop cell size in pixels, 10 when zero
type PNGOptions struct {
	Width, Height int
	Radial        bool
	Labels        bool
	CheckerSize   int
}

const labelRow = 20

func (o PNGOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 512
	}
	if h <= 0 {
		h = 64
	}
	return w, h
}

// PNG renders g as a swatch and encodes it to w.
func PNG(w io.Writer, g domain.Gradient, opt PNGOptions) error {
	img, err := Raster(g, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Raster renders g into a new image without encoding it.
func Raster(g domain.Gradient, opt PNGOptions) (*image.NRGBA, error) {
	l, err := gradient.New(g.Stops)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", g.Name, err)
	}
	w, h := opt.size()
	total := h
	if opt.Labels {
		total += labelRow
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, total))
	render.Fill{Colour: render.White}.Render(img, img.Bounds())
	render.Swatch(l, opt.Radial || g.Radial, opt.CheckerSize).Render(img, image.Rect(0, 0, w, h))
	if opt.Labels {
		drawLabels(img, l.Stops(), w, h)
	}
	return img, nil
}

// ExportPNG writes the swatch to path, creating parent directories.
func ExportPNG(path string, g domain.Gradient, opt PNGOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := PNG(f, g, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// drawLabels puts a tick under every stop and its position below, kept
// inside the image at both ends.
func drawLabels(img *image.NRGBA, stops []gradient.Stop, w, h int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: face}
	for _, s := range stops {
		x := int(s.Position * float64(w-1))
		for y := h; y < h+4; y++ {
			img.Set(x, y, color.Black)
		}
		text := strconv.FormatFloat(s.Position, 'f', 2, 64)
		adv := d.MeasureString(text).Ceil()
		tx := x - adv/2
		if tx < 0 {
			tx = 0
		}
		if tx+adv > w {
			tx = w - adv
		}
		d.Dot = fixed.P(tx, h+4+face.Ascent)
		d.DrawString(text)
	}
}
