/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
)

// PDFOptions controls PDF export behavior. Units are points.
//
// The linear strip is drawn as vector shadings, one per pair of neighbouring
// stops. PDF shadings carry no alpha, so a radial swatch or a gradient with
// translucent stops is embedded as a raster rendered by Raster instead.
type PDFOptions struct {
	Width, Height float64 // swatch size, 480x60 when zero
	Radial        bool
	StopTable     bool
	// NoCompression keeps page streams readable, mainly for tests.
	NoCompression bool
}

const pdfMargin = 36.0

// PDF renders g as a one-page document and writes it to w.
func PDF(w io.Writer, g domain.Gradient, opt PDFOptions) error {
	l, err := gradient.New(g.Stops)
	if err != nil {
		return fmt.Errorf("export %q: %w", g.Name, err)
	}
	sw, sh := opt.Width, opt.Height
	if sw <= 0 {
		sw = 480
	}
	if sh <= 0 {
		sh = 60
	}
	stops := l.Stops()
	pageH := sh + 2*pdfMargin
	if opt.StopTable {
		pageH += 24 + 16*float64(len(stops))
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sw + 2*pdfMargin, Ht: pageH},
	})
	pdf.SetCompression(!opt.NoCompression)
	title := g.Name
	if title == "" {
		title = "Gradient"
	}
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Gradient Designer", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	x, y := pdfMargin, pdfMargin
	if opt.Radial || g.Radial || !opaque(stops) {
		if err := embedRaster(pdf, g, opt.Radial || g.Radial, x, y, sw, sh); err != nil {
			return err
		}
	} else {
		drawShadings(pdf, stops, x, y, sw, sh)
	}
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, sw, sh, "D")

	if opt.StopTable {
		stopTable(pdf, stops, x, y+sh+16)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes the document to path, creating parent directories.
func ExportPDF(path string, g domain.Gradient, opt PDFOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := PDF(&buf, g, opt); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func opaque(stops []gradient.Stop) bool {
	for _, s := range stops {
		if s.Colour.A != 255 {
			return false
		}
	}
	return true
}

func drawShadings(pdf *gofpdf.Fpdf, stops []gradient.Stop, x, y, w, h float64) {
	for i := 0; i+1 < len(stops); i++ {
		a, b := stops[i], stops[i+1]
		x0 := x + a.Position*w
		sw := (b.Position - a.Position) * w
		if sw <= 0 {
			continue
		}
		pdf.LinearGradient(x0, y, sw, h,
			int(a.Colour.R), int(a.Colour.G), int(a.Colour.B),
			int(b.Colour.R), int(b.Colour.G), int(b.Colour.B),
			0, 0, 1, 0)
	}
	// flat fills beyond the end stops
	first, last := stops[0], stops[len(stops)-1]
	if first.Position > 0 {
		setFill(pdf, first.Colour)
		pdf.Rect(x, y, first.Position*w, h, "F")
	}
	if last.Position < 1 {
		setFill(pdf, last.Colour)
		pdf.Rect(x+last.Position*w, y, (1-last.Position)*w, h, "F")
	}
}

func embedRaster(pdf *gofpdf.Fpdf, g domain.Gradient, radial bool, x, y, w, h float64) error {
	// two pixels per point keeps the raster smooth at print zoom
	img, err := Raster(g, PNGOptions{Width: int(w * 2), Height: int(h * 2), Radial: radial, CheckerSize: 20})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode raster: %w", err)
	}
	name := "swatch"
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("embed raster: %w", err)
	}
	pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func stopTable(pdf *gofpdf.Fpdf, stops []gradient.Stop, x, y float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 16, "Position", "B", 0, "L", false, 0, "")
	pdf.CellFormat(90, 16, "Colour", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 16, "", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range stops {
		pdf.SetX(x)
		pdf.CellFormat(60, 16, fmt.Sprintf("%.3f", s.Position), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 16, s.Colour.Hex(), "", 0, "L", false, 0, "")
		setFill(pdf, s.Colour)
		pdf.CellFormat(40, 16, "", "1", 1, "L", true, 0, "")
	}
}

func setFill(pdf *gofpdf.Fpdf, c domain.Colour) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
