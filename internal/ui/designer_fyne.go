//go:build fyne

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
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
	"gradientdesigner/internal/marker"
	"gradientdesigner/internal/render"
	"gradientdesigner/internal/vector"
)

// GradientDesigner is the editing widget: preview strip plus marker track.
// Pointer input goes to a marker.Controller; the picture is a raster painted
// by render.Designer.
type GradientDesigner struct {
	widget.BaseWidget

	ctrl        *marker.Controller
	checkerSize int
	laidOut     fyne.Size
	cancel      func()

	// OnChanged runs after every edit of the stop list.
	OnChanged func(domain.Gradient)
}

var (
	_ desktop.Mouseable = (*GradientDesigner)(nil)
	_ fyne.Draggable    = (*GradientDesigner)(nil)
)

func NewGradientDesigner(ctrl *marker.Controller, checkerSize int) *GradientDesigner {
	d := &GradientDesigner{ctrl: ctrl, checkerSize: checkerSize}
	d.cancel = ctrl.List().Subscribe(gradient.ObserverFunc(func(l *gradient.StopList) {
		d.Refresh()
		if d.OnChanged != nil {
			d.OnChanged(l.Gradient())
		}
	}))
	d.ExtendBaseWidget(d)
	return d
}

// Controller returns the gesture controller behind the widget.
func (d *GradientDesigner) Controller() *marker.Controller { return d.ctrl }

// Detach stops listening to the stop list.
func (d *GradientDesigner) Detach() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *GradientDesigner) CreateRenderer() fyne.WidgetRenderer {
	r := &designerRenderer{d: d}
	r.raster = canvas.NewRaster(r.draw)
	return r
}

// MinSize leaves room for the preview strip and the marker track.
func (d *GradientDesigner) MinSize() fyne.Size { return fyne.NewSize(200, 80) }

// syncLayout keeps the controller geometry in step with the widget size.
func (d *GradientDesigner) syncLayout() {
	sz := d.Size()
	if sz == d.laidOut {
		return
	}
	d.laidOut = sz
	d.ctrl.Layout(vector.R(0, 0, sz.Width, sz.Height))
}

func (d *GradientDesigner) MouseDown(e *desktop.MouseEvent) {
	d.syncLayout()
	btn := marker.ButtonPrimary
	if e.Button == desktop.MouseButtonSecondary {
		btn = marker.ButtonSecondary
	}
	d.ctrl.Press(marker.PointerEvent{Pos: toPt(e.Position), Button: btn})
	d.Refresh()
}

func (d *GradientDesigner) MouseUp(e *desktop.MouseEvent) {
	d.ctrl.Release(marker.PointerEvent{Pos: toPt(e.Position)})
	d.Refresh()
}

func (d *GradientDesigner) Dragged(e *fyne.DragEvent) {
	d.ctrl.Drag(marker.PointerEvent{Pos: toPt(e.Position)})
	d.Refresh()
}

func (d *GradientDesigner) DragEnd() {
	d.ctrl.Release(marker.PointerEvent{})
	d.Refresh()
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

type designerRenderer struct {
	d      *GradientDesigner
	raster *canvas.Raster
}

func (r *designerRenderer) Destroy()                     {}
func (r *designerRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.raster} }
func (r *designerRenderer) MinSize() fyne.Size           { return r.d.MinSize() }
func (r *designerRenderer) Refresh()                     { r.raster.Refresh() }

func (r *designerRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
	r.d.syncLayout()
}

func (r *designerRenderer) draw(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	sz := r.d.Size()
	if sz.Width <= 0 || w <= 0 {
		return img
	}
	r.d.syncLayout()
	render.Designer{Controller: r.d.ctrl, Scale: float32(w) / sz.Width, CheckerSize: r.d.checkerSize}.Render(img, img.Bounds())
	return img
}

// RadialPreview paints the current gradient from the top-left corner outwards.
type RadialPreview struct {
	widget.BaseWidget
	sampler render.Sampler
}

func NewRadialPreview(s render.Sampler) *RadialPreview {
	p := &RadialPreview{sampler: s}
	p.ExtendBaseWidget(p)
	return p
}

func (p *RadialPreview) CreateRenderer() fyne.WidgetRenderer {
	ras := canvas.NewRaster(func(w, h int) image.Image {
		return render.Image(render.Layers{render.Checkerboard{}, render.Radial{Sampler: p.sampler}}, w, h)
	})
	return widget.NewSimpleRenderer(ras)
}

func (p *RadialPreview) MinSize() fyne.Size { return fyne.NewSize(120, 120) }

// dialogPicker opens Fyne's colour picker dialog for a stop.
func dialogPicker(win fyne.Window) marker.ColourPicker {
	return marker.PickerFunc(func(current domain.Colour, _ vector.Rect, done func(marker.PickResult)) {
		picked := false
		cp := dialog.NewColorPicker("Stop colour", "Choose the colour of this stop", func(c color.Color) {
			picked = true
			done(marker.PickResult{Colour: fromColor(c), OK: true})
		}, win)
		cp.Advanced = true
		cp.SetColor(current)
		cp.SetOnClosed(func() {
			if !picked {
				done(marker.PickResult{})
			}
		})
		cp.Show()
	})
}

func fromColor(c color.Color) domain.Colour {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return domain.Colour{R: n.R, G: n.G, B: n.B, A: n.A}
}
