//go:build fyne && cgo

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
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"gradientdesigner/internal/crash"
	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/export"
	"gradientdesigner/internal/gradient"
	applog "gradientdesigner/internal/log"
	"gradientdesigner/internal/marker"
	"gradientdesigner/internal/source"
	"gradientdesigner/internal/telemetry"
	"gradientdesigner/internal/version"
)

const (
	prefWindowW = "window.width"
	prefWindowH = "window.height"
	prefRadial  = "designer.radial"
	prefLastDir = "designer.last_dir"
)

// Run opens the designer window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("gradient", opts.Gradient.Name), slog.String("path", opts.Path))

	dc := opts.Config.Designer
	list, err := gradient.New(opts.Gradient.Stops)
	if err != nil {
		return fmt.Errorf("open designer: %w", err)
	}
	crash.SetStateProvider(func() (domain.Gradient, bool) { return list.Gradient(), true })
	defer crash.Recover()

	if c := telemetry.Default(); c.Enabled() {
		defer telemetry.Watch(list, c)()
	}

	fyneApp := app.NewWithID("gradientdesigner")
	w := fyneApp.NewWindow("Gradient Designer")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback(prefWindowW, 640)
	winH := prefs.IntWithFallback(prefWindowH, 420)
	w.Resize(fyne.NewSize(float32(max(winW, 320)), float32(max(winH, 240))))

	ctrl := marker.New(list, marker.Options{
		MarkerWidth:     dc.MarkerWidth,
		MarkerHeight:    dc.MarkerHeight,
		DeleteThreshold: dc.DeleteThreshold,
		Picker:          dialogPicker(w),
	})
	defer ctrl.Close()

	designer := NewGradientDesigner(ctrl, dc.CheckerSize)
	defer designer.Detach()
	radial := NewRadialPreview(list)
	status := widget.NewLabel("")
	title := opts.Gradient.Name

	updateStatus := func() {
		name := title
		if name == "" {
			name = "untitled"
		}
		status.SetText(fmt.Sprintf("%s · %d stops", name, list.Len()))
	}
	updateStatus()
	designer.OnChanged = func(domain.Gradient) {
		radial.Refresh()
		updateStatus()
	}

	showRadial := prefs.BoolWithFallback(prefRadial, dc.RadialPreview || opts.Gradient.Radial)
	radialCheck := widget.NewCheck("Radial preview", func(on bool) {
		if on {
			radial.Show()
		} else {
			radial.Hide()
		}
		prefs.SetBool(prefRadial, on)
	})
	radialCheck.SetChecked(showRadial)
	if !showRadial {
		radial.Hide()
	}

	load := func(g domain.Gradient, from string) {
		if err := ctrl.SetGradient(g); err != nil {
			l.Error("load gradient failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		title = g.Name
		if title == "" && from != "" {
			title = strings.TrimSuffix(filepath.Base(from), filepath.Ext(from))
		}
		updateStatus()
	}

	// Live reload of the source file
	var watcher *source.Watcher
	watch := func(path string) {
		if watcher != nil {
			watcher.Stop()
			watcher = nil
		}
		if path == "" {
			return
		}
		wt, err := source.Watch(path, 0, func(g domain.Gradient) {
			fyne.Do(func() { load(g, path) })
		}, func(err error) {
			l.Warn("watch", slog.Any("err", err))
		})
		if err != nil {
			l.Warn("cannot watch gradient file", slog.String("path", path), slog.Any("err", err))
			return
		}
		watcher = wt
	}
	watch(opts.Path)
	defer func() {
		if watcher != nil {
			watcher.Stop()
		}
	}()

	// Menus
	openItem := fyne.NewMenuItem("Open…", func() {
		l.Info("menu: open")
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			defer func() { _ = rc.Close() }()
			g, derr := source.Decode(rc)
			if derr != nil {
				dialog.ShowError(derr, w)
				return
			}
			path := rc.URI().Path()
			load(g, path)
			watch(path)
			prefs.SetString(prefLastDir, filepath.Dir(path))
		}, w)
		d.SetFilter(fstorage.NewExtensionFileFilter([]string{".json"}))
		if last := prefs.String(prefLastDir); last != "" {
			if lister, err := fstorage.ListerForURI(fstorage.NewFileURI(last)); err == nil {
				d.SetLocation(lister)
			}
		}
		d.Show()
	})
	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}

	var presetItems []*fyne.MenuItem
	for _, name := range source.PresetNames() {
		name := name
		presetItems = append(presetItems, fyne.NewMenuItem(name, func() {
			l.Info("menu: preset", slog.String("name", name))
			g, _ := source.Preset(name)
			watch("")
			load(g, "")
		}))
	}
	presetsItem := fyne.NewMenuItem("Presets", nil)
	presetsItem.ChildMenu = fyne.NewMenu("", presetItems...)

	copyItem := fyne.NewMenuItem("Copy JSON", func() {
		var buf bytes.Buffer
		g := list.Gradient()
		g.Name = title
		if err := source.Encode(&buf, g); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Clipboard().SetContent(buf.String())
		l.Info("gradient copied", slog.Int("stops", list.Len()))
	})
	copyItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}

	saveAs := func(ext string, write func(path string, g domain.Gradient) error) func() {
		return func() {
			l.Info("menu: export", slog.String("format", ext))
			d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
				if err != nil || wc == nil {
					return
				}
				path := wc.URI().Path()
				_ = wc.Close()
				g := list.Gradient()
				g.Name = title
				g.Radial = radialCheck.Checked
				if err := write(path, g); err != nil {
					l.Error("export failed", slog.String("path", path), slog.Any("err", err))
					dialog.ShowError(err, w)
					return
				}
				l.Info("exported", slog.String("path", path))
				dialog.ShowInformation("Export", "Saved "+filepath.Base(path), w)
			}, w)
			d.SetFileName(exportName(title, ext))
			d.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
			d.Show()
		}
	}
	pngItem := fyne.NewMenuItem("Export PNG…", saveAs(".png", func(p string, g domain.Gradient) error {
		return export.ExportPNG(p, g, export.PNGOptions{Labels: true, CheckerSize: dc.CheckerSize})
	}))
	pdfItem := fyne.NewMenuItem("Export PDF…", saveAs(".pdf", func(p string, g domain.Gradient) error {
		return export.ExportPDF(p, g, export.PDFOptions{StopTable: true})
	}))

	fileMenu := fyne.NewMenu("File", openItem, presetsItem, fyne.NewMenuItemSeparator(), copyItem, pngItem, pdfItem)

	aboutItem := fyne.NewMenuItem("About Gradient Designer", func() {
		exe, _ := os.Executable()
		info := fmt.Sprintf("Gradient Designer\nVersion: %s\nOS: %s\nArch: %s\nGo: %s\nExecutable: %s",
			version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version(), exe)
		dialog.ShowInformation("About", info, w)
	})
	helpItem := fyne.NewMenuItem("Gestures", func() {
		dialog.ShowInformation("Gestures", "Click the track to add a stop.\n"+
			"Drag a marker to move it.\n"+
			fmt.Sprintf("Drag a marker %.0f pixels up or down to delete it.\n", ctrl.DeleteThreshold())+
			"Right-click a marker to change its colour.\n"+
			"The two end markers stay in place.", w)
	})
	helpMenu := fyne.NewMenu("Help", helpItem, aboutItem)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))

	content := container.NewBorder(nil, container.NewHBox(status, radialCheck), nil, nil,
		container.NewVSplit(designer, radial))
	w.SetContent(content)

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt(prefWindowW, int(sz.Width))
		prefs.SetInt(prefWindowH, int(sz.Height))
		w.Close()
	})

	start := time.Now()
	w.ShowAndRun()
	l.Info("UI closed", slog.Duration("uptime", time.Since(start)))
	return nil
}

func exportName(title, ext string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "gradient"
	}
	return strings.ReplaceAll(name, " ", "-") + ext
}
