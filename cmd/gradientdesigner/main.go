/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"gradientdesigner/internal/config"
	"gradientdesigner/internal/crash"
	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/export"
	"gradientdesigner/internal/gradient"
	applog "gradientdesigner/internal/log"
	"gradientdesigner/internal/source"
	"gradientdesigner/internal/telemetry"
	"gradientdesigner/internal/ui"
	"gradientdesigner/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Gradient Designer")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  gradientdesigner version|-v|--version                  Show version")
	_, _ = fmt.Fprintln(w, "  gradientdesigner ui [<gradient.json>|<preset>]         Launch desktop UI (build with -tags fyne)")
	_, _ = fmt.Fprintln(w, "  gradientdesigner check <gradient.json>                 Validate a gradient file and list its stops")
	_, _ = fmt.Fprintln(w, "  gradientdesigner render <gradient|preset> <out> [radial] Write a PNG or PDF swatch")
	_, _ = fmt.Fprintln(w, "  gradientdesigner print <gradient|preset>               Print the normalised gradient as JSON")
	_, _ = fmt.Fprintln(w, "  gradientdesigner presets                               List built-in gradients")
}

func main() {
	cfg := setup()
	defer crash.Recover()
	defer telemetry.Default().Close()
	if code := run(os.Args[1:], cfg, os.Stdout, os.Stderr); code != 0 {
		telemetry.Default().Close()
		os.Exit(code)
	}
}

// setup loads the config and initialises logging and telemetry from it.
func setup() config.AppConfig {
	cfg, token, err := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if err != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", err))
	}
	telemetry.NewDefault(telemetry.Config{
		OptIn:        cfg.General.TelemetryOptIn,
		EventsURL:    cfg.Telemetry.EventsURL,
		CrashURL:     cfg.Telemetry.CrashURL,
		Token:        token,
		Timeout:      cfg.Telemetry.Timeout(),
		DebugLogging: os.Getenv("GD_TELEMETRY_DEBUG") != "",
	})
	if p, err := config.ConfigPath(); err == nil {
		crash.SetReportDir(filepath.Join(filepath.Dir(p), "crash"))
	}
	return cfg
}

func run(args []string, cfg config.AppConfig, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	fail := func(err error) int {
		l.Error(args[0]+" failed", slog.Any("err", err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	need := func(n int, what string) bool {
		if len(args) < n+1 {
			_, _ = fmt.Fprintf(stderr, "%s requires %s\n", args[0], what)
			usage(stderr)
			return false
		}
		return true
	}

	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, "Gradient Designer")
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0

	case "ui":
		opts := ui.Options{Config: cfg, Gradient: cfg.Designer.DefaultGradient()}
		if len(args) > 1 {
			g, path, err := resolve(args[1])
			if err != nil {
				return fail(err)
			}
			opts.Gradient, opts.Path = g, path
		}
		if err := ui.Run(opts); err != nil {
			return fail(err)
		}
		return 0

	case "check":
		if !need(1, "<gradient.json>") {
			return 2
		}
		path := args[1]
		st, err := os.Stat(path)
		if err != nil {
			return fail(err)
		}
		g, err := source.Load(path)
		if err != nil {
			return fail(err)
		}
		l.Info("check", slog.String("path", path), slog.Int("stops", len(g.Stops)))
		list, err := gradient.New(g.Stops)
		if err != nil {
			return fail(err)
		}
		name := g.Name
		if name == "" {
			name = "(unnamed)"
		}
		_, _ = fmt.Fprintf(stdout, "%s: %s, %d stops, %s, modified %s\n",
			path, name, list.Len(), humanize.Bytes(uint64(st.Size())), humanize.Time(st.ModTime()))
		for i, s := range list.Stops() {
			lock := ""
			if s.Locked {
				lock = " (end)"
			}
			_, _ = fmt.Fprintf(stdout, "  %2d  %.4f  %s%s\n", i, s.Position, s.Colour.Hex(), lock)
		}
		if clamped := clampedCount(g); clamped > 0 {
			_, _ = fmt.Fprintf(stdout, "note: %d position(s) outside 0..1 were clamped\n", clamped)
		}
		return 0

	case "render":
		if !need(2, "<gradient|preset> and <out.png|out.pdf>") {
			return 2
		}
		g, _, err := resolve(args[1])
		if err != nil {
			return fail(err)
		}
		out := args[2]
		radial := g.Radial || (len(args) > 3 && args[3] == "radial")
		switch strings.ToLower(filepath.Ext(out)) {
		case ".png":
			err = export.ExportPNG(out, g, export.PNGOptions{Radial: radial, Labels: !radial, CheckerSize: cfg.Designer.CheckerSize})
		case ".pdf":
			err = export.ExportPDF(out, g, export.PDFOptions{Radial: radial, StopTable: true})
		default:
			err = fmt.Errorf("unsupported output %q: want .png or .pdf", out)
		}
		if err != nil {
			return fail(err)
		}
		st, err := os.Stat(out)
		if err != nil {
			return fail(err)
		}
		l.Info("rendered", slog.String("out", out), slog.Int64("bytes", st.Size()))
		_, _ = fmt.Fprintf(stdout, "Wrote %s (%s)\n", out, humanize.Bytes(uint64(st.Size())))
		return 0

	case "print":
		if !need(1, "<gradient|preset>") {
			return 2
		}
		g, _, err := resolve(args[1])
		if err != nil {
			return fail(err)
		}
		list, err := gradient.New(g.Stops)
		if err != nil {
			return fail(err)
		}
		norm := list.Gradient()
		norm.Name, norm.Radial = g.Name, g.Radial
		if err := source.Encode(stdout, norm); err != nil {
			return fail(err)
		}
		return 0

	case "presets":
		for _, n := range source.PresetNames() {
			g, _ := source.Preset(n)
			_, _ = fmt.Fprintf(stdout, "%-10s %d stops\n", n, len(g.Stops))
		}
		return 0
	}

	usage(stderr)
	return 2
}

// resolve loads a preset or a file; path is empty for presets.
func resolve(arg string) (domain.Gradient, string, error) {
	g, err := source.Resolve(arg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return g, "", fmt.Errorf("%q is neither a preset (%s) nor a readable file", arg, strings.Join(source.PresetNames(), ", "))
		}
		return g, "", err
	}
	if _, ok := source.Preset(arg); ok {
		return g, "", nil
	}
	abs, _ := filepath.Abs(arg)
	return g, abs, nil
}

func clampedCount(g domain.Gradient) int {
	n := 0
	for _, s := range g.Stops {
		if s.Position < 0 || s.Position > 1 {
			n++
		}
	}
	return n
}
