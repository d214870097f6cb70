/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gradientdesigner/internal/domain"
)

func TestDecodeAcceptsBothColourForms(t *testing.T) {
	in := `{"name":"mixed","radial":true,"stops":[
		{"position":0,"colour":"#00f"},
		{"position":0.5,"colour":{"r":10,"g":20,"b":30}},
		{"position":1,"colour":"#ff000080"}]}`
	g, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Name != "mixed" || !g.Radial || len(g.Stops) != 3 {
		t.Fatalf("unexpected gradient %+v", g)
	}
	want := []domain.Colour{domain.Blue, {R: 10, G: 20, B: 30, A: 255}, {R: 255, A: 128}}
	for i, c := range want {
		if g.Stops[i].Colour != c {
			t.Errorf("stop %d colour %+v, want %+v", i, g.Stops[i].Colour, c)
		}
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"one stop":      `{"stops":[{"position":0,"colour":"#000"}]}`,
		"missing stops": `{"name":"x"}`,
		"bad hex":       `{"stops":[{"position":0,"colour":"#12"},{"position":1,"colour":"#000"}]}`,
		"channel range": `{"stops":[{"position":0,"colour":{"r":300,"g":0,"b":0}},{"position":1,"colour":"#000"}]}`,
		"extra field":   `{"stops":[{"position":0,"colour":"#000","x":1},{"position":1,"colour":"#000"}]}`,
		"position type": `{"stops":[{"position":"0","colour":"#000"},{"position":1,"colour":"#000"}]}`,
		"not json":      `{"stops":`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("expected ErrSchema, got %v", err)
			}
			var se *SchemaError
			if !errors.As(err, &se) || len(se.Problems) == 0 {
				t.Fatalf("expected problems listed: %v", err)
			}
		})
	}
}

func TestEncodeWritesHexAndDecodes(t *testing.T) {
	g := domain.Gradient{Name: "rt", Stops: []domain.Stop{
		{Position: 0, Colour: domain.Black},
		{Position: 0.25, Colour: domain.Colour{R: 1, G: 2, B: 3, A: 4}},
		{Position: 1, Colour: domain.White},
	}}
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"#01020304"`) || !strings.Contains(buf.String(), `"#000000"`) {
		t.Fatalf("expected hex colours: %s", buf.String())
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Name != "rt" || back.Stops[1] != g.Stops[1] {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := PresetNames()
	if len(names) < 4 || names[0] != "blue-red" {
		t.Fatalf("unexpected presets %v", names)
	}
	for _, n := range names {
		g, ok := Preset(n)
		if !ok || g.Name != n {
			t.Fatalf("preset %q missing", n)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, g); err != nil {
			t.Fatal(err)
		}
		if err := Validate(buf.Bytes()); err != nil {
			t.Errorf("preset %q fails schema: %v", n, err)
		}
	}
	g, _ := Preset(DefaultPreset)
	g.Stops[0].Colour = domain.White
	if again, _ := Preset(DefaultPreset); again.Stops[0].Colour != domain.Blue {
		t.Fatalf("Preset must return a copy")
	}
}

func TestResolvePresetThenFile(t *testing.T) {
	if g, err := Resolve("greyscale"); err != nil || g.Stops[0].Colour != domain.Black {
		t.Fatalf("Resolve preset: %+v %v", g, err)
	}
	path := filepath.Join(t.TempDir(), "g.json")
	writeFile(t, path, `{"stops":[{"position":0,"colour":"#fff"},{"position":1,"colour":"#000"}]}`)
	g, err := Resolve(path)
	if err != nil || g.Stops[0].Colour != domain.White {
		t.Fatalf("Resolve file: %+v %v", g, err)
	}
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.json")
	writeFile(t, path, `{"stops":[{"position":0,"colour":"#000"},{"position":1,"colour":"#fff"}]}`)

	loaded := make(chan domain.Gradient, 4)
	failed := make(chan error, 4)
	w, err := Watch(path, 20*time.Millisecond, func(g domain.Gradient) { loaded <- g }, func(err error) { failed <- err })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Stop()

	// unrelated files in the same directory are ignored
	writeFile(t, filepath.Join(dir, "other.json"), `{}`)
	writeFile(t, path, `{"name":"v2","stops":[{"position":0,"colour":"#f00"},{"position":1,"colour":"#00f"}]}`)

	select {
	case g := <-loaded:
		if g.Name != "v2" {
			t.Fatalf("loaded %+v", g)
		}
	case err := <-failed:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload after write")
	}

	writeFile(t, path, `{"stops":[]}`)
	select {
	case err := <-failed:
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("expected schema error, got %v", err)
		}
	case g := <-loaded:
		t.Fatalf("invalid file loaded: %+v", g)
	case <-time.After(3 * time.Second):
		t.Fatalf("no error reported for invalid file")
	}

	w.Stop()
	w.Stop()
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
