/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"image/color"
	"testing"
)

func TestParseHexForms(t *testing.T) {
	cases := []struct {
		in   string
		want Colour
	}{
		{"#00f", Blue},
		{"ff0000", Red},
		{"#11223344", Colour{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}
	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHex(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseHex("#12345"); err == nil {
		t.Fatalf("expected error for 5-digit hex")
	}
	if _, err := ParseHex("#zzzzzz"); err == nil {
		t.Fatalf("expected error for non-hex digits")
	}
}

func TestHexOmitsOpaqueAlpha(t *testing.T) {
	if got := Blue.Hex(); got != "#0000ff" {
		t.Fatalf("Blue.Hex() = %q", got)
	}
	if got := (Colour{R: 1, G: 2, B: 3, A: 4}).Hex(); got != "#01020304" {
		t.Fatalf("Hex() = %q", got)
	}
}

func TestColourMatchesNRGBA(t *testing.T) {
	c := Colour{R: 200, G: 100, B: 50, A: 128}
	r1, g1, b1, a1 := c.RGBA()
	r2, g2, b2, a2 := color.NRGBA{R: 200, G: 100, B: 50, A: 128}.RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
		t.Fatalf("RGBA mismatch: got %d %d %d %d want %d %d %d %d", r1, g1, b1, a1, r2, g2, b2, a2)
	}
}

func TestGradientJSONShape(t *testing.T) {
	g := Gradient{Stops: []Stop{{Position: 0, Colour: Blue}, {Position: 1, Colour: Red}}}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	stops, ok := m["stops"].([]any)
	if !ok || len(stops) != 2 {
		t.Fatalf("expected 2 stops in %s", string(b))
	}
	if _, ok := m["radial"]; ok {
		t.Fatalf("radial should be omitted when false: %s", string(b))
	}
}
