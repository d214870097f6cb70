/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package gradient

import (
	"testing"

	"gradientdesigner/internal/domain"
)

func TestColourAtEndsAndMiddle(t *testing.T) {
	stops := []Stop{
		{Position: 0.25, Colour: domain.Black},
		{Position: 0.5, Colour: domain.White},
		{Position: 1, Colour: domain.Red},
	}
	cases := []struct {
		pos  float64
		want domain.Colour
	}{
		{-1, domain.Black},
		{0.1, domain.Black},
		{0.25, domain.Black},
		{0.375, domain.Colour{R: 128, G: 128, B: 128, A: 255}},
		{0.5, domain.White},
		{0.75, domain.Colour{R: 255, G: 128, B: 128, A: 255}},
		{1, domain.Red},
		{2, domain.Red},
	}
	for _, tc := range cases {
		if got := ColourAt(stops, tc.pos); got != tc.want {
			t.Fatalf("ColourAt(%v) = %+v, want %+v", tc.pos, got, tc.want)
		}
	}
}

func TestColourAtCoincidentStops(t *testing.T) {
	stops := []Stop{
		{Position: 0, Colour: domain.Black},
		{Position: 0.5, Colour: domain.Blue},
		{Position: 0.5, Colour: domain.Red},
		{Position: 1, Colour: domain.White},
	}
	if got := ColourAt(stops, 0.5); got != domain.Red {
		t.Fatalf("at a hard edge the later stop wins, got %+v", got)
	}
	if got := ColourAt(nil, 0.5); got != (domain.Colour{}) {
		t.Fatalf("empty stops should give zero colour")
	}
}

func TestLerpClampsT(t *testing.T) {
	if got := Lerp(domain.Black, domain.White, 2); got != domain.White {
		t.Fatalf("Lerp t>1 = %+v", got)
	}
	if got := Lerp(domain.Black, domain.White, -1); got != domain.Black {
		t.Fatalf("Lerp t<0 = %+v", got)
	}
}
