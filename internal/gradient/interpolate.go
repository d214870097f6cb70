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
	"math"

	"gradientdesigner/internal/domain"
)

// ColourAt samples sorted stops at position. The colour channels are blended
// straight in sRGB, matching what the preview renderers draw.
func ColourAt(stops []Stop, position float64) domain.Colour {
	if len(stops) == 0 {
		return domain.Colour{}
	}
	if position <= stops[0].Position || len(stops) == 1 {
		return stops[0].Colour
	}
	i := len(stops) - 1
	for i > 0 && position < stops[i].Position {
		i--
	}
	if i >= len(stops)-1 {
		return stops[i].Colour
	}
	p1, p2 := stops[i], stops[i+1]
	if p2.Position == p1.Position {
		return p2.Colour
	}
	return Lerp(p1.Colour, p2.Colour, (position-p1.Position)/(p2.Position-p1.Position))
}

// Lerp blends a towards b by t in [0,1].
func Lerp(a, b domain.Colour, t float64) domain.Colour {
	t = clamp01(t)
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return domain.Colour{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
