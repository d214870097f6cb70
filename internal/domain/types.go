/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the data exchanged with embedding code: the gradient
// supplied to the designer and the gradient read back from it.

import (
	"fmt"
	"strconv"
	"strings"
)

// Colour is a straight (non-premultiplied) 8-bit RGBA value.
type Colour struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// Named colours used by presets and the default gradient.
var (
	Black = Colour{0, 0, 0, 255}
	White = Colour{255, 255, 255, 255}
	Blue  = Colour{0, 0, 255, 255}
	Red   = Colour{255, 0, 0, 255}
)

// RGBA satisfies image/color.Color.
func (c Colour) RGBA() (r, g, b, a uint32) {
	// premultiply, as color.NRGBA does
	r = uint32(c.R)
	r |= r << 8
	r = r * uint32(c.A) / 0xff
	g = uint32(c.G)
	g |= g << 8
	g = g * uint32(c.A) / 0xff
	b = uint32(c.B)
	b |= b << 8
	b = b * uint32(c.A) / 0xff
	a = uint32(c.A)
	a |= a << 8
	return
}

// Hex formats the colour as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Colour) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa (leading # optional).
func ParseHex(s string) (Colour, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Colour{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Colour{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Stop anchors a colour at a normalized offset along the gradient axis.
type Stop struct {
	Position float64 `json:"position"`
	Colour   Colour  `json:"colour"`
}

// Gradient is the ordered stop sequence handed to and read from the designer.
// Radial is informational for previews; the designer itself is always linear.
type Gradient struct {
	Name   string `json:"name,omitempty"`
	Radial bool   `json:"radial,omitempty"`
	Stops  []Stop `json:"stops"`
}
