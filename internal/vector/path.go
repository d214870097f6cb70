/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package vector

// Path is a sequence of straight-edged sub-paths. Marker arrows and outlines
// never need curves, so only MoveTo/LineTo/Close are supported.
type Path struct {
	subs [][]Pt
	// closed[i] reports whether subs[i] was closed.
	closed []bool
}

func (p *Path) MoveTo(x, y float32) {
	p.subs = append(p.subs, []Pt{{x, y}})
	p.closed = append(p.closed, false)
}

// LineTo extends the current sub-path, starting one at the origin if none is open.
func (p *Path) LineTo(x, y float32) {
	if len(p.subs) == 0 {
		p.MoveTo(0, 0)
	}
	i := len(p.subs) - 1
	p.subs[i] = append(p.subs[i], Pt{x, y})
}

func (p *Path) Close() {
	if n := len(p.closed); n > 0 {
		p.closed[n-1] = true
	}
}

// Triangle appends a closed triangle.
func (p *Path) Triangle(a, b, c Pt) {
	p.MoveTo(a.X, a.Y)
	p.LineTo(b.X, b.Y)
	p.LineTo(c.X, c.Y)
	p.Close()
}

// Segments calls fn for every edge. Closed sub-paths include the closing edge.
func (p *Path) Segments(fn func(a, b Pt)) {
	for i, sp := range p.subs {
		for j := 1; j < len(sp); j++ {
			fn(sp[j-1], sp[j])
		}
		if p.closed[i] && len(sp) > 2 {
			fn(sp[len(sp)-1], sp[0])
		}
	}
}

// SubPaths calls fn with the points of every sub-path.
func (p *Path) SubPaths(fn func(pts []Pt, closed bool)) {
	for i, sp := range p.subs {
		fn(sp, p.closed[i])
	}
}

// Bounds returns the bounding box of all points, or the zero Rect for an empty path.
func (p *Path) Bounds() Rect {
	first := true
	var minX, minY, maxX, maxY float32
	for _, sp := range p.subs {
		for _, pt := range sp {
			if first {
				minX, maxX, minY, maxY = pt.X, pt.X, pt.Y, pt.Y
				first = false
				continue
			}
			minX, maxX = min(minX, pt.X), max(maxX, pt.X)
			minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Contains tests pt against the path's area with the even-odd rule. Open
// sub-paths are treated as implicitly closed, as fill operations do.
func (p *Path) Contains(pt Pt) bool {
	inside := false
	for _, sp := range p.subs {
		n := len(sp)
		if n < 3 {
			continue
		}
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := sp[i], sp[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) {
				x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
				if pt.X < x {
					inside = !inside
				}
			}
		}
	}
	return inside
}
