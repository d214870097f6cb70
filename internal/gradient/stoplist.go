/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package gradient holds the canonical colour-stop model edited by the designer.
//
// A StopList is always sorted by position, always has at least two stops, and
// its first and last stops are locked: they can be recoloured but never removed
// or moved. Every mutation notifies the registered observers exactly once, after
// the list is consistent again. StopList is meant to be driven from a single UI
// goroutine and is not safe for concurrent use.
package gradient

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"gradientdesigner/internal/domain"
	applog "gradientdesigner/internal/log"
)

// ErrInvalidGradient is returned when a gradient has fewer than two stops.
var ErrInvalidGradient = errors.New("gradient needs at least two stops")

// StopID identifies a stop independently of its index, which shifts on every
// insert, remove and reposition.
type StopID uint64

// Stop is one entry of a StopList.
type Stop struct {
	ID       StopID
	Position float64
	Colour   domain.Colour
	Locked   bool
}

// StopList is the ordered stop collection behind the designer.
type StopList struct {
	Broadcaster

	stops  []Stop
	nextID StopID
	log    *slog.Logger
}

// New returns a list initialised from stops.
func New(stops []domain.Stop) (*StopList, error) {
	l := &StopList{log: applog.WithComponent("gradient")}
	if err := l.Initialize(stops); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew is New for gradients known to be valid, such as presets.
func MustNew(stops []domain.Stop) *StopList {
	l, err := New(stops)
	if err != nil {
		panic(err)
	}
	return l
}

// Initialize replaces the whole list. Positions are clamped to [0,1] and the
// input is stably sorted, so equal positions keep their given order.
func (l *StopList) Initialize(stops []domain.Stop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidGradient, len(stops))
	}
	next := make([]Stop, 0, len(stops))
	for _, s := range stops {
		next = append(next, Stop{ID: l.newID(), Position: clamp01(s.Position), Colour: s.Colour})
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].Position < next[j].Position })
	next[0].Locked = true
	next[len(next)-1].Locked = true
	l.stops = next
	l.logger().Debug("initialize", slog.Int("stops", len(next)))
	l.notify(l)
	return nil
}

// SetGradient is Initialize for the external gradient shape.
func (l *StopList) SetGradient(g domain.Gradient) error { return l.Initialize(g.Stops) }

// Gradient returns a copy of the current stops in the external shape.
func (l *StopList) Gradient() domain.Gradient {
	out := domain.Gradient{Stops: make([]domain.Stop, len(l.stops))}
	for i, s := range l.stops {
		out.Stops[i] = domain.Stop{Position: s.Position, Colour: s.Colour}
	}
	return out
}

// Len returns the number of stops.
func (l *StopList) Len() int { return len(l.stops) }

// Stop returns the stop at index i.
func (l *StopList) Stop(i int) Stop {
	l.mustIndex(i, "Stop")
	return l.stops[i]
}

// Stops returns a copy of all stops in order.
func (l *StopList) Stops() []Stop { return append([]Stop(nil), l.stops...) }

// IndexOf returns the current index of the stop with the given id, or -1.
func (l *StopList) IndexOf(id StopID) int {
	for i, s := range l.stops {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// InsertStop adds an unlocked stop and returns its index. The stop is placed
// after any stops sharing its position and always between the locked ends.
func (l *StopList) InsertStop(position float64, c domain.Colour) int {
	s := Stop{ID: l.newID(), Position: clamp01(position), Colour: c}
	idx := l.insertSorted(s)
	l.logger().Debug("insert stop", slog.Float64("position", s.Position), slog.Int("index", idx))
	l.notify(l)
	return idx
}

// RemoveStop removes the stop at index. Locked stops and indices that are no
// longer valid are ignored without notifying.
func (l *StopList) RemoveStop(index int) {
	if index < 0 || index >= len(l.stops) || l.stops[index].Locked {
		return
	}
	l.stops = append(l.stops[:index], l.stops[index+1:]...)
	l.logger().Debug("remove stop", slog.Int("index", index))
	l.notify(l)
}

// SetStopColour recolours the stop at index, locked or not.
func (l *StopList) SetStopColour(index int, c domain.Colour) {
	l.mustIndex(index, "SetStopColour")
	l.stops[index].Colour = c
	l.logger().Debug("recolour stop", slog.Int("index", index), slog.String("colour", c.Hex()))
	l.notify(l)
}

// RepositionStop moves the stop at index to newPosition and returns its new
// index. The stop is taken out and re-inserted in sorted order, so callers
// holding the old index must switch to the returned one. Locked stops do not
// move; their index is returned unchanged and nobody is notified.
func (l *StopList) RepositionStop(index int, newPosition float64) int {
	l.mustIndex(index, "RepositionStop")
	s := l.stops[index]
	if s.Locked {
		return index
	}
	l.stops = append(l.stops[:index], l.stops[index+1:]...)
	s.Position = clamp01(newPosition)
	idx := l.insertSorted(s)
	l.logger().Debug("reposition stop", slog.Int("from", index), slog.Int("to", idx), slog.Float64("position", s.Position))
	l.notify(l)
	return idx
}

// ColourAt samples the gradient at position by interpolating the two
// neighbouring stops. Positions outside [0,1] take the end colours.
func (l *StopList) ColourAt(position float64) domain.Colour {
	return ColourAt(l.stops, position)
}

func (l *StopList) insertSorted(s Stop) int {
	idx := sort.Search(len(l.stops), func(i int) bool { return l.stops[i].Position > s.Position })
	// keep interior stops off the locked ends, even at positions 0 and 1
	if idx < 1 {
		idx = 1
	}
	if idx > len(l.stops)-1 {
		idx = len(l.stops) - 1
	}
	l.stops = append(l.stops, Stop{})
	copy(l.stops[idx+1:], l.stops[idx:])
	l.stops[idx] = s
	return idx
}

func (l *StopList) mustIndex(i int, op string) {
	if i < 0 || i >= len(l.stops) {
		panic(fmt.Sprintf("gradient: %s index %d out of range [0,%d)", op, i, len(l.stops)))
	}
}

func (l *StopList) newID() StopID {
	l.nextID++
	return l.nextID
}

func (l *StopList) logger() *slog.Logger {
	if l.log == nil {
		l.log = applog.WithComponent("gradient")
	}
	return l.log
}
