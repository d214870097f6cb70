/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package marker turns pointer gestures over the designer's marker track into
// edits of a gradient.StopList.
//
// The designer is laid out as a preview strip with a track of markers directly
// beneath it. Clicking the empty track adds a stop with the colour currently
// shown above the click, dragging a marker moves its stop, flicking a marker
// vertically past the delete threshold removes it, and a secondary click opens
// a colour picker for it. The two end markers are locked: they can be
// recoloured but not dragged or deleted.
package marker

import (
	"context"
	"log/slog"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
	applog "gradientdesigner/internal/log"
	"gradientdesigner/internal/vector"
)

// Defaults for Options.
const (
	DefaultMarkerWidth     = 12
	DefaultMarkerHeight    = 18
	DefaultDeleteThreshold = 50
	// previewTop is the gap between the widget's top edge and the preview strip.
	previewTop = 10
)

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// PointerEvent is a pointer press, drag or release in widget coordinates.
type PointerEvent struct {
	Pos    vector.Pt
	Button Button
}

// PickResult is what a ColourPicker reports back. OK is false when the picker
// was dismissed without choosing.
type PickResult struct {
	Colour domain.Colour
	OK     bool
}

// ColourPicker shows a picker for current near anchor and calls done once with
// the outcome. It may return before done is called.
type ColourPicker interface {
	PickColour(current domain.Colour, anchor vector.Rect, done func(PickResult))
}

// PickerFunc adapts a function to ColourPicker.
type PickerFunc func(current domain.Colour, anchor vector.Rect, done func(PickResult))

func (f PickerFunc) PickColour(current domain.Colour, anchor vector.Rect, done func(PickResult)) {
	f(current, anchor, done)
}

// Options configures a Controller. Zero fields take the defaults above.
type Options struct {
	MarkerWidth     float32
	MarkerHeight    float32
	DeleteThreshold float32
	Picker          ColourPicker
}

// Controller owns the marker handles for one StopList.
type Controller struct {
	list   *gradient.StopList
	opts   Options
	cancel func()

	bounds  vector.Rect
	preview vector.Rect
	track   vector.Rect

	handles []*Handle
	active  *Handle
	log     *slog.Logger
}

// New attaches a controller to list. Call Layout before delivering events.
func New(list *gradient.StopList, opts Options) *Controller {
	if opts.MarkerWidth <= 0 {
		opts.MarkerWidth = DefaultMarkerWidth
	}
	if opts.MarkerHeight <= 0 {
		opts.MarkerHeight = DefaultMarkerHeight
	}
	if opts.DeleteThreshold <= 0 {
		opts.DeleteThreshold = DefaultDeleteThreshold
	}
	c := &Controller{list: list, opts: opts, log: applog.WithComponent("marker")}
	c.cancel = list.Subscribe(gradient.ObserverFunc(func(*gradient.StopList) { c.sync() }))
	c.sync()
	return c
}

// Close detaches the controller from its list.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// List returns the edited stop list.
func (c *Controller) List() *gradient.StopList { return c.list }

// DeleteThreshold is the vertical drag distance that removes a stop.
func (c *Controller) DeleteThreshold() float32 { return c.opts.DeleteThreshold }

// SetPicker replaces the colour picker collaborator.
func (c *Controller) SetPicker(p ColourPicker) { c.opts.Picker = p }

// SetGradient replaces the edited gradient; handles are rebuilt from scratch.
func (c *Controller) SetGradient(g domain.Gradient) error {
	c.active = nil
	return c.list.SetGradient(g)
}

// Gradient returns the current gradient.
func (c *Controller) Gradient() domain.Gradient { return c.list.Gradient() }

// Layout places the preview strip and marker track inside bounds and moves
// every marker to match its stop.
func (c *Controller) Layout(bounds vector.Rect) {
	c.bounds = bounds
	c.preview = bounds.Inset(c.opts.MarkerWidth, c.opts.MarkerWidth).
		WithY(bounds.Y + previewTop).
		WithHeight(bounds.H / 2)
	c.track = c.preview.WithHeight(c.opts.MarkerHeight).Translate(0, c.preview.H)
	for _, h := range c.handles {
		h.Bounds = c.markerBounds(c.list.Stop(h.Index).Position)
	}
}

func (c *Controller) Bounds() vector.Rect  { return c.bounds }
func (c *Controller) Preview() vector.Rect { return c.preview }
func (c *Controller) Track() vector.Rect   { return c.track }

// ScreenToPosition maps a horizontal widget coordinate to a gradient position.
// The result is not clamped.
func (c *Controller) ScreenToPosition(x float32) float64 {
	if c.preview.W <= 0 {
		return 0
	}
	return float64(x-c.preview.X) / float64(c.preview.W)
}

// PositionToScreen is the inverse of ScreenToPosition.
func (c *Controller) PositionToScreen(p float64) float32 {
	return c.preview.X + float32(p*float64(c.preview.W))
}

// Handles returns the live handles in stop order.
func (c *Controller) Handles() []*Handle { return append([]*Handle(nil), c.handles...) }

// HandleAt returns the topmost handle under pt, or nil.
func (c *Controller) HandleAt(pt vector.Pt) *Handle {
	for i := len(c.handles) - 1; i >= 0; i-- {
		if c.handles[i].Bounds.Contains(pt) {
			return c.handles[i]
		}
	}
	return nil
}

// Active returns the handle being dragged, or nil.
func (c *Controller) Active() *Handle { return c.active }

// Press starts a gesture.
func (c *Controller) Press(ev PointerEvent) {
	if h := c.HandleAt(ev.Pos); h != nil {
		switch {
		case ev.Button == ButtonSecondary:
			c.pick(h)
		case !h.Locked:
			h.state = Dragging
			h.dragStart = ev.Pos
			h.startBounds = h.Bounds
			h.downOffsetY = ev.Pos.Y - h.Bounds.Y
			c.active = h
			c.debug("flick", "drag start", slog.Int("index", h.Index))
		}
		return
	}
	if ev.Button != ButtonPrimary || !c.track.Contains(ev.Pos) {
		return
	}
	pos := c.ScreenToPosition(ev.Pos.X)
	idx := c.list.InsertStop(pos, c.list.ColourAt(pos))
	c.debug("add", "stop added", slog.Int("index", idx), slog.Float64("position", c.list.Stop(idx).Position))
}

// Drag continues the active gesture, if any.
func (c *Controller) Drag(ev PointerEvent) {
	h := c.active
	if h == nil || h.state != Dragging {
		return
	}

	dy := ev.Pos.Y - h.dragStart.Y
	startOffset := h.downOffsetY
	if dy < 0 {
		startOffset = -startOffset
	}
	if abs32(dy)+startOffset > c.opts.DeleteThreshold {
		c.active = nil
		h.state = Deleted
		idx := c.list.IndexOf(h.ID)
		c.debug("flick", "stop flicked away", slog.Int("index", idx), slog.Float64("dy", float64(dy)))
		c.list.RemoveStop(idx)
		return
	}

	b := h.startBounds
	b.X += ev.Pos.X - h.dragStart.X
	b = b.WithCentreX(vector.Clamp(b.CentreX(), c.preview.X, c.preview.Right()))
	b.Y = c.track.Y
	h.Bounds = b

	idx := c.list.IndexOf(h.ID)
	if idx < 0 {
		// the list was replaced under the gesture
		c.active = nil
		h.state = Deleted
		return
	}
	pos := c.ScreenToPosition(b.CentreX())
	if pos == c.list.Stop(idx).Position {
		return
	}
	h.Index = c.list.RepositionStop(idx, pos)
}

// Release ends the active gesture.
func (c *Controller) Release(PointerEvent) {
	if h := c.active; h != nil {
		if h.state == Dragging {
			h.state = Idle
		}
		h.Bounds = c.markerBounds(c.list.Stop(h.Index).Position)
		c.debug("flick", "drag end", slog.Int("index", h.Index))
	}
	c.active = nil
}

func (c *Controller) pick(h *Handle) {
	if c.opts.Picker == nil {
		return
	}
	h.state = ColourPicking
	c.debug("recolour", "picker opened", slog.Int("index", h.Index))
	c.opts.Picker.PickColour(h.Colour, h.Bounds, func(r PickResult) { c.applyPick(h, r) })
}

func (c *Controller) applyPick(h *Handle, r PickResult) {
	if h.state == Deleted {
		return
	}
	if h.state == ColourPicking {
		h.state = Idle
	}
	if !r.OK {
		return
	}
	idx := c.list.IndexOf(h.ID)
	if idx < 0 {
		return
	}
	c.list.SetStopColour(idx, r.Colour)
}

// sync rebuilds the handle slice from the list, keeping existing handles
// (and their gesture state) for stops that survived.
func (c *Controller) sync() {
	existing := make(map[gradient.StopID]*Handle, len(c.handles))
	for _, h := range c.handles {
		existing[h.ID] = h
	}
	stops := c.list.Stops()
	next := make([]*Handle, len(stops))
	for i, s := range stops {
		h, ok := existing[s.ID]
		if ok {
			delete(existing, s.ID)
		} else {
			h = &Handle{ID: s.ID}
		}
		h.Index = i
		h.Locked = s.Locked
		h.Colour = s.Colour
		if h != c.active {
			h.Bounds = c.markerBounds(s.Position)
		}
		next[i] = h
	}
	for _, gone := range existing {
		gone.state = Deleted
		if gone == c.active {
			c.active = nil
		}
	}
	c.handles = next
}

func (c *Controller) markerBounds(position float64) vector.Rect {
	return vector.R(0, c.track.Y, c.opts.MarkerWidth, c.opts.MarkerHeight).
		WithCentreX(c.PositionToScreen(position))
}

func (c *Controller) debug(gesture, msg string, attrs ...any) {
	c.log.DebugContext(applog.WithGesture(context.Background(), gesture), msg, attrs...)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
