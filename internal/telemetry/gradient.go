/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"gradientdesigner/internal/gradient"
)

// Event names emitted for designer edits.
const (
	EventStopAdded      = "stop_added"
	EventStopRemoved    = "stop_removed"
	EventStopRecoloured = "stop_recoloured"
	EventStopMoved      = "stop_moved"
	EventGradientLoaded = "gradient_loaded"
)

// Sink receives events. *Client satisfies it.
type Sink interface {
	Event(name string, props map[string]any)
}

// Watch subscribes to l and reports every edit to sink. Only stop counts and
// positions are sent, never colours. The returned func unsubscribes.
func Watch(l *gradient.StopList, sink Sink) (cancel func()) {
	w := &editWatcher{sink: sink, prev: snapshot(l)}
	return l.Subscribe(w)
}

type stopState struct {
	index    int
	position float64
	colour   [4]uint8
}

type editWatcher struct {
	sink Sink
	prev map[gradient.StopID]stopState
}

func (w *editWatcher) Changed(l *gradient.StopList) {
	cur := snapshot(l)
	n := l.Len()

	// every ID is new after Initialize
	overlap := false
	for id := range cur {
		if _, ok := w.prev[id]; ok {
			overlap = true
			break
		}
	}
	if !overlap {
		w.sink.Event(EventGradientLoaded, map[string]any{"stops": n})
		w.prev = cur
		return
	}

	for id, s := range cur {
		p, ok := w.prev[id]
		switch {
		case !ok:
			w.sink.Event(EventStopAdded, map[string]any{"index": s.index, "position": s.position, "stops": n})
		case p.position != s.position:
			w.sink.Event(EventStopMoved, map[string]any{"from": p.position, "to": s.position, "stops": n})
		case p.colour != s.colour:
			w.sink.Event(EventStopRecoloured, map[string]any{"index": s.index, "stops": n})
		}
	}
	for id, p := range w.prev {
		if _, ok := cur[id]; !ok {
			w.sink.Event(EventStopRemoved, map[string]any{"index": p.index, "stops": n})
		}
	}
	w.prev = cur
}

func snapshot(l *gradient.StopList) map[gradient.StopID]stopState {
	stops := l.Stops()
	m := make(map[gradient.StopID]stopState, len(stops))
	for i, s := range stops {
		m[s.ID] = stopState{index: i, position: s.Position, colour: [4]uint8{s.Colour.R, s.Colour.G, s.Colour.B, s.Colour.A}}
	}
	return m
}
