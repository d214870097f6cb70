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
	"testing"

	"gradientdesigner/internal/domain"
	"gradientdesigner/internal/gradient"
)

type recordingSink struct {
	names []string
	props []map[string]any
}

func (r *recordingSink) Event(name string, props map[string]any) {
	r.names = append(r.names, name)
	r.props = append(r.props, props)
}

func (r *recordingSink) last() string {
	if len(r.names) == 0 {
		return ""
	}
	return r.names[len(r.names)-1]
}

func TestWatchReportsEdits(t *testing.T) {
	l := gradient.MustNew([]domain.Stop{{Position: 0, Colour: domain.Blue}, {Position: 1, Colour: domain.Red}})
	sink := &recordingSink{}
	cancel := Watch(l, sink)
	defer cancel()

	i := l.InsertStop(0.5, domain.White)
	if sink.last() != EventStopAdded || sink.props[0]["stops"] != 3 {
		t.Fatalf("add not reported: %v %v", sink.names, sink.props)
	}
	i = l.RepositionStop(i, 0.25)
	if sink.last() != EventStopMoved || sink.props[1]["to"] != 0.25 {
		t.Fatalf("move not reported: %v %v", sink.names, sink.props)
	}
	l.SetStopColour(i, domain.Black)
	if sink.last() != EventStopRecoloured {
		t.Fatalf("recolour not reported: %v", sink.names)
	}
	l.RemoveStop(i)
	if sink.last() != EventStopRemoved || len(sink.names) != 4 {
		t.Fatalf("remove not reported: %v", sink.names)
	}
	if err := l.SetGradient(domain.Gradient{Stops: []domain.Stop{{Position: 0}, {Position: 0.5}, {Position: 1}}}); err != nil {
		t.Fatal(err)
	}
	if sink.last() != EventGradientLoaded || len(sink.names) != 5 {
		t.Fatalf("replacement should be a single load event: %v", sink.names)
	}
	for _, p := range sink.props {
		for k, v := range p {
			if _, isColour := v.(domain.Colour); isColour {
				t.Fatalf("colour leaked in %q", k)
			}
		}
	}
}

func TestWatchCancel(t *testing.T) {
	l := gradient.MustNew([]domain.Stop{{Position: 0}, {Position: 1}})
	sink := &recordingSink{}
	cancel := Watch(l, sink)
	cancel()
	l.InsertStop(0.5, domain.White)
	if len(sink.names) != 0 {
		t.Fatalf("cancelled watcher still reports: %v", sink.names)
	}
}

func TestClientIsSink(t *testing.T) {
	var _ Sink = (*Client)(nil)
}
