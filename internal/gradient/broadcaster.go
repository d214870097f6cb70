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

import "reflect"

// Observer is notified after a StopList mutation has been fully applied.
// The notification carries no payload beyond the list itself.
type Observer interface {
	Changed(l *StopList)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(l *StopList)

func (f ObserverFunc) Changed(l *StopList) { f(l) }

// Broadcaster keeps the registered observers of a StopList.
// Observers are called in registration order.
type Broadcaster struct {
	next      int
	observers []subscription
}

type subscription struct {
	id int
	o  Observer
}

// Subscribe registers o and returns a function that unregisters it.
func (b *Broadcaster) Subscribe(o Observer) (cancel func()) {
	b.next++
	id := b.next
	b.observers = append(b.observers, subscription{id: id, o: o})
	return func() { b.remove(id) }
}

// Unsubscribe removes every registration of o. Observers of an uncomparable
// type, such as ObserverFunc, are never matched; use the cancel func returned
// by Subscribe for those.
func (b *Broadcaster) Unsubscribe(o Observer) {
	kept := b.observers[:0]
	for _, s := range b.observers {
		if !sameObserver(s.o, o) {
			kept = append(kept, s)
		}
	}
	b.observers = kept
}

func sameObserver(a, b Observer) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

func (b *Broadcaster) remove(id int) {
	for i, s := range b.observers {
		if s.id == id {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Observers reports how many observers are registered.
func (b *Broadcaster) Observers() int { return len(b.observers) }

func (b *Broadcaster) notify(l *StopList) {
	// copy so an observer may unsubscribe itself during the callback
	subs := append([]subscription(nil), b.observers...)
	for _, s := range subs {
		s.o.Changed(l)
	}
}
