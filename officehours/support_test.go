// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"sync"
)

// recorder is a Listener that keeps every event, in the order received.
type recorder struct {
	lock   sync.Mutex
	events []Event
}

func (r *recorder) OfficeEvent(e Event) {
	r.lock.Lock()
	r.events = append(r.events, e)
	r.lock.Unlock()
}

func (r *recorder) Events() []Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) Types() []EventType {
	var types []EventType
	for _, e := range r.Events() {
		types = append(types, e.Type)
	}

	return types
}

func (r *recorder) OfType(t EventType) []Event {
	var matching []Event
	for _, e := range r.Events() {
		if e.Type == t {
			matching = append(matching, e)
		}
	}

	return matching
}

func (r *recorder) Count(t EventType) int {
	return len(r.OfType(t))
}
