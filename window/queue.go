// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"sync/atomic"

	"github.com/gogpu/rayview/event"
)

// eventQueue is the FIFO between GLFW callbacks and NextEvent. Callbacks
// run on the main thread, so only the redraw flag is shared with other
// goroutines.
type eventQueue struct {
	events []event.Event
	redraw atomic.Bool
}

// push appends ev. A resize directly following another resize replaces
// it, since only the final size matters.
func (q *eventQueue) push(ev event.Event) {
	if _, ok := ev.(event.Resized); ok && len(q.events) > 0 {
		if _, ok := q.events[len(q.events)-1].(event.Resized); ok {
			q.events[len(q.events)-1] = ev
			return
		}
	}
	q.events = append(q.events, ev)
}

// pop returns the oldest queued event. A pending redraw is delivered only
// after all queued events.
func (q *eventQueue) pop() (event.Event, bool) {
	if len(q.events) > 0 {
		ev := q.events[0]
		q.events[0] = nil
		q.events = q.events[1:]
		if len(q.events) == 0 {
			q.events = q.events[:0:0]
		}
		return ev, true
	}
	if q.redraw.Swap(false) {
		return event.RedrawRequested{}, true
	}
	return nil, false
}

// requestRedraw sets the redraw flag. It reports whether the flag was
// clear, i.e. whether the caller must wake the event loop.
func (q *eventQueue) requestRedraw() bool {
	return !q.redraw.Swap(true)
}

func (q *eventQueue) len() int {
	n := len(q.events)
	if q.redraw.Load() {
		n++
	}
	return n
}
