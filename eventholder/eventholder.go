// Package eventholder provides the strict FIFO queue drained by the
// simulation loop. The queue is single-producer single-consumer within a
// run, so a plain slice suffices; it exists for ordering, not safety
package eventholder

import "github.com/quantfell/backtester/eventtypes/event"

// Holder contains the event queue for backtest processing
type Holder struct {
	queue []event.Handler
}

// AppendEvent adds an event to the back of the queue
func (h *Holder) AppendEvent(e event.Handler) {
	h.queue = append(h.queue, e)
}

// NextEvent removes and returns the front of the queue, nil when empty
func (h *Holder) NextEvent() event.Handler {
	if len(h.queue) == 0 {
		return nil
	}
	e := h.queue[0]
	h.queue = h.queue[1:]
	return e
}

// Len returns the number of queued events
func (h *Holder) Len() int {
	return len(h.queue)
}

// Reset drops all queued events
func (h *Holder) Reset() {
	h.queue = nil
}
