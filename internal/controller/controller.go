// Package controller implements the input controller: the single component
// allowed to flip the relay flag, and the only consumer of the event
// buffer. A deployment with both a keyboard and a mouse device runs one
// reader goroutine per device (internal/source), so OnInputEvent can be
// called concurrently from more than one goroutine; Controller serializes
// access behind a mutex, mirroring the original's Arc<Mutex<InputController>>
// guard around the same multi-listener structure.
package controller

import (
	"sync"
	"time"

	"github.com/kafji/terong-relay/internal/eventbuffer"
	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/metrics"
)

// toggleKey is the designated modifier whose double-press flips relay.
const toggleKey = inputevent.RightCtrl

// eventTTL is the event buffer's default eviction window: entries older
// than this relative to the newest arrival age out.
const eventTTL = 300 * time.Millisecond

// Controller owns the event buffer and the relay flag. on_input_event's
// caller (the input source) uses its boolean return to decide whether to
// consume or pass through the raw OS event that produced e.
type Controller struct {
	mu  sync.Mutex
	buf *eventbuffer.Buffer

	out chan<- inputevent.Wire

	relay          bool
	relayToggledAt *eventbuffer.OrderKey

	lastPosition inputevent.MousePosition
	havePosition bool
}

// New creates a Controller that enqueues converted wire events onto out
// while relaying. out should be a capacity-1 channel: the input source's
// blocking send on a full channel is the relay's only backpressure point.
func New(out chan<- inputevent.Wire) *Controller {
	return &Controller{
		buf: eventbuffer.New(eventbuffer.TTL(eventTTL)),
		out: out,
	}
}

// Relay reports the current relay state.
func (c *Controller) Relay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.relay
}

// OnInputEvent pushes e into the buffer, forwards it (converted to wire
// form) if relaying, detects a toggle double-press, and returns the
// (possibly just-flipped) relay state.
func (c *Controller) OnInputEvent(e inputevent.Local, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf.Push(e, now)

	oldPosition := c.lastPosition
	hadPosition := c.havePosition
	if e.Kind == inputevent.KindMousePosition {
		c.lastPosition = e.Position
		c.havePosition = true
	}

	if c.relay {
		if w, ok := c.toWire(e, oldPosition, hadPosition); ok {
			c.out <- w
		}
	}

	presses := c.buf.RecentPressedKeys(c.relayToggledAt)
	n := len(presses)
	if n >= 2 && presses[n-2].Key == toggleKey && presses[n-1].Key == toggleKey {
		c.relay = !c.relay
		c.buf.Clear()
		toggledAt := now
		c.relayToggledAt = &toggledAt
		metrics.RecordRelayToggle(c.relay)
	}

	return c.relay
}

// toWire converts e using the position observed just before e arrived.
// MousePosition has no wire form of its own; it becomes a relative
// MouseMove against the prior position, or is dropped if there is no prior
// position to measure from yet.
func (c *Controller) toWire(e inputevent.Local, prev inputevent.MousePosition, hadPrev bool) (inputevent.Wire, bool) {
	if e.Kind == inputevent.KindMousePosition {
		if !hadPrev {
			return inputevent.Wire{}, false
		}
		return e.MoveFrom(prev), true
	}
	return e.ToWire()
}
