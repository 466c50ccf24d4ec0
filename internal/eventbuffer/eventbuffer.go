// Package eventbuffer implements the time-bounded ring of recent local input
// events used by the input controller to detect the toggle-key double-press,
// and the generic eviction policy it is built on.
package eventbuffer

import (
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// OrderKey is a monotone time instant used to order buffer entries and to
// drive eviction. time.Time (read from a monotonic clock source) satisfies
// this in practice; the buffer itself only requires After/Sub.
type OrderKey = time.Time

// Evictor decides whether an entry with order key old should be evicted given
// the arrival of a new entry at order key new. It returns true to evict.
type Evictor func(newKey, oldKey OrderKey) bool

// TTL returns an Evictor that drops entries older than d relative to the
// newest arrival. This is the default policy (300ms in the relay).
func TTL(d time.Duration) Evictor {
	return func(newKey, oldKey OrderKey) bool {
		return newKey.Sub(oldKey) > d
	}
}

// NeverEvict is an Evictor that never removes entries; useful in tests.
func NeverEvict(OrderKey, OrderKey) bool { return false }

type entry struct {
	event inputevent.Local
	key   OrderKey
}

// Buffer is an ordered (oldest-first), strictly-by-OrderKey sequence of
// local input events with caller-defined eviction on push.
type Buffer struct {
	entries []entry
	evict   Evictor
}

// New creates a Buffer using the given eviction policy.
func New(evict Evictor) *Buffer {
	return &Buffer{evict: evict}
}

// Push evicts outdated entries from the front using the configured policy,
// then appends (event, key) as the newest entry.
func (b *Buffer) Push(event inputevent.Local, key OrderKey) {
	cut := 0
	for cut < len(b.entries) && b.evict(key, b.entries[cut].key) {
		cut++
	}
	if cut > 0 {
		b.entries = append(b.entries[:0], b.entries[cut:]...)
	}
	b.entries = append(b.entries, entry{event: event, key: key})
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
}

// Len reports the number of buffered entries.
func (b *Buffer) Len() int { return len(b.entries) }

// KeyPress is one completed press: a KeyDown followed by a matching KeyUp.
type KeyPress struct {
	Key inputevent.KeyCode
	At  OrderKey // order key of the matching KeyUp
}

// keyEvt is a KeyDown or KeyUp projection of a buffer entry, used internally
// by RecentPressedKeys. KeyRepeat and non-key events carry no keyEvt.
type keyEvt struct {
	down bool
	key  inputevent.KeyCode
	at   OrderKey
}

// recentKeyPresses replays the two-pointer walk of the reference
// implementation: find the next KeyDown (skipping stray KeyUps and pulling
// from a requeue buffer first), then find the next KeyUp matching that
// specific key, pushing any unrelated event encountered along the way back
// onto the requeue buffer so it can start or close a later press. The
// requeue buffer is a deque: findKeyDown pops from the back, findKeyUp pops
// from the back while scanning and restores non-matches in original order,
// and falls through to pushing unmatched events onto the front when reading
// fresh from the event stream.
type recentKeyPresses struct {
	events []keyEvt
	pos    int
	queue  []keyEvt // back of slice == back of deque
}

func (r *recentKeyPresses) findKeyDown() (keyEvt, bool) {
	for len(r.queue) > 0 {
		last := r.queue[len(r.queue)-1]
		r.queue = r.queue[:len(r.queue)-1]
		if last.down {
			return last, true
		}
	}
	for r.pos < len(r.events) {
		e := r.events[r.pos]
		r.pos++
		if e.down {
			return e, true
		}
	}
	return keyEvt{}, false
}

func (r *recentKeyPresses) findKeyUp(key inputevent.KeyCode) (keyEvt, bool) {
	var collected []keyEvt
	var found keyEvt
	ok := false
	for len(r.queue) > 0 {
		last := r.queue[len(r.queue)-1]
		r.queue = r.queue[:len(r.queue)-1]
		if !last.down && last.key == key {
			found, ok = last, true
			break
		}
		collected = append(collected, last)
	}
	for i := len(collected) - 1; i >= 0; i-- {
		r.queue = append(r.queue, collected[i])
	}
	if ok {
		return found, true
	}
	for r.pos < len(r.events) {
		e := r.events[r.pos]
		r.pos++
		if !e.down && e.key == key {
			return e, true
		}
		r.queue = append([]keyEvt{e}, r.queue...)
	}
	return keyEvt{}, false
}

func (r *recentKeyPresses) next() (KeyPress, bool) {
	down, ok := r.findKeyDown()
	if !ok {
		return KeyPress{}, false
	}
	up, ok := r.findKeyUp(down.key)
	if !ok {
		return KeyPress{}, false
	}
	return KeyPress{Key: up.key, At: up.at}, true
}

// RecentPressedKeys walks the buffer forward and yields completed key
// presses (a KeyDown followed later by a matching KeyUp) among entries
// whose order key is strictly greater than since (if since is non-nil).
// Non-matching events between a Down and its Up do not break the press;
// KeyRepeat never counts as a new press.
//
// This mirrors the reference two-pointer walk exactly, including its
// surprising-but-specified ordering: completed presses are yielded in the
// order their KeyDown was first encountered, not necessarily in the order
// their KeyUp occurred, when presses interleave.
func (b *Buffer) RecentPressedKeys(since *OrderKey) []KeyPress {
	var events []keyEvt
	for _, e := range b.entries {
		if since != nil && !e.key.After(*since) {
			continue
		}
		switch e.event.Kind {
		case inputevent.KindKeyDown:
			events = append(events, keyEvt{down: true, key: e.event.Key, at: e.key})
		case inputevent.KindKeyUp:
			events = append(events, keyEvt{down: false, key: e.event.Key, at: e.key})
		default:
			// KeyRepeat and non-key events never start or end a press.
		}
	}

	walker := &recentKeyPresses{events: events}
	var presses []KeyPress
	for {
		p, ok := walker.next()
		if !ok {
			break
		}
		presses = append(presses, p)
	}
	return presses
}
