package eventbuffer

import (
	"testing"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
)

func at(base time.Time, ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func TestPushEvictsOutdatedPrefix(t *testing.T) {
	base := time.Now()
	b := New(TTL(300 * time.Millisecond))

	b.Push(inputevent.KeyDown(inputevent.A), at(base, 0))
	b.Push(inputevent.KeyDown(inputevent.B), at(base, 100))
	if b.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", b.Len())
	}

	// Arrival 301ms after the first entry evicts it (300ms exactly is not
	// evicted: the predicate is strictly greater-than).
	b.Push(inputevent.KeyDown(inputevent.C), at(base, 301))
	if b.Len() != 2 {
		t.Fatalf("expected eviction of the oldest entry, got %d entries", b.Len())
	}
}

func TestClearEmptiesBuffer(t *testing.T) {
	b := New(NeverEvict)
	b.Push(inputevent.KeyDown(inputevent.A), time.Now())
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer after Clear, got %d", b.Len())
	}
}

func TestRecentPressedKeysSimplePress(t *testing.T) {
	base := time.Now()
	b := New(NeverEvict)
	b.Push(inputevent.KeyDown(inputevent.RightCtrl), at(base, 0))
	b.Push(inputevent.KeyUp(inputevent.RightCtrl), at(base, 10))

	presses := b.RecentPressedKeys(nil)
	if len(presses) != 1 || presses[0].Key != inputevent.RightCtrl {
		t.Fatalf("expected one RightCtrl press, got %+v", presses)
	}
}

func TestRecentPressedKeysIgnoresRepeatsAndUnrelatedEvents(t *testing.T) {
	base := time.Now()
	b := New(NeverEvict)
	b.Push(inputevent.KeyDown(inputevent.A), at(base, 0))
	b.Push(inputevent.KeyRepeat(inputevent.A), at(base, 5))
	b.Push(inputevent.MouseDown(inputevent.Left), at(base, 8))
	b.Push(inputevent.KeyUp(inputevent.A), at(base, 10))

	presses := b.RecentPressedKeys(nil)
	if len(presses) != 1 || presses[0].Key != inputevent.A {
		t.Fatalf("expected one A press, got %+v", presses)
	}
}

// TestRecentPressedKeysInterleaved exercises the reference algorithm's
// documented quirk: for Down(A) Down(B) Up(B) Up(A), the press completing
// on A is yielded first (A's KeyDown was found first by the walk) even
// though B's KeyUp occurred earlier in time.
func TestRecentPressedKeysInterleaved(t *testing.T) {
	base := time.Now()
	b := New(NeverEvict)
	b.Push(inputevent.KeyDown(inputevent.A), at(base, 0))
	b.Push(inputevent.KeyDown(inputevent.B), at(base, 1))
	b.Push(inputevent.KeyUp(inputevent.B), at(base, 2))
	b.Push(inputevent.KeyUp(inputevent.A), at(base, 3))

	presses := b.RecentPressedKeys(nil)
	if len(presses) != 2 {
		t.Fatalf("expected 2 presses, got %+v", presses)
	}
	if presses[0].Key != inputevent.A || !presses[0].At.Equal(at(base, 3)) {
		t.Fatalf("expected first press to be A closed at t=3, got %+v", presses[0])
	}
	if presses[1].Key != inputevent.B || !presses[1].At.Equal(at(base, 2)) {
		t.Fatalf("expected second press to be B closed at t=2, got %+v", presses[1])
	}
}

func TestRecentPressedKeysRespectsSince(t *testing.T) {
	base := time.Now()
	b := New(NeverEvict)
	b.Push(inputevent.KeyDown(inputevent.RightCtrl), at(base, 0))
	b.Push(inputevent.KeyUp(inputevent.RightCtrl), at(base, 1))
	since := at(base, 1)
	b.Push(inputevent.KeyDown(inputevent.RightCtrl), at(base, 2))
	b.Push(inputevent.KeyUp(inputevent.RightCtrl), at(base, 3))

	presses := b.RecentPressedKeys(&since)
	if len(presses) != 1 {
		t.Fatalf("expected only the press after `since`, got %+v", presses)
	}
	if !presses[0].At.Equal(at(base, 3)) {
		t.Fatalf("expected press closed at t=3, got %+v", presses[0])
	}
}

func TestRecentPressedKeysStrayKeyUpIgnored(t *testing.T) {
	base := time.Now()
	b := New(NeverEvict)
	b.Push(inputevent.KeyUp(inputevent.A), at(base, 0))
	b.Push(inputevent.KeyDown(inputevent.B), at(base, 1))
	b.Push(inputevent.KeyUp(inputevent.B), at(base, 2))

	presses := b.RecentPressedKeys(nil)
	if len(presses) != 1 || presses[0].Key != inputevent.B {
		t.Fatalf("expected only the B press, got %+v", presses)
	}
}
