package controller

import (
	"testing"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
)

func at(base time.Time, ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

// TestToggleOnDoubleRightCtrl exercises Scenario A: a non-toggle key press
// does not forward (relay starts off) and a double RightCtrl press flips
// relay, after which a subsequent key is forwarded.
func TestToggleOnDoubleRightCtrl(t *testing.T) {
	base := time.Now()
	out := make(chan inputevent.Wire, 8)
	c := New(out)

	seq := []struct {
		e  inputevent.Local
		ms int
	}{
		{inputevent.KeyDown(inputevent.A), 0},
		{inputevent.KeyUp(inputevent.A), 10},
		{inputevent.KeyDown(inputevent.RightCtrl), 20},
		{inputevent.KeyUp(inputevent.RightCtrl), 30},
		{inputevent.KeyDown(inputevent.RightCtrl), 40},
		{inputevent.KeyUp(inputevent.RightCtrl), 50},
	}
	var relay bool
	for i, s := range seq {
		relay = c.OnInputEvent(s.e, at(base, s.ms))
		if i < len(seq)-1 && relay {
			t.Fatalf("relay flipped early at step %d", i)
		}
	}
	if !relay {
		t.Fatal("expected relay true after sixth event")
	}
	if len(out) != 0 {
		t.Fatalf("expected no events forwarded before toggle, got %d", len(out))
	}

	c.OnInputEvent(inputevent.KeyDown(inputevent.B), at(base, 60))
	select {
	case w := <-out:
		if w.Kind != inputevent.KindKeyDown || w.Key != inputevent.B {
			t.Fatalf("expected forwarded KeyDown(B), got %+v", w)
		}
	default:
		t.Fatal("expected B to be forwarded once relaying")
	}
}

// TestToggleOffOnSecondDoubleRightCtrl exercises Scenario B: starting from
// relay=true, a second double RightCtrl press flips relay back off.
func TestToggleOffOnSecondDoubleRightCtrl(t *testing.T) {
	base := time.Now()
	out := make(chan inputevent.Wire, 8)
	c := New(out)
	c.relay = true

	relay := c.OnInputEvent(inputevent.KeyDown(inputevent.RightCtrl), at(base, 0))
	relay = c.OnInputEvent(inputevent.KeyUp(inputevent.RightCtrl), at(base, 10))
	relay = c.OnInputEvent(inputevent.KeyDown(inputevent.RightCtrl), at(base, 20))
	relay = c.OnInputEvent(inputevent.KeyUp(inputevent.RightCtrl), at(base, 30))

	if relay {
		t.Fatal("expected relay false after the second double press")
	}
}

// TestMouseDeltaForwarding exercises Scenario C: consecutive MousePosition
// observations forward as a relative MouseMove while relaying.
func TestMouseDeltaForwarding(t *testing.T) {
	base := time.Now()
	out := make(chan inputevent.Wire, 4)
	c := New(out)
	c.relay = true

	c.OnInputEvent(inputevent.Position(100, 100), at(base, 0))
	select {
	case <-out:
		t.Fatal("first MousePosition has no prior reference and must not forward")
	default:
	}

	c.OnInputEvent(inputevent.Position(103, 97), at(base, 10))
	select {
	case w := <-out:
		if w.Kind != inputevent.KindMouseMove || w.DX != 3 || w.DY != -3 {
			t.Fatalf("expected MouseMove{3,-3}, got %+v", w)
		}
	default:
		t.Fatal("expected a forwarded MouseMove")
	}
}

func TestNoForwardingWhileRelayOff(t *testing.T) {
	base := time.Now()
	out := make(chan inputevent.Wire, 4)
	c := New(out)

	c.OnInputEvent(inputevent.KeyDown(inputevent.A), at(base, 0))
	c.OnInputEvent(inputevent.KeyUp(inputevent.A), at(base, 10))

	if len(out) != 0 {
		t.Fatalf("expected nothing forwarded while relay is off, got %d", len(out))
	}
}

func TestRepeatsDoNotCountTowardToggle(t *testing.T) {
	base := time.Now()
	out := make(chan inputevent.Wire, 8)
	c := New(out)

	c.OnInputEvent(inputevent.KeyDown(inputevent.RightCtrl), at(base, 0))
	c.OnInputEvent(inputevent.KeyRepeat(inputevent.RightCtrl), at(base, 5))
	c.OnInputEvent(inputevent.KeyRepeat(inputevent.RightCtrl), at(base, 8))
	relay := c.OnInputEvent(inputevent.KeyUp(inputevent.RightCtrl), at(base, 10))

	if relay {
		t.Fatal("a single held press (repeats included) must not toggle relay")
	}
}
