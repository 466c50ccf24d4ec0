package source

import (
	"testing"

	"github.com/kafji/terong-relay/internal/inputevent"
)

func TestKeyRepeatMapperRewritesSecondKeyDown(t *testing.T) {
	m := newKeyRepeatMapper()

	first := m.mapKeyDown(inputevent.A)
	if first.Kind != inputevent.KindKeyDown {
		t.Fatalf("expected first KeyDown to stay KeyDown, got %v", first.Kind)
	}

	second := m.mapKeyDown(inputevent.A)
	if second.Kind != inputevent.KindKeyRepeat {
		t.Fatalf("expected second KeyDown for the same key to become KeyRepeat, got %v", second.Kind)
	}

	up := m.mapKeyUp(inputevent.A)
	if up.Kind != inputevent.KindKeyUp {
		t.Fatalf("expected KeyUp to pass through, got %v", up.Kind)
	}

	third := m.mapKeyDown(inputevent.A)
	if third.Kind != inputevent.KindKeyDown {
		t.Fatalf("expected KeyDown after a KeyUp to reset to KeyDown, got %v", third.Kind)
	}
}

func TestKeyRepeatMapperTracksKeysIndependently(t *testing.T) {
	m := newKeyRepeatMapper()
	m.mapKeyDown(inputevent.A)
	b := m.mapKeyDown(inputevent.B)
	if b.Kind != inputevent.KindKeyDown {
		t.Fatalf("expected a different key's first KeyDown to stay KeyDown, got %v", b.Kind)
	}
}
