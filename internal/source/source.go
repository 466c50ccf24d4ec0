// Package source reads raw OS keyboard/mouse activity and turns it into
// inputevent.Local values for the controller, grabbing (or releasing) the
// physical device as the controller's relay flag changes.
package source

import (
	"context"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// Devices names the OS input devices to read from. Platforms that don't use
// device paths (Windows) ignore these.
type Devices struct {
	Keyboard string
	Mouse    string
	Touchpad string
}

// OnInputEventFunc is how a Source reports a decoded local event and learns
// whether the device should now be grabbed (consume == true) or passed
// through to the OS. Callers typically close over an
// internal/controller.Controller's OnInputEvent method plus a clock.
type OnInputEventFunc func(e inputevent.Local) (consume bool)

// Run reads input until ctx is cancelled or a fatal OS error occurs. Each
// decoded local event is passed to onEvent; the returned bool tells the
// source whether to grab (true) or release (false) the physical device(s).
func Run(ctx context.Context, devices Devices, onEvent OnInputEventFunc) error {
	return run(ctx, devices, onEvent)
}

// keyRepeatMapper rewrites a second KeyDown for an already-down key into
// KeyRepeat, matching evdev's and the Windows hook's respective native
// repeat semantics: evdev auto-repeats with EV_KEY value 2 from the kernel,
// the Windows low-level hook only ever reports KeyDown/KeyUp and needs this
// tracked in software.
type keyRepeatMapper struct {
	down map[inputevent.KeyCode]bool
}

func newKeyRepeatMapper() *keyRepeatMapper {
	return &keyRepeatMapper{down: make(map[inputevent.KeyCode]bool)}
}

// mapKeyDown rewrites a software-detected KeyDown into KeyRepeat if the key
// was already down, and records the key's new down state for Up/Down.
func (m *keyRepeatMapper) mapKeyDown(key inputevent.KeyCode) inputevent.Local {
	if m.down[key] {
		return inputevent.Local{Kind: inputevent.KindKeyRepeat, Key: key}
	}
	m.down[key] = true
	return inputevent.Local{Kind: inputevent.KindKeyDown, Key: key}
}

func (m *keyRepeatMapper) mapKeyUp(key inputevent.KeyCode) inputevent.Local {
	delete(m.down, key)
	return inputevent.Local{Kind: inputevent.KindKeyUp, Key: key}
}
