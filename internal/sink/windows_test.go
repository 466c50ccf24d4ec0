//go:build windows

package sink

import (
	"encoding/binary"
	"testing"

	"github.com/kafji/terong-relay/internal/inputevent"
)

func TestNewMouseInputEncodesUnionFields(t *testing.T) {
	r := newMouseInput(mouseEventFMove, -5, 10, 0)

	if got := binary.LittleEndian.Uint32(r[0:4]); got != inputMouse {
		t.Fatalf("expected type INPUT_MOUSE, got %d", got)
	}
	if got := int32(binary.LittleEndian.Uint32(r[8:12])); got != -5 {
		t.Fatalf("expected dx -5, got %d", got)
	}
	if got := int32(binary.LittleEndian.Uint32(r[12:16])); got != 10 {
		t.Fatalf("expected dy 10, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(r[20:24]); got != mouseEventFMove {
		t.Fatalf("expected dwFlags MOUSEEVENTF_MOVE, got %d", got)
	}
}

func TestNewKeyboardInputEncodesVkAndFlags(t *testing.T) {
	r := newKeyboardInput(0x41, keyEventFKeyUp)

	if got := binary.LittleEndian.Uint32(r[0:4]); got != inputKeyboard {
		t.Fatalf("expected type INPUT_KEYBOARD, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(r[8:10]); got != 0x41 {
		t.Fatalf("expected wVk 0x41, got %#x", got)
	}
	if got := binary.LittleEndian.Uint32(r[12:16]); got != keyEventFKeyUp {
		t.Fatalf("expected dwFlags KEYEVENTF_KEYUP, got %d", got)
	}
}

func TestMouseButtonInputLeftDown(t *testing.T) {
	r := mouseButtonInput(inputevent.Left, true)
	if got := binary.LittleEndian.Uint32(r[20:24]); got != mouseEventFLeftDown {
		t.Fatalf("expected MOUSEEVENTF_LEFTDOWN, got %d", got)
	}
}

func TestMouseButtonInputXButtonUp(t *testing.T) {
	r := mouseButtonInput(inputevent.Mouse5, false)
	if got := binary.LittleEndian.Uint32(r[20:24]); got != mouseEventFXUp {
		t.Fatalf("expected MOUSEEVENTF_XUP, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(r[16:20]); got != xbutton2 {
		t.Fatalf("expected mouseData XBUTTON2, got %d", got)
	}
}
