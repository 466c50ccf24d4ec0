//go:build windows

package sink

import (
	"context"
	"encoding/binary"
	"syscall"
	"unsafe"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// user32.dll SendInput, loaded the way gdamore/tcell's Windows console
// backend loads kernel32.dll procs.
var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventFMove       = 0x0001
	mouseEventFLeftDown   = 0x0002
	mouseEventFLeftUp     = 0x0004
	mouseEventFRightDown  = 0x0008
	mouseEventFRightUp    = 0x0010
	mouseEventFMiddleDown = 0x0020
	mouseEventFMiddleUp   = 0x0040
	mouseEventFXDown      = 0x0080
	mouseEventFXUp        = 0x0100
	mouseEventFWheel      = 0x0800

	keyEventFKeyUp = 0x0002

	xbutton1   = 0x0001
	xbutton2   = 0x0002
	wheelDelta = 120
)

// rawInput is a 40-byte INPUT struct: 4 bytes type, 4 bytes alignment
// padding, then the 32-byte MOUSEINPUT/KEYBDINPUT union (both variants
// start at byte offset 8, matching the real struct's x64 layout).
type rawInput [40]byte

func newMouseInput(flags uint32, dx, dy int32, mouseData uint32) rawInput {
	var r rawInput
	binary.LittleEndian.PutUint32(r[0:4], inputMouse)
	binary.LittleEndian.PutUint32(r[8:12], uint32(dx))
	binary.LittleEndian.PutUint32(r[12:16], uint32(dy))
	binary.LittleEndian.PutUint32(r[16:20], mouseData)
	binary.LittleEndian.PutUint32(r[20:24], flags)
	return r
}

func newKeyboardInput(vk uint16, flags uint32) rawInput {
	var r rawInput
	binary.LittleEndian.PutUint32(r[0:4], inputKeyboard)
	binary.LittleEndian.PutUint16(r[8:10], vk)
	binary.LittleEndian.PutUint32(r[12:16], flags)
	return r
}

func sendInput(inputs ...rawInput) error {
	if len(inputs) == 0 {
		return nil
	}
	ret, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret != uintptr(len(inputs)) {
		return err
	}
	return nil
}

func run(ctx context.Context, in <-chan inputevent.Wire) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case w, ok := <-in:
			if !ok {
				return nil
			}
			if err := replay(w); err != nil {
				return err
			}
		}
	}
}

func replay(w inputevent.Wire) error {
	switch w.Kind {
	case inputevent.KindMouseMove:
		if w.DX == 0 && w.DY == 0 {
			return nil
		}
		return sendInput(newMouseInput(mouseEventFMove, int32(w.DX), int32(w.DY), 0))

	case inputevent.KindMouseButtonDown:
		return sendInput(mouseButtonInput(w.Button, true))

	case inputevent.KindMouseButtonUp:
		return sendInput(mouseButtonInput(w.Button, false))

	case inputevent.KindMouseScroll:
		clicks := int32(w.Clicks) * wheelDelta
		if w.Direction == inputevent.ScrollDown {
			clicks = -clicks
		}
		return sendInput(newMouseInput(mouseEventFWheel, 0, 0, uint32(clicks)))

	case inputevent.KindKeyDown, inputevent.KindKeyRepeat:
		vk, ok := vkFromKeyCode[w.Key]
		if !ok {
			return nil
		}
		return sendInput(newKeyboardInput(vk, 0))

	case inputevent.KindKeyUp:
		vk, ok := vkFromKeyCode[w.Key]
		if !ok {
			return nil
		}
		return sendInput(newKeyboardInput(vk, keyEventFKeyUp))

	default:
		return nil
	}
}

func mouseButtonInput(b inputevent.MouseButton, down bool) rawInput {
	switch b {
	case inputevent.Left:
		if down {
			return newMouseInput(mouseEventFLeftDown, 0, 0, 0)
		}
		return newMouseInput(mouseEventFLeftUp, 0, 0, 0)
	case inputevent.Right:
		if down {
			return newMouseInput(mouseEventFRightDown, 0, 0, 0)
		}
		return newMouseInput(mouseEventFRightUp, 0, 0, 0)
	case inputevent.Middle:
		if down {
			return newMouseInput(mouseEventFMiddleDown, 0, 0, 0)
		}
		return newMouseInput(mouseEventFMiddleUp, 0, 0, 0)
	case inputevent.Mouse4:
		if down {
			return newMouseInput(mouseEventFXDown, 0, 0, xbutton1)
		}
		return newMouseInput(mouseEventFXUp, 0, 0, xbutton1)
	case inputevent.Mouse5:
		if down {
			return newMouseInput(mouseEventFXDown, 0, 0, xbutton2)
		}
		return newMouseInput(mouseEventFXUp, 0, 0, xbutton2)
	default:
		return rawInput{}
	}
}
