//go:build windows

package source

import (
	"context"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// user32.dll procs, loaded the way gdamore/tcell's Windows console backend
// loads kernel32.dll procs: a LazyDLL plus NewProc per entry point, called
// via Call(...) with raw uintptr arguments.
var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procSetCursorPos        = user32.NewProc("SetCursorPos")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")

	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	hcAction = 0

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C

	wmQuit = 0x0012

	smCxScreen = 0
	smCyScreen = 1

	wheelDelta = 120

	xbutton1 = 0x0001
	xbutton2 = 0x0002
)

type point struct{ X, Y int32 }

// kbdllhookstruct mirrors KBDLLHOOKSTRUCT's leading fields (vkCode, scanCode,
// flags, time, extra); only vkCode is read.
type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// msllhookstruct mirrors MSLLHOOKSTRUCT.
type msllhookstruct struct {
	Pt          point
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// hookState is the process-wide state the two hook callbacks (which the OS
// invokes with a fixed C calling-convention signature, so they cannot carry
// a closure) read and update. Exactly one run() call may be active at a
// time, matching the relay's single-source-per-process model.
type hookState struct {
	mu        sync.Mutex
	onEvent   OnInputEventFunc
	consuming atomic.Bool
	mapper    *keyRepeatMapper

	anchor      point
	savedCursor point
	haveSaved   bool
}

var hook hookState

func run(ctx context.Context, _ Devices, onEvent OnInputEventFunc) error {
	hook.mu.Lock()
	hook.onEvent = onEvent
	hook.mapper = newKeyRepeatMapper()
	hook.mu.Unlock()

	anchor, err := screenCenter()
	if err != nil {
		return err
	}
	hook.anchor = anchor

	moduleHandle, _, _ := procGetModuleHandleW.Call(0)

	mouseHook, _, err := procSetWindowsHookExW.Call(whMouseLL, mouseHookProcPtr, moduleHandle, 0)
	if mouseHook == 0 {
		return err
	}
	defer procUnhookWindowsHookEx.Call(mouseHook)

	keyboardHook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardHookProcPtr, moduleHandle, 0)
	if keyboardHook == 0 {
		return err
	}
	defer procUnhookWindowsHookEx.Call(keyboardHook)

	threadID, _, _ := procGetCurrentThreadId.Call()
	go func() {
		<-ctx.Done()
		procPostThreadMessageW.Call(threadID, wmQuit, 0, 0)
	}()

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return syscall.GetLastError()
		case 0:
			return nil
		default:
			if hook.consuming.Load() {
				anchor := hook.anchor
				procSetCursorPos.Call(uintptr(anchor.X), uintptr(anchor.Y))
			}
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		}
	}
}

func screenCenter() (point, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	return point{X: int32(w) / 2, Y: int32(h) / 2}, nil
}

// mouseHookProc and keyboardHookProc run on the hook's own thread; they
// must be minimal and must not block, matching WH_MOUSE_LL/WH_KEYBOARD_LL's
// documented constraints.
func mouseHookProc(ncode int32, wparam uintptr, lparam uintptr) uintptr {
	if ncode != hcAction {
		return callNext(ncode, wparam, lparam)
	}
	info := (*msllhookstruct)(unsafe.Pointer(lparam))

	var local inputevent.Local
	ok := true
	switch uint32(wparam) {
	case wmMouseMove:
		// The pump loop (see run's message loop above) warps the cursor
		// back to the anchor every iteration while consuming, so info.Pt
		// already measures drift since the last warp regardless of
		// whether we're consuming or passing through; internal/controller's
		// position-delta tracking turns successive reports into a
		// MouseMove either way, so no separate consuming-branch math is
		// needed here.
		local = inputevent.Position(info.Pt.X, info.Pt.Y)
	case wmLButtonDown:
		local = inputevent.MouseDown(inputevent.Left)
	case wmLButtonUp:
		local = inputevent.MouseUp(inputevent.Left)
	case wmRButtonDown:
		local = inputevent.MouseDown(inputevent.Right)
	case wmRButtonUp:
		local = inputevent.MouseUp(inputevent.Right)
	case wmMButtonDown:
		local = inputevent.MouseDown(inputevent.Middle)
	case wmMButtonUp:
		local = inputevent.MouseUp(inputevent.Middle)
	case wmXButtonDown:
		if b, present := xButton(info.MouseData); present {
			local = inputevent.MouseDown(b)
		} else {
			ok = false
		}
	case wmXButtonUp:
		if b, present := xButton(info.MouseData); present {
			local = inputevent.MouseUp(b)
		} else {
			ok = false
		}
	case wmMouseWheel:
		delta := int16(info.MouseData >> 16)
		clicks := delta / wheelDelta
		switch {
		case clicks > 0:
			local = inputevent.Scroll(inputevent.ScrollUp, clampClicksI16(clicks))
		case clicks < 0:
			local = inputevent.Scroll(inputevent.ScrollDown, clampClicksI16(-clicks))
		default:
			ok = false
		}
	default:
		ok = false
	}

	if ok {
		deliverLocal(local)
	}
	return consumeOrPass(ncode, wparam, lparam)
}

func keyboardHookProc(ncode int32, wparam uintptr, lparam uintptr) uintptr {
	if ncode != hcAction {
		return callNext(ncode, wparam, lparam)
	}
	info := (*kbdllhookstruct)(unsafe.Pointer(lparam))
	key, known := keyCodeFromVK[uint16(info.VkCode)]
	if known {
		switch uint32(wparam) {
		case wmKeyDown, wmSysKeyDown:
			hook.mu.Lock()
			local := hook.mapper.mapKeyDown(key)
			hook.mu.Unlock()
			deliverLocal(local)
		case wmKeyUp, wmSysKeyUp:
			hook.mu.Lock()
			local := hook.mapper.mapKeyUp(key)
			hook.mu.Unlock()
			deliverLocal(local)
		}
	}
	return consumeOrPass(ncode, wparam, lparam)
}

func deliverLocal(local inputevent.Local) {
	hook.mu.Lock()
	onEvent := hook.onEvent
	hook.mu.Unlock()
	if onEvent == nil {
		return
	}
	consume := onEvent(local)
	was := hook.consuming.Swap(consume)
	if was == consume {
		return
	}
	if consume {
		var p point
		procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
		hook.savedCursor = p
		hook.haveSaved = true
	} else if hook.haveSaved {
		procSetCursorPos.Call(uintptr(hook.savedCursor.X), uintptr(hook.savedCursor.Y))
		hook.haveSaved = false
	}
}

func consumeOrPass(ncode int32, wparam, lparam uintptr) uintptr {
	if hook.consuming.Load() {
		return 1
	}
	return callNext(ncode, wparam, lparam)
}

func callNext(ncode int32, wparam, lparam uintptr) uintptr {
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(ncode), wparam, lparam)
	return ret
}

func xButton(mouseData uint32) (inputevent.MouseButton, bool) {
	switch uint16(mouseData >> 16) {
	case xbutton1:
		return inputevent.Mouse4, true
	case xbutton2:
		return inputevent.Mouse5, true
	}
	return 0, false
}

func clampClicksI16(v int16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// mouseHookProcPtr and keyboardHookProcPtr are the C-callable trampolines
// SetWindowsHookExW requires; syscall.NewCallback adapts the Go functions
// above to the stdcall HOOKPROC signature.
var (
	mouseHookProcPtr    = syscall.NewCallback(mouseHookProc)
	keyboardHookProcPtr = syscall.NewCallback(keyboardHookProc)
)
