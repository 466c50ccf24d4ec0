//go:build linux

package source

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// eviocgrabRequest is EVIOCGRAB from linux/input.h: _IOW('E', 0x90, int).
const eviocgrabRequest = 0x40044590

const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	relX     = 0x00
	relY     = 0x01
	relWheel = 0x08
)

// rawInputEvent mirrors struct input_event on 64-bit Linux: two 8-byte
// timeval fields, then type/code/value. Read with encoding/binary instead
// of an unsafe cast, matching the teacher's codec.go approach of decoding
// fixed wire layouts field by field.
type rawInputEvent struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}

const rawInputEventSize = 24

// run opens the configured device nodes and reads evdev events from each
// until ctx is cancelled. keyboardDevice and mouseDevice are read
// concurrently; a touchpad device is opened (matching the original's grab
// lifecycle) but its events are discarded, since the relay has no touchpad
// gesture model — mirroring transport_client.rs's `|_| None` mapper.
func run(ctx context.Context, devices Devices, onEvent OnInputEventFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	errCh := make(chan error, 3)

	spawn := func(path string, mapper func(*rawInputEvent, *linuxMotion) (inputevent.Local, bool)) {
		if path == "" {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := readDevice(ctx, path, onEvent, mapper); err != nil {
				select {
				case errCh <- fmt.Errorf("%s: %w", path, err):
				default:
				}
				// A failing device stops the other readers too.
				cancel()
			}
		}()
	}

	spawn(devices.Keyboard, mapKeyboardRaw)
	spawn(devices.Mouse, mapMouseRaw)
	spawn(devices.Touchpad, func(*rawInputEvent, *linuxMotion) (inputevent.Local, bool) { return inputevent.Local{}, false })

	wg.Wait()
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// linuxMotion accumulates REL_X/REL_Y deltas between SYN_REPORT boundaries
// into a virtual cursor position, reusing inputevent.Local's
// MousePosition/MoveFrom conversion path rather than introducing a second,
// relative-move Local representation.
type linuxMotion struct {
	x, y int32
	dx   int32
	dy   int32
}

func readDevice(ctx context.Context, path string, onEvent OnInputEventFunc, mapper func(*rawInputEvent, *linuxMotion) (inputevent.Local, bool)) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	ungrabber := &ungrabber{fd: int(f.Fd())}
	defer ungrabber.Close()
	defer f.Close()

	motion := &linuxMotion{}
	consuming := false

	done := make(chan struct{})
	go func() { <-ctx.Done(); close(done); f.Close() }()

	buf := make([]byte, rawInputEventSize)
	for {
		select {
		case <-done:
			return nil
		default:
		}

		if _, err := readFull(f, buf); err != nil {
			select {
			case <-done:
				return nil
			default:
				return fmt.Errorf("read event: %w", err)
			}
		}
		var ev rawInputEvent
		ev.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
		ev.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
		ev.Type = binary.LittleEndian.Uint16(buf[16:18])
		ev.Code = binary.LittleEndian.Uint16(buf[18:20])
		ev.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))

		local, ok := mapper(&ev, motion)
		if !ok {
			continue
		}
		consume := onEvent(local)
		if consume != consuming {
			if err := ungrabber.setGrab(consume); err != nil {
				return fmt.Errorf("set grab %v: %w", consume, err)
			}
			consuming = consume
		}
	}
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func mapKeyboardRaw(ev *rawInputEvent, _ *linuxMotion) (inputevent.Local, bool) {
	if ev.Type != evKey {
		return inputevent.Local{}, false
	}
	if btn, ok := mouseButtonFromEvKey[ev.Code]; ok {
		switch ev.Value {
		case 1:
			return inputevent.MouseDown(btn), true
		case 0:
			return inputevent.MouseUp(btn), true
		}
		return inputevent.Local{}, false
	}
	key, ok := keyCodeFromEvKey[ev.Code]
	if !ok {
		return inputevent.Local{}, false
	}
	switch ev.Value {
	case 1:
		return inputevent.KeyDown(key), true
	case 2:
		return inputevent.KeyRepeat(key), true
	case 0:
		return inputevent.KeyUp(key), true
	default:
		return inputevent.Local{}, false
	}
}

func mapMouseRaw(ev *rawInputEvent, m *linuxMotion) (inputevent.Local, bool) {
	switch ev.Type {
	case evRel:
		switch ev.Code {
		case relX:
			m.dx += ev.Value
		case relY:
			m.dy += ev.Value
		case relWheel:
			switch {
			case ev.Value > 0:
				return inputevent.Scroll(inputevent.ScrollUp, clampClicks(ev.Value)), true
			case ev.Value < 0:
				return inputevent.Scroll(inputevent.ScrollDown, clampClicks(-ev.Value)), true
			}
		}
		return inputevent.Local{}, false
	case evSyn:
		if m.dx == 0 && m.dy == 0 {
			return inputevent.Local{}, false
		}
		m.x += m.dx
		m.y += m.dy
		m.dx, m.dy = 0, 0
		return inputevent.Position(m.x, m.y), true
	default:
		return inputevent.Local{}, false
	}
}

func clampClicks(v int32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ungrabber wraps an open device fd and tracks whether it is grabbed;
// Close issues EVIOCGRAB(0) when a grab is held and does nothing
// otherwise. readDevice defers Close so it runs on every return path,
// matching the Rust Ungrabber Drop guard in src/input_source/linux.rs.
type ungrabber struct {
	fd      int
	grabbed bool
}

func (u *ungrabber) setGrab(grab bool) error {
	val := 0
	if grab {
		val = 1
	}
	if err := unix.IoctlSetInt(u.fd, eviocgrabRequest, val); err != nil {
		return err
	}
	u.grabbed = grab
	return nil
}

func (u *ungrabber) Close() error {
	if !u.grabbed {
		return nil
	}
	return unix.IoctlSetInt(u.fd, eviocgrabRequest, 0)
}
