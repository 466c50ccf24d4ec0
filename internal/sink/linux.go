//go:build linux

package sink

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// uinput ioctl numbers and event-type/code constants, from
// linux/uinput.h and linux/input-event-codes.h.
const (
	uiSetEvBit  = 0x40045564
	uiSetKeyBit = 0x40045565
	uiSetRelBit = 0x40045566
	uiDevCreate = 0x5501
	uiDevDestroy = 0x5502

	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	synReport = 0

	relX     = 0x00
	relY     = 0x01
	relWheel = 0x08

	uinputMaxNameSize = 80
	absCnt            = 64

	keyValUp   = 0
	keyValDown = 1
)

// uinputUserDev mirrors struct uinput_user_dev. The abs* arrays are never
// populated: this device only ever reports EV_KEY and EV_REL.
type uinputUserDev struct {
	Name                                 [uinputMaxNameSize]byte
	Bustype, Vendor, Product, Version    uint16
	FFEffectsMax                         uint32
	AbsMax, AbsMin, AbsFuzz, AbsFlat     [absCnt]int32
}

// rawInputEvent mirrors struct input_event on a 64-bit kernel, matching the
// layout internal/source reads from evdev.
type rawInputEvent struct {
	Sec, Usec  int64
	Type, Code uint16
	Value      int32
}

const rawInputEventSize = 24

func run(ctx context.Context, in <-chan inputevent.Wire) error {
	dev, err := openUinputDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case w, ok := <-in:
			if !ok {
				return nil
			}
			if err := dev.replay(w); err != nil {
				return err
			}
		}
	}
}

type uinputDevice struct {
	fd int
}

func openUinputDevice() (*uinputDevice, error) {
	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}
	d := &uinputDevice{fd: fd}

	if err := d.enableBit(uiSetEvBit, evKey); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.enableBit(uiSetEvBit, evRel); err != nil {
		d.Close()
		return nil, err
	}
	for _, code := range evKeyFromKeyCode {
		if err := d.enableBit(uiSetKeyBit, int(code)); err != nil {
			d.Close()
			return nil, err
		}
	}
	for _, code := range evKeyFromMouseButton {
		if err := d.enableBit(uiSetKeyBit, int(code)); err != nil {
			d.Close()
			return nil, err
		}
	}
	if err := d.enableBit(uiSetRelBit, relX); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.enableBit(uiSetRelBit, relY); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.enableBit(uiSetRelBit, relWheel); err != nil {
		d.Close()
		return nil, err
	}

	var desc uinputUserDev
	copy(desc.Name[:], "terong-relay virtual input")
	desc.Bustype = 0x03 // BUS_USB

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, desc); err != nil {
		d.Close()
		return nil, err
	}
	if _, err := unix.Write(d.fd, buf.Bytes()); err != nil {
		d.Close()
		return nil, fmt.Errorf("write uinput_user_dev: %w", err)
	}

	if err := unix.IoctlSetInt(d.fd, uiDevCreate, 0); err != nil {
		d.Close()
		return nil, fmt.Errorf("UI_DEV_CREATE: %w", err)
	}

	return d, nil
}

func (d *uinputDevice) enableBit(request uint, bit int) error {
	if err := unix.IoctlSetInt(d.fd, request, bit); err != nil {
		return fmt.Errorf("ioctl 0x%x(%d): %w", request, bit, err)
	}
	return nil
}

func (d *uinputDevice) Close() error {
	unix.IoctlSetInt(d.fd, uiDevDestroy, 0)
	return unix.Close(d.fd)
}

// replay converts a single wire event into raw evdev events and writes
// them, terminated by a SYN_REPORT.
func (d *uinputDevice) replay(w inputevent.Wire) error {
	switch w.Kind {
	case inputevent.KindMouseMove:
		if w.DX != 0 {
			if err := d.write(evRel, relX, int32(w.DX)); err != nil {
				return err
			}
		}
		if w.DY != 0 {
			if err := d.write(evRel, relY, int32(w.DY)); err != nil {
				return err
			}
		}
		return d.syn()

	case inputevent.KindMouseButtonDown, inputevent.KindMouseButtonUp:
		code, ok := evKeyFromMouseButton[w.Button]
		if !ok {
			return nil
		}
		val := keyValUp
		if w.Kind == inputevent.KindMouseButtonDown {
			val = keyValDown
		}
		if err := d.write(evKey, code, int32(val)); err != nil {
			return err
		}
		return d.syn()

	case inputevent.KindMouseScroll:
		// The original implementation never finished this conversion
		// (its Linux input sink panics with todo!() on MouseScroll);
		// replayed here as REL_WHEEL clicks, positive for ScrollUp.
		clicks := int32(w.Clicks)
		if w.Direction == inputevent.ScrollDown {
			clicks = -clicks
		}
		if err := d.write(evRel, relWheel, clicks); err != nil {
			return err
		}
		return d.syn()

	case inputevent.KindKeyDown, inputevent.KindKeyRepeat, inputevent.KindKeyUp:
		code, ok := evKeyFromKeyCode[w.Key]
		if !ok {
			return nil
		}
		val := keyValUp
		switch w.Kind {
		case inputevent.KindKeyDown:
			val = keyValDown
		case inputevent.KindKeyRepeat:
			val = 2
		}
		if err := d.write(evKey, code, int32(val)); err != nil {
			return err
		}
		return d.syn()

	default:
		return nil
	}
}

func (d *uinputDevice) write(typ, code uint16, value int32) error {
	ev := rawInputEvent{Type: typ, Code: code, Value: value}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, ev); err != nil {
		return err
	}
	_, err := unix.Write(d.fd, buf.Bytes())
	return err
}

func (d *uinputDevice) syn() error {
	return d.write(evSyn, synReport, 0)
}
