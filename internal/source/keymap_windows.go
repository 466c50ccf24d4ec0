//go:build windows

package source

import "github.com/kafji/terong-relay/internal/inputevent"

// Windows virtual-key codes, from winuser.h, matching the original's
// KeyCode <-> VirtualKey table (transport/protocol/input_event.rs, windows
// module).
const (
	vkEscape    = 0x1B
	vkF1        = 0x70
	vkF2        = 0x71
	vkF3        = 0x72
	vkF4        = 0x73
	vkF5        = 0x74
	vkF6        = 0x75
	vkF7        = 0x76
	vkF8        = 0x77
	vkF9        = 0x78
	vkF10       = 0x79
	vkF11       = 0x7A
	vkF12       = 0x7B
	vkSnapshot  = 0x2C
	vkScroll    = 0x91
	vkPause     = 0x13
	vkOem3      = 0xC0
	vkOemMinus  = 0xBD
	vkOemPlus   = 0xBB
	vkOem4      = 0xDB
	vkOem6      = 0xDD
	vkOem1      = 0xBA
	vkOem7      = 0xDE
	vkOemComma  = 0xBC
	vkOemPeriod = 0xBE
	vkOem2      = 0xBF
	vkBack      = 0x08
	vkOem5      = 0xDC
	vkReturn    = 0x0D
	vkSpace     = 0x20
	vkTab       = 0x09
	vkCapital   = 0x14
	vkLShift    = 0xA0
	vkRShift    = 0xA1
	vkLControl  = 0xA2
	vkRControl  = 0xA3
	vkLMenu     = 0xA4
	vkRMenu     = 0xA5
	vkLWin      = 0x5B
	vkRWin      = 0x5C
	vkInsert    = 0x2D
	vkDelete    = 0x2E
	vkHome      = 0x24
	vkEnd       = 0x23
	vkPrior     = 0x21
	vkNext      = 0x22
	vkUp        = 0x26
	vkLeft      = 0x25
	vkDown      = 0x28
	vkRight     = 0x27

	vkLButton = 0x01
	vkRButton = 0x02
	vkMButton = 0x04
	vkXButton1 = 0x05
	vkXButton2 = 0x06
)

var keyCodeFromVK = map[uint16]inputevent.KeyCode{
	vkEscape:    inputevent.Escape,
	vkF1:        inputevent.F1,
	vkF2:        inputevent.F2,
	vkF3:        inputevent.F3,
	vkF4:        inputevent.F4,
	vkF5:        inputevent.F5,
	vkF6:        inputevent.F6,
	vkF7:        inputevent.F7,
	vkF8:        inputevent.F8,
	vkF9:        inputevent.F9,
	vkF10:       inputevent.F10,
	vkF11:       inputevent.F11,
	vkF12:       inputevent.F12,
	vkSnapshot:  inputevent.PrintScreen,
	vkScroll:    inputevent.ScrollLock,
	vkPause:     inputevent.PauseBreak,
	vkOem3:      inputevent.Grave,
	0x31:        inputevent.D1,
	0x32:        inputevent.D2,
	0x33:        inputevent.D3,
	0x34:        inputevent.D4,
	0x35:        inputevent.D5,
	0x36:        inputevent.D6,
	0x37:        inputevent.D7,
	0x38:        inputevent.D8,
	0x39:        inputevent.D9,
	0x30:        inputevent.D0,
	vkOemMinus:  inputevent.Minus,
	vkOemPlus:   inputevent.Equal,
	0x41:        inputevent.A,
	0x42:        inputevent.B,
	0x43:        inputevent.C,
	0x44:        inputevent.D,
	0x45:        inputevent.E,
	0x46:        inputevent.F,
	0x47:        inputevent.G,
	0x48:        inputevent.H,
	0x49:        inputevent.I,
	0x4A:        inputevent.J,
	0x4B:        inputevent.K,
	0x4C:        inputevent.L,
	0x4D:        inputevent.M,
	0x4E:        inputevent.N,
	0x4F:        inputevent.O,
	0x50:        inputevent.P,
	0x51:        inputevent.Q,
	0x52:        inputevent.R,
	0x53:        inputevent.S,
	0x54:        inputevent.T,
	0x55:        inputevent.U,
	0x56:        inputevent.V,
	0x57:        inputevent.W,
	0x58:        inputevent.X,
	0x59:        inputevent.Y,
	0x5A:        inputevent.Z,
	vkOem4:      inputevent.LeftBrace,
	vkOem6:      inputevent.RightBrace,
	vkOem1:      inputevent.SemiColon,
	vkOem7:      inputevent.Apostrophe,
	vkOemComma:  inputevent.Comma,
	vkOemPeriod: inputevent.Dot,
	vkOem2:      inputevent.Slash,
	vkBack:      inputevent.Backspace,
	vkOem5:      inputevent.BackSlash,
	vkReturn:    inputevent.Enter,
	vkSpace:     inputevent.Space,
	vkTab:       inputevent.Tab,
	vkCapital:   inputevent.CapsLock,
	vkLShift:    inputevent.LeftShift,
	vkRShift:    inputevent.RightShift,
	vkLControl:  inputevent.LeftCtrl,
	vkRControl:  inputevent.RightCtrl,
	vkLMenu:     inputevent.LeftAlt,
	vkRMenu:     inputevent.RightAlt,
	vkLWin:      inputevent.LeftMeta,
	vkRWin:      inputevent.RightMeta,
	vkInsert:    inputevent.Insert,
	vkDelete:    inputevent.Delete,
	vkHome:      inputevent.Home,
	vkEnd:       inputevent.End,
	vkPrior:     inputevent.PageUp,
	vkNext:      inputevent.PageDown,
	vkUp:        inputevent.ArrowUp,
	vkLeft:      inputevent.ArrowLeft,
	vkDown:      inputevent.ArrowDown,
	vkRight:     inputevent.ArrowRight,
}

var vkFromKeyCode map[inputevent.KeyCode]uint16

func init() {
	vkFromKeyCode = make(map[inputevent.KeyCode]uint16, len(keyCodeFromVK))
	for vk, kc := range keyCodeFromVK {
		vkFromKeyCode[kc] = vk
	}
}
