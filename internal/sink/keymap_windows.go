//go:build windows

package sink

import "github.com/kafji/terong-relay/internal/inputevent"

// Windows virtual-key codes. This is the sink's own copy of the reverse
// KeyCode -> VK table (internal/source keeps the forward table
// independently, matching the original's separate source/sink tables).
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
)

var vkFromKeyCode = map[inputevent.KeyCode]uint16{
	inputevent.Escape:     vkEscape,
	inputevent.F1:         vkF1,
	inputevent.F2:         vkF2,
	inputevent.F3:         vkF3,
	inputevent.F4:         vkF4,
	inputevent.F5:         vkF5,
	inputevent.F6:         vkF6,
	inputevent.F7:         vkF7,
	inputevent.F8:         vkF8,
	inputevent.F9:         vkF9,
	inputevent.F10:        vkF10,
	inputevent.F11:        vkF11,
	inputevent.F12:        vkF12,
	inputevent.PrintScreen: vkSnapshot,
	inputevent.ScrollLock: vkScroll,
	inputevent.PauseBreak: vkPause,
	inputevent.Grave:      vkOem3,
	inputevent.D1:         0x31,
	inputevent.D2:         0x32,
	inputevent.D3:         0x33,
	inputevent.D4:         0x34,
	inputevent.D5:         0x35,
	inputevent.D6:         0x36,
	inputevent.D7:         0x37,
	inputevent.D8:         0x38,
	inputevent.D9:         0x39,
	inputevent.D0:         0x30,
	inputevent.Minus:      vkOemMinus,
	inputevent.Equal:      vkOemPlus,
	inputevent.A:          0x41,
	inputevent.B:          0x42,
	inputevent.C:          0x43,
	inputevent.D:          0x44,
	inputevent.E:          0x45,
	inputevent.F:          0x46,
	inputevent.G:          0x47,
	inputevent.H:          0x48,
	inputevent.I:          0x49,
	inputevent.J:          0x4A,
	inputevent.K:          0x4B,
	inputevent.L:          0x4C,
	inputevent.M:          0x4D,
	inputevent.N:          0x4E,
	inputevent.O:          0x4F,
	inputevent.P:          0x50,
	inputevent.Q:          0x51,
	inputevent.R:          0x52,
	inputevent.S:          0x53,
	inputevent.T:          0x54,
	inputevent.U:          0x55,
	inputevent.V:          0x56,
	inputevent.W:          0x57,
	inputevent.X:          0x58,
	inputevent.Y:          0x59,
	inputevent.Z:          0x5A,
	inputevent.LeftBrace:  vkOem4,
	inputevent.RightBrace: vkOem6,
	inputevent.SemiColon:  vkOem1,
	inputevent.Apostrophe: vkOem7,
	inputevent.Comma:      vkOemComma,
	inputevent.Dot:        vkOemPeriod,
	inputevent.Slash:      vkOem2,
	inputevent.Backspace:  vkBack,
	inputevent.BackSlash:  vkOem5,
	inputevent.Enter:      vkReturn,
	inputevent.Space:      vkSpace,
	inputevent.Tab:        vkTab,
	inputevent.CapsLock:   vkCapital,
	inputevent.LeftShift:  vkLShift,
	inputevent.RightShift: vkRShift,
	inputevent.LeftCtrl:   vkLControl,
	inputevent.RightCtrl:  vkRControl,
	inputevent.LeftAlt:    vkLMenu,
	inputevent.RightAlt:   vkRMenu,
	inputevent.LeftMeta:   vkLWin,
	inputevent.RightMeta:  vkRWin,
	inputevent.Insert:     vkInsert,
	inputevent.Delete:     vkDelete,
	inputevent.Home:       vkHome,
	inputevent.End:        vkEnd,
	inputevent.PageUp:     vkPrior,
	inputevent.PageDown:   vkNext,
	inputevent.ArrowUp:    vkUp,
	inputevent.ArrowLeft:  vkLeft,
	inputevent.ArrowDown:  vkDown,
	inputevent.ArrowRight: vkRight,
}
