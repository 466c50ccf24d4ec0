//go:build linux

package sink

import "github.com/kafji/terong-relay/internal/inputevent"

// evdev key/button codes, from linux/input-event-codes.h. This is the
// sink's own copy of the reverse KeyCode/MouseButton -> evdev-code table;
// the source package keeps an independent forward table rather than
// sharing one across packages, matching how the original implementation
// also declares the consumer-side reverse table separately from the
// source-side forward one.
const (
	keyEsc        = 1
	keyF1         = 59
	keyF2         = 60
	keyF3         = 61
	keyF4         = 62
	keyF5         = 63
	keyF6         = 64
	keyF7         = 65
	keyF8         = 66
	keyF9         = 67
	keyF10        = 68
	keyF11        = 87
	keyF12        = 88
	keySysrq      = 99
	keyScrollLock = 70
	keyPause      = 119
	keyGrave      = 41
	key1          = 2
	key2          = 3
	key3          = 4
	key4          = 5
	key5          = 6
	key6          = 7
	key7          = 8
	key8          = 9
	key9          = 10
	key0          = 11
	keyMinus      = 12
	keyEqual      = 13
	keyA          = 30
	keyB          = 48
	keyC          = 46
	keyD          = 32
	keyE          = 18
	keyF          = 33
	keyG          = 34
	keyH          = 35
	keyI          = 23
	keyJ          = 36
	keyK          = 37
	keyL          = 38
	keyM          = 50
	keyN          = 49
	keyO          = 24
	keyP          = 25
	keyQ          = 16
	keyR          = 19
	keyS          = 31
	keyT          = 20
	keyU          = 22
	keyV          = 47
	keyW          = 17
	keyX          = 45
	keyY          = 21
	keyZ          = 44
	keyLeftBrace  = 26
	keyRightBrace = 27
	keySemicolon  = 39
	keyApostrophe = 40
	keyComma      = 51
	keyDot        = 52
	keySlash      = 53
	keyBackspace  = 14
	keyBackslash  = 43
	keyEnter      = 28
	keySpace      = 57
	keyTab        = 15
	keyCapsLock   = 58
	keyLeftShift  = 42
	keyRightShift = 54
	keyLeftCtrl   = 29
	keyRightCtrl  = 97
	keyLeftAlt    = 56
	keyRightAlt   = 100
	keyLeftMeta   = 125
	keyRightMeta  = 126
	keyInsert     = 110
	keyDelete     = 111
	keyHome       = 102
	keyEnd        = 107
	keyPageUp     = 104
	keyPageDown   = 109
	keyUp         = 103
	keyLeft       = 105
	keyDown       = 108
	keyRight      = 106

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
	btnSide   = 0x113
	btnExtra  = 0x114
)

var evKeyFromKeyCode = map[inputevent.KeyCode]uint16{
	inputevent.Escape:      keyEsc,
	inputevent.F1:          keyF1,
	inputevent.F2:          keyF2,
	inputevent.F3:          keyF3,
	inputevent.F4:          keyF4,
	inputevent.F5:          keyF5,
	inputevent.F6:          keyF6,
	inputevent.F7:          keyF7,
	inputevent.F8:          keyF8,
	inputevent.F9:          keyF9,
	inputevent.F10:         keyF10,
	inputevent.F11:         keyF11,
	inputevent.F12:         keyF12,
	inputevent.PrintScreen: keySysrq,
	inputevent.ScrollLock:  keyScrollLock,
	inputevent.PauseBreak:  keyPause,
	inputevent.Grave:       keyGrave,
	inputevent.D1:          key1,
	inputevent.D2:          key2,
	inputevent.D3:          key3,
	inputevent.D4:          key4,
	inputevent.D5:          key5,
	inputevent.D6:          key6,
	inputevent.D7:          key7,
	inputevent.D8:          key8,
	inputevent.D9:          key9,
	inputevent.D0:          key0,
	inputevent.Minus:       keyMinus,
	inputevent.Equal:       keyEqual,
	inputevent.A:           keyA,
	inputevent.B:           keyB,
	inputevent.C:           keyC,
	inputevent.D:           keyD,
	inputevent.E:           keyE,
	inputevent.F:           keyF,
	inputevent.G:           keyG,
	inputevent.H:           keyH,
	inputevent.I:           keyI,
	inputevent.J:           keyJ,
	inputevent.K:           keyK,
	inputevent.L:           keyL,
	inputevent.M:           keyM,
	inputevent.N:           keyN,
	inputevent.O:           keyO,
	inputevent.P:           keyP,
	inputevent.Q:           keyQ,
	inputevent.R:           keyR,
	inputevent.S:           keyS,
	inputevent.T:           keyT,
	inputevent.U:           keyU,
	inputevent.V:           keyV,
	inputevent.W:           keyW,
	inputevent.X:           keyX,
	inputevent.Y:           keyY,
	inputevent.Z:           keyZ,
	inputevent.LeftBrace:   keyLeftBrace,
	inputevent.RightBrace:  keyRightBrace,
	inputevent.SemiColon:   keySemicolon,
	inputevent.Apostrophe:  keyApostrophe,
	inputevent.Comma:       keyComma,
	inputevent.Dot:         keyDot,
	inputevent.Slash:       keySlash,
	inputevent.Backspace:   keyBackspace,
	inputevent.BackSlash:   keyBackslash,
	inputevent.Enter:       keyEnter,
	inputevent.Space:       keySpace,
	inputevent.Tab:         keyTab,
	inputevent.CapsLock:    keyCapsLock,
	inputevent.LeftShift:   keyLeftShift,
	inputevent.RightShift:  keyRightShift,
	// The original implementation's consumer-side reverse table maps
	// LeftCtrl to KEY_LEFTALT, inconsistent with its own correct
	// RightCtrl -> KEY_RIGHTCTRL entry a few lines below it; treated here
	// as a copy-paste bug in the original and corrected to KEY_LEFTCTRL.
	inputevent.LeftCtrl:  keyLeftCtrl,
	inputevent.RightCtrl: keyRightCtrl,
	inputevent.LeftAlt:   keyLeftAlt,
	inputevent.RightAlt:  keyRightAlt,
	inputevent.LeftMeta:  keyLeftMeta,
	inputevent.RightMeta: keyRightMeta,
	inputevent.Insert:    keyInsert,
	inputevent.Delete:    keyDelete,
	inputevent.Home:      keyHome,
	inputevent.End:       keyEnd,
	inputevent.PageUp:    keyPageUp,
	inputevent.PageDown:  keyPageDown,
	inputevent.ArrowUp:   keyUp,
	inputevent.ArrowLeft: keyLeft,
	inputevent.ArrowDown: keyDown,
	inputevent.ArrowRight: keyRight,
}

var evKeyFromMouseButton = map[inputevent.MouseButton]uint16{
	inputevent.Left:   btnLeft,
	inputevent.Right:  btnRight,
	inputevent.Middle: btnMiddle,
	inputevent.Mouse4: btnSide,
	inputevent.Mouse5: btnExtra,
}
