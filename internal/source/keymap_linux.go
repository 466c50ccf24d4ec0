//go:build linux

package source

import "github.com/kafji/terong-relay/internal/inputevent"

// evdev key codes from linux/input-event-codes.h.
const (
	keyEsc        = 1
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
	keyBackspace  = 14
	keyTab        = 15
	keyQ          = 16
	keyW          = 17
	keyE          = 18
	keyR          = 19
	keyT          = 20
	keyY          = 21
	keyU          = 22
	keyI          = 23
	keyO          = 24
	keyP          = 25
	keyLeftBrace  = 26
	keyRightBrace = 27
	keyEnter      = 28
	keyLeftCtrl   = 29
	keyA          = 30
	keyS          = 31
	keyD          = 32
	keyF          = 33
	keyG          = 34
	keyH          = 35
	keyJ          = 36
	keyK          = 37
	keyL          = 38
	keySemicolon  = 39
	keyApostrophe = 40
	keyGrave      = 41
	keyLeftShift  = 42
	keyBackslash  = 43
	keyZ          = 44
	keyX          = 45
	keyC          = 46
	keyV          = 47
	keyB          = 48
	keyN          = 49
	keyM          = 50
	keyComma      = 51
	keyDot        = 52
	keySlash      = 53
	keyRightShift = 54
	keyLeftAlt    = 56
	keySpace      = 57
	keyCapsLock   = 58
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
	keyNumLock    = 69
	keyScrollLock = 70
	keyF11        = 87
	keyF12        = 88
	keyRightCtrl  = 97
	keySysrq      = 99
	keyRightAlt   = 100
	keyHome       = 102
	keyUp         = 103
	keyPageUp     = 104
	keyLeft       = 105
	keyRight      = 106
	keyEnd        = 107
	keyDown       = 108
	keyPageDown   = 109
	keyInsert     = 110
	keyDelete     = 111
	keyPause      = 119
	keyLeftMeta   = 125
	keyRightMeta  = 126

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
	btnSide   = 0x113
	btnExtra  = 0x114
)

// keyCodeFromEvKey mirrors the original's KeyCode::from_ev_key table
// (transport/protocol/input_event.rs, linux module).
var keyCodeFromEvKey = map[uint16]inputevent.KeyCode{
	keyEsc:        inputevent.Escape,
	keyF1:         inputevent.F1,
	keyF2:         inputevent.F2,
	keyF3:         inputevent.F3,
	keyF4:         inputevent.F4,
	keyF5:         inputevent.F5,
	keyF6:         inputevent.F6,
	keyF7:         inputevent.F7,
	keyF8:         inputevent.F8,
	keyF9:         inputevent.F9,
	keyF10:        inputevent.F10,
	keyF11:        inputevent.F11,
	keyF12:        inputevent.F12,
	keySysrq:      inputevent.PrintScreen,
	keyScrollLock: inputevent.ScrollLock,
	keyPause:      inputevent.PauseBreak,
	keyGrave:      inputevent.Grave,
	key1:          inputevent.D1,
	key2:          inputevent.D2,
	key3:          inputevent.D3,
	key4:          inputevent.D4,
	key5:          inputevent.D5,
	key6:          inputevent.D6,
	key7:          inputevent.D7,
	key8:          inputevent.D8,
	key9:          inputevent.D9,
	key0:          inputevent.D0,
	keyMinus:      inputevent.Minus,
	keyEqual:      inputevent.Equal,
	keyA:          inputevent.A,
	keyB:          inputevent.B,
	keyC:          inputevent.C,
	keyD:          inputevent.D,
	keyE:          inputevent.E,
	keyF:          inputevent.F,
	keyG:          inputevent.G,
	keyH:          inputevent.H,
	keyI:          inputevent.I,
	keyJ:          inputevent.J,
	keyK:          inputevent.K,
	keyL:          inputevent.L,
	keyM:          inputevent.M,
	keyN:          inputevent.N,
	keyO:          inputevent.O,
	keyP:          inputevent.P,
	keyQ:          inputevent.Q,
	keyR:          inputevent.R,
	keyS:          inputevent.S,
	keyT:          inputevent.T,
	keyU:          inputevent.U,
	keyV:          inputevent.V,
	keyW:          inputevent.W,
	keyX:          inputevent.X,
	keyY:          inputevent.Y,
	keyZ:          inputevent.Z,
	keyLeftBrace:  inputevent.LeftBrace,
	keyRightBrace: inputevent.RightBrace,
	keySemicolon:  inputevent.SemiColon,
	keyApostrophe: inputevent.Apostrophe,
	keyComma:      inputevent.Comma,
	keyDot:        inputevent.Dot,
	keySlash:      inputevent.Slash,
	keyBackspace:  inputevent.Backspace,
	keyBackslash:  inputevent.BackSlash,
	keyEnter:      inputevent.Enter,
	keySpace:      inputevent.Space,
	keyTab:        inputevent.Tab,
	keyCapsLock:   inputevent.CapsLock,
	keyLeftShift:  inputevent.LeftShift,
	keyRightShift: inputevent.RightShift,
	keyLeftCtrl:   inputevent.LeftCtrl,
	keyRightCtrl:  inputevent.RightCtrl,
	keyLeftAlt:    inputevent.LeftAlt,
	keyRightAlt:   inputevent.RightAlt,
	keyLeftMeta:   inputevent.LeftMeta,
	keyRightMeta:  inputevent.RightMeta,
	keyInsert:     inputevent.Insert,
	keyDelete:     inputevent.Delete,
	keyHome:       inputevent.Home,
	keyEnd:        inputevent.End,
	keyPageUp:     inputevent.PageUp,
	keyPageDown:   inputevent.PageDown,
	keyUp:         inputevent.ArrowUp,
	keyLeft:       inputevent.ArrowLeft,
	keyDown:       inputevent.ArrowDown,
	keyRight:      inputevent.ArrowRight,
}

var mouseButtonFromEvKey = map[uint16]inputevent.MouseButton{
	btnLeft:   inputevent.Left,
	btnRight:  inputevent.Right,
	btnMiddle: inputevent.Middle,
	btnSide:   inputevent.Mouse4,
	btnExtra:  inputevent.Mouse5,
}

