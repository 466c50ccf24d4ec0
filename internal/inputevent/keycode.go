// Package inputevent defines the local and wire representations of
// keyboard/mouse activity shared by the input source, controller, and sink.
package inputevent

// KeyCode is a closed enumeration of keyboard keys. Values are stable across
// the wire protocol: do not reorder existing members, only append.
type KeyCode uint16

const (
	Escape KeyCode = iota

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	PrintScreen
	ScrollLock
	PauseBreak

	// Grave is the tilde/backtick key.
	Grave

	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	D9
	D0

	Minus
	Equal

	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	LeftBrace
	RightBrace

	SemiColon
	Apostrophe

	Comma
	Dot
	Slash

	Backspace
	BackSlash
	Enter

	Space

	Tab
	CapsLock

	LeftShift
	RightShift

	LeftCtrl
	RightCtrl

	LeftAlt
	RightAlt

	LeftMeta
	RightMeta

	Insert
	Delete

	Home
	End

	PageUp
	PageDown

	ArrowUp
	ArrowLeft
	ArrowDown
	ArrowRight

	keyCodeCount
)

// Valid reports whether k is a recognized member of the enumeration.
func (k KeyCode) Valid() bool { return k < keyCodeCount }

// MouseButton is a closed enumeration of mouse buttons.
type MouseButton uint8

const (
	Left MouseButton = iota
	Right
	Middle
	Mouse4
	Mouse5

	mouseButtonCount
)

// Valid reports whether b is a recognized member of the enumeration.
func (b MouseButton) Valid() bool { return b < mouseButtonCount }

// ScrollDirection is the direction of a mouse wheel movement.
type ScrollDirection uint8

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)
