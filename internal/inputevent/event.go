package inputevent

// MousePosition is an absolute on-screen cursor location, observed only on
// the server. It never crosses the wire; Local.MoveFrom converts it to a
// relative MouseMove against the previously observed position.
type MousePosition struct {
	X, Y int32
}

// DeltaTo returns the relative motion (dx, dy) from p to other.
func (p MousePosition) DeltaTo(other MousePosition) (dx, dy int32) {
	return other.X - p.X, other.Y - p.Y
}

// Kind discriminates the tagged-union variants of Local and Wire.
type Kind uint8

const (
	KindMousePosition Kind = iota
	KindMouseMove
	KindMouseButtonDown
	KindMouseButtonUp
	KindMouseScroll
	KindKeyDown
	KindKeyRepeat
	KindKeyUp
)

// Local is a server-internal input event. MousePosition carries an absolute
// cursor location and has no wire representation; everything else converts
// directly to Wire.
type Local struct {
	Kind Kind

	Position MousePosition // valid when Kind == KindMousePosition

	Button MouseButton // valid for MouseButtonDown/Up

	Direction ScrollDirection // valid for MouseScroll
	Clicks    uint8           // valid for MouseScroll

	Key KeyCode // valid for KeyDown/KeyRepeat/KeyUp
}

// Wire is the on-wire representation of an input event. It never carries an
// absolute position, only relative motion.
type Wire struct {
	Kind Kind

	DX, DY int16 // valid when Kind == KindMouseMove

	Button MouseButton // valid for MouseButtonDown/Up

	Direction ScrollDirection // valid for MouseScroll
	Clicks    uint8           // valid for MouseScroll

	Key KeyCode // valid for KeyDown/KeyRepeat/KeyUp
}

func MouseDown(b MouseButton) Local  { return Local{Kind: KindMouseButtonDown, Button: b} }
func MouseUp(b MouseButton) Local    { return Local{Kind: KindMouseButtonUp, Button: b} }
func KeyDown(k KeyCode) Local        { return Local{Kind: KindKeyDown, Key: k} }
func KeyRepeat(k KeyCode) Local      { return Local{Kind: KindKeyRepeat, Key: k} }
func KeyUp(k KeyCode) Local          { return Local{Kind: KindKeyUp, Key: k} }
func Position(x, y int32) Local      { return Local{Kind: KindMousePosition, Position: MousePosition{X: x, Y: y}} }
func Scroll(d ScrollDirection, clicks uint8) Local {
	return Local{Kind: KindMouseScroll, Direction: d, Clicks: clicks}
}

// ToWire converts a local event to its wire representation. The second
// return value is false for events that have no wire form (currently only
// MousePosition, which the caller must convert via MoveFrom using the
// previously observed position).
func (l Local) ToWire() (Wire, bool) {
	switch l.Kind {
	case KindMousePosition:
		return Wire{}, false
	case KindMouseButtonDown:
		return Wire{Kind: KindMouseButtonDown, Button: l.Button}, true
	case KindMouseButtonUp:
		return Wire{Kind: KindMouseButtonUp, Button: l.Button}, true
	case KindMouseScroll:
		return Wire{Kind: KindMouseScroll, Direction: l.Direction, Clicks: l.Clicks}, true
	case KindKeyDown:
		return Wire{Kind: KindKeyDown, Key: l.Key}, true
	case KindKeyRepeat:
		return Wire{Kind: KindKeyRepeat, Key: l.Key}, true
	case KindKeyUp:
		return Wire{Kind: KindKeyUp, Key: l.Key}, true
	default:
		return Wire{}, false
	}
}

// MoveFrom builds the wire MouseMove delta between prev and the receiver's
// absolute position. Both arguments must be KindMousePosition events.
func (l Local) MoveFrom(prev MousePosition) Wire {
	dx, dy := prev.DeltaTo(l.Position)
	return Wire{Kind: KindMouseMove, DX: clampI16(dx), DY: clampI16(dy)}
}

func clampI16(v int32) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

// IsKeyEvent reports whether l is a KeyDown, KeyRepeat, or KeyUp event.
func (l Local) IsKeyEvent() bool {
	return l.Kind == KindKeyDown || l.Kind == KindKeyRepeat || l.Kind == KindKeyUp
}
