// Package wireformat implements the compact tagged binary encoding used for
// protocol message bodies: little-endian numeric fields, a one-byte variant
// tag assigned by declaration order. It has no knowledge of framing (the u16
// length prefix lives in internal/transport).
package wireformat

import (
	"encoding/binary"
	"fmt"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/protocol"
)

var ErrMalformed = fmt.Errorf("wireformat: malformed message body")

// EncodeClientMsg serializes a ClientMsg body.
func EncodeClientMsg(m protocol.ClientMsg) []byte {
	switch m.Kind {
	case protocol.ClientPing:
		return []byte{byte(protocol.ClientPing)}
	default:
		panic(fmt.Sprintf("wireformat: unknown ClientMsg kind %d", m.Kind))
	}
}

// DecodeClientMsg parses a ClientMsg body.
func DecodeClientMsg(b []byte) (protocol.ClientMsg, error) {
	if len(b) < 1 {
		return protocol.ClientMsg{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	switch protocol.ClientMsgKind(b[0]) {
	case protocol.ClientPing:
		return protocol.NewClientPing(), nil
	default:
		return protocol.ClientMsg{}, fmt.Errorf("%w: unknown client message tag %d", ErrMalformed, b[0])
	}
}

// EncodeServerMsg serializes a ServerMsg body.
func EncodeServerMsg(m protocol.ServerMsg) ([]byte, error) {
	switch m.Kind {
	case protocol.ServerPing:
		return []byte{byte(protocol.ServerPing)}, nil
	case protocol.ServerEvent:
		body, err := encodeWireEvent(m.Event)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(protocol.ServerEvent)}, body...), nil
	default:
		return nil, fmt.Errorf("wireformat: unknown ServerMsg kind %d", m.Kind)
	}
}

// DecodeServerMsg parses a ServerMsg body.
func DecodeServerMsg(b []byte) (protocol.ServerMsg, error) {
	if len(b) < 1 {
		return protocol.ServerMsg{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	switch protocol.ServerMsgKind(b[0]) {
	case protocol.ServerPing:
		return protocol.NewServerPing(), nil
	case protocol.ServerEvent:
		e, err := decodeWireEvent(b[1:])
		if err != nil {
			return protocol.ServerMsg{}, err
		}
		return protocol.NewServerEvent(e), nil
	default:
		return protocol.ServerMsg{}, fmt.Errorf("%w: unknown server message tag %d", ErrMalformed, b[0])
	}
}

// encodeWireEvent serializes a Wire input event: one tag byte followed by
// little-endian fields specific to the variant. MousePosition has no wire
// form and is a programmer error to reach this far (the controller must
// have already converted it to a MouseMove).
func encodeWireEvent(e inputevent.Wire) ([]byte, error) {
	switch e.Kind {
	case inputevent.KindMouseMove:
		buf := make([]byte, 1+2+2)
		buf[0] = byte(e.Kind)
		binary.LittleEndian.PutUint16(buf[1:3], uint16(e.DX))
		binary.LittleEndian.PutUint16(buf[3:5], uint16(e.DY))
		return buf, nil
	case inputevent.KindMouseButtonDown, inputevent.KindMouseButtonUp:
		return []byte{byte(e.Kind), byte(e.Button)}, nil
	case inputevent.KindMouseScroll:
		return []byte{byte(e.Kind), byte(e.Direction), e.Clicks}, nil
	case inputevent.KindKeyDown, inputevent.KindKeyRepeat, inputevent.KindKeyUp:
		buf := make([]byte, 1+2)
		buf[0] = byte(e.Kind)
		binary.LittleEndian.PutUint16(buf[1:3], uint16(e.Key))
		return buf, nil
	default:
		return nil, fmt.Errorf("wireformat: event kind %d has no wire representation", e.Kind)
	}
}

func decodeWireEvent(b []byte) (inputevent.Wire, error) {
	if len(b) < 1 {
		return inputevent.Wire{}, fmt.Errorf("%w: truncated event tag", ErrMalformed)
	}
	kind := inputevent.Kind(b[0])
	b = b[1:]
	switch kind {
	case inputevent.KindMouseMove:
		if len(b) < 4 {
			return inputevent.Wire{}, fmt.Errorf("%w: truncated MouseMove", ErrMalformed)
		}
		dx := int16(binary.LittleEndian.Uint16(b[0:2]))
		dy := int16(binary.LittleEndian.Uint16(b[2:4]))
		return inputevent.Wire{Kind: kind, DX: dx, DY: dy}, nil
	case inputevent.KindMouseButtonDown, inputevent.KindMouseButtonUp:
		if len(b) < 1 {
			return inputevent.Wire{}, fmt.Errorf("%w: truncated mouse button event", ErrMalformed)
		}
		return inputevent.Wire{Kind: kind, Button: inputevent.MouseButton(b[0])}, nil
	case inputevent.KindMouseScroll:
		if len(b) < 2 {
			return inputevent.Wire{}, fmt.Errorf("%w: truncated MouseScroll", ErrMalformed)
		}
		return inputevent.Wire{Kind: kind, Direction: inputevent.ScrollDirection(b[0]), Clicks: b[1]}, nil
	case inputevent.KindKeyDown, inputevent.KindKeyRepeat, inputevent.KindKeyUp:
		if len(b) < 2 {
			return inputevent.Wire{}, fmt.Errorf("%w: truncated key event", ErrMalformed)
		}
		return inputevent.Wire{Kind: kind, Key: inputevent.KeyCode(binary.LittleEndian.Uint16(b[0:2]))}, nil
	default:
		return inputevent.Wire{}, fmt.Errorf("%w: unknown event tag %d", ErrMalformed, kind)
	}
}
