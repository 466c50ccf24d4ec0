package wireformat

import (
	"testing"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/protocol"
)

func TestRoundTripClientPing(t *testing.T) {
	b := EncodeClientMsg(protocol.NewClientPing())
	got, err := DecodeClientMsg(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != protocol.ClientPing {
		t.Fatalf("expected ClientPing, got %+v", got)
	}
}

func TestRoundTripServerPing(t *testing.T) {
	b, err := EncodeServerMsg(protocol.NewServerPing())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeServerMsg(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != protocol.ServerPing {
		t.Fatalf("expected ServerPing, got %+v", got)
	}
}

func TestRoundTripServerEventVariants(t *testing.T) {
	events := []inputevent.Wire{
		{Kind: inputevent.KindMouseMove, DX: -1234, DY: 5678},
		{Kind: inputevent.KindMouseButtonDown, Button: inputevent.Left},
		{Kind: inputevent.KindMouseButtonUp, Button: inputevent.Mouse5},
		{Kind: inputevent.KindMouseScroll, Direction: inputevent.ScrollUp, Clicks: 3},
		{Kind: inputevent.KindKeyDown, Key: inputevent.RightCtrl},
		{Kind: inputevent.KindKeyRepeat, Key: inputevent.A},
		{Kind: inputevent.KindKeyUp, Key: inputevent.ArrowRight},
	}

	for _, e := range events {
		msg := protocol.NewServerEvent(e)
		b, err := EncodeServerMsg(msg)
		if err != nil {
			t.Fatalf("encode %+v: %v", e, err)
		}
		got, err := DecodeServerMsg(b)
		if err != nil {
			t.Fatalf("decode %+v: %v", e, err)
		}
		if got.Kind != protocol.ServerEvent || got.Event != e {
			t.Fatalf("round trip mismatch: sent %+v, got %+v", e, got.Event)
		}
	}
}

func TestEncodeMouseMoveNegativeDeltaSignPreserved(t *testing.T) {
	e := inputevent.Wire{Kind: inputevent.KindMouseMove, DX: -32768, DY: 32767}
	b, err := EncodeServerMsg(protocol.NewServerEvent(e))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeServerMsg(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Event.DX != -32768 || got.Event.DY != 32767 {
		t.Fatalf("expected sign-preserving round trip, got %+v", got.Event)
	}
}

func TestDecodeServerMsgRejectsEmptyBody(t *testing.T) {
	if _, err := DecodeServerMsg(nil); err == nil {
		t.Fatal("expected error decoding empty body")
	}
}

func TestDecodeServerMsgRejectsUnknownTag(t *testing.T) {
	if _, err := DecodeServerMsg([]byte{0xff}); err == nil {
		t.Fatal("expected error decoding unknown tag")
	}
}

func TestDecodeServerEventRejectsTruncatedBody(t *testing.T) {
	// MouseMove tag with only one byte of payload instead of four.
	b := []byte{byte(protocol.ServerEvent), byte(inputevent.KindMouseMove), 0x01}
	if _, err := DecodeServerMsg(b); err == nil {
		t.Fatal("expected error decoding truncated MouseMove body")
	}
}

func TestDecodeClientMsgRejectsUnknownTag(t *testing.T) {
	if _, err := DecodeClientMsg([]byte{0xff}); err == nil {
		t.Fatal("expected error decoding unknown client tag")
	}
}
