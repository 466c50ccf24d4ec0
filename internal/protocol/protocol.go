// Package protocol defines the client/server message envelopes exchanged
// over the transport, independent of their binary encoding (see
// internal/wireformat).
package protocol

import "github.com/kafji/terong-relay/internal/inputevent"

// Ping is the symmetric heartbeat message sent by either peer. Receipt of
// any frame (not just Ping) resets the receiver's deadline; no pong is
// required.
type Ping struct{}

// ClientMsgKind discriminates ClientMsg's variants.
type ClientMsgKind uint8

const (
	ClientPing ClientMsgKind = iota
)

// ClientMsg is a client-to-server message. Clients never send events: the
// relay is one-directional, server to client.
type ClientMsg struct {
	Kind ClientMsgKind
	Ping Ping
}

// ServerMsgKind discriminates ServerMsg's variants.
type ServerMsgKind uint8

const (
	ServerEvent ServerMsgKind = iota
	ServerPing
)

// ServerMsg is a server-to-client message.
type ServerMsg struct {
	Kind  ServerMsgKind
	Event inputevent.Wire // valid when Kind == ServerEvent
	Ping  Ping
}

func NewClientPing() ClientMsg { return ClientMsg{Kind: ClientPing, Ping: Ping{}} }

func NewServerPing() ServerMsg { return ServerMsg{Kind: ServerPing, Ping: Ping{}} }

func NewServerEvent(e inputevent.Wire) ServerMsg { return ServerMsg{Kind: ServerEvent, Event: e} }
