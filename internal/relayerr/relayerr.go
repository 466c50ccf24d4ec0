// Package relayerr holds the sentinel errors shared across the relay's
// transport and session packages, wrapped with fmt.Errorf("%w: ...") at the
// call site so callers can classify failures with errors.Is.
package relayerr

import "errors"

var (
	ErrListen        = errors.New("listen")
	ErrAccept        = errors.New("accept")
	ErrHandshake     = errors.New("handshake")
	ErrConnRead      = errors.New("conn_read")
	ErrConnWrite     = errors.New("conn_write")
	ErrEncode        = errors.New("encode")
	ErrDecode        = errors.New("decode")
	ErrDeadline      = errors.New("deadline_exceeded")
	ErrChannelClosed = errors.New("channel_closed")
	ErrNoSession     = errors.New("no_active_session")
	ErrGivingUp      = errors.New("giving_up")
)
