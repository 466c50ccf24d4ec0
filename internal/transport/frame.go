// Package transport implements the length-prefixed framing shared by the
// server and client sessions, plus the dual-deadline heartbeat timing that
// rides on top of it. It has no knowledge of message contents: callers
// supply already-encoded bodies (see internal/wireformat) and receive raw
// bodies back.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kafji/terong-relay/internal/relayerr"
)

// maxFrameLen is the largest body a u16 length prefix can address.
const maxFrameLen = 1<<16 - 1

// WriteFrame writes a single frame: a big-endian u16 length prefix followed
// by body. It is not cancel-safe: once started, the write must run to
// completion, since a partial frame on the wire desynchronizes the peer's
// reader permanently.
func WriteFrame(w io.Writer, body []byte) error {
	if len(body) > maxFrameLen {
		return fmt.Errorf("%w: frame body too large (%d bytes)", relayerr.ErrConnWrite, len(body))
	}
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(len(body)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: %v", relayerr.ErrConnWrite, err)
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("%w: %v", relayerr.ErrConnWrite, err)
	}
	return nil
}

// ReadFrame reads a single frame and returns its body. A zero-length frame
// is a legal no-op: it is returned as a nil slice with no error, and the
// caller is responsible for deciding whether to skip it or not (ReadFrame
// itself never loops past one). Reading one frame at a time, rather than
// buffering ahead, is what makes the read side resumable: the caller can
// reset a read deadline between calls and nothing is lost if the deadline
// fires before the header of the next frame arrives.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", relayerr.ErrConnRead, err)
	}
	n := binary.BigEndian.Uint16(hdr[:])
	if n == 0 {
		return nil, nil
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %w", relayerr.ErrConnRead, err)
	}
	return body, nil
}

// ReadNonEmptyFrame reads frames until it finds one with a non-empty body,
// skipping legal no-op frames along the way. onFrame, if non-nil, is invoked for
// every frame read (including skipped ones) so the caller can reset its
// heartbeat deadline on every frame, not just the one it ultimately uses.
func ReadNonEmptyFrame(r io.Reader, onFrame func()) ([]byte, error) {
	for {
		body, err := ReadFrame(r)
		if err != nil {
			return nil, err
		}
		if onFrame != nil {
			onFrame()
		}
		if len(body) > 0 {
			return body, nil
		}
	}
}
