package transport

import (
	"fmt"
	"time"

	"github.com/kafji/terong-relay/internal/relayerr"
)

// DefaultTimeout is the recv_deadline window: if no frame (of any kind) is
// read within this long, the peer is considered dead.
const DefaultTimeout = 20 * time.Second

// SendInterval derives the send_deadline period from timeout: half the recv
// window, so a dropped Ping has a second chance to arrive before the peer's
// recv_deadline fires.
func SendInterval(timeout time.Duration) time.Duration {
	return timeout / 2
}

// Deadliner is satisfied by net.Conn (and anything else exposing
// SetReadDeadline), kept narrow so tests can fake it.
type Deadliner interface {
	SetReadDeadline(t time.Time) error
}

// ArmReadDeadline sets the connection's read deadline timeout from now. Call
// it once after the connection is established and again every time a frame
// is read, including Ping and no-op frames: receipt of any frame resets the
// recv_deadline, there is no separate pong/counter handshake.
func ArmReadDeadline(d Deadliner, timeout time.Duration) error {
	if err := d.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("%w: %v", relayerr.ErrDeadline, err)
	}
	return nil
}
