package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/protocol"
	"github.com/kafji/terong-relay/internal/relayerr"
	"github.com/kafji/terong-relay/internal/transport"
	"github.com/kafji/terong-relay/internal/wireformat"
)

type frameResult struct {
	body []byte
	err  error
}

// runSession drives one connection's receive loop: send ClientPing on its
// own interval, forward received events to the sink, and terminate the
// session once recv_deadline passes with nothing received. It owns conn and
// closes it on return.
func (c *Client) runSession(ctx context.Context, conn net.Conn) error {
	defer conn.Close()

	sendInterval := transport.SendInterval(c.heartbeatTimeout)

	frames := make(chan frameResult, 1)
	go func() {
		for {
			if err := transport.ArmReadDeadline(conn, c.heartbeatTimeout); err != nil {
				frames <- frameResult{err: err}
				return
			}
			body, err := transport.ReadNonEmptyFrame(conn, func() {
				_ = transport.ArmReadDeadline(conn, c.heartbeatTimeout)
			})
			select {
			case frames <- frameResult{body: body, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	sendTimer := time.NewTimer(sendInterval)
	defer sendTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-sendTimer.C:
			if err := sendMsg(conn, protocol.NewClientPing()); err != nil {
				return err
			}
			sendTimer.Reset(sendInterval)

		case fr := <-frames:
			if fr.err != nil {
				if isTimeout(fr.err) {
					metrics.IncHeartbeatTimeouts()
					return fmt.Errorf("%w: no frame received within %s", relayerr.ErrDeadline, c.heartbeatTimeout)
				}
				metrics.IncError(metrics.ErrFrameRead)
				return fmt.Errorf("%w: %v", relayerr.ErrConnRead, fr.err)
			}
			msg, err := wireformat.DecodeServerMsg(fr.body)
			if err != nil {
				metrics.IncError(metrics.ErrDecode)
				return fmt.Errorf("%w: %v", relayerr.ErrDecode, err)
			}
			switch msg.Kind {
			case protocol.ServerPing:
				// receipt alone already reset the deadline.
			case protocol.ServerEvent:
				metrics.IncEventsReplayed()
				c.deliver(ctx, msg.Event)
			default:
				return fmt.Errorf("%w: unexpected server message kind %d", relayerr.ErrDecode, msg.Kind)
			}
		}
	}
}

// deliver hands an event to the input sink, blocking until the sink takes
// it and giving up only if ctx ends first.
func (c *Client) deliver(ctx context.Context, w inputevent.Wire) {
	select {
	case c.sink <- w:
	case <-ctx.Done():
	}
}

func sendMsg(conn net.Conn, m protocol.ClientMsg) error {
	body := wireformat.EncodeClientMsg(m)
	return transport.WriteFrame(conn, body)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
