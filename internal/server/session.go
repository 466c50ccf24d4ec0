package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/protocol"
	"github.com/kafji/terong-relay/internal/relayerr"
	"github.com/kafji/terong-relay/internal/transport"
	"github.com/kafji/terong-relay/internal/wireformat"
)

// session is one TLS connection's state machine: it alternates between
// Idle (selecting over the send timer, received frames, and the
// server-wide event hand-off) and RelayingEvent (encode and send, then
// return to Idle).
type session struct {
	conn             net.Conn
	heartbeatTimeout time.Duration
	sendInterval     time.Duration
	logger           *slog.Logger

	sendCh chan inputevent.Wire // capacity 1; server.forwardEvents writes here
	done   chan struct{}
}

func newSession(conn net.Conn, heartbeatTimeout time.Duration, logger *slog.Logger) *session {
	return &session{
		conn:             conn,
		heartbeatTimeout: heartbeatTimeout,
		sendInterval:     transport.SendInterval(heartbeatTimeout),
		logger:           logger,
		sendCh:           make(chan inputevent.Wire, 1),
		done:             make(chan struct{}),
	}
}

// enqueue hands an event to the session for forwarding. It never blocks
// past the session's own lifetime: once the session has terminated, the
// event is dropped, matching the "no backpressure on the input source"
// rule for a session that no longer exists.
func (s *session) enqueue(w inputevent.Wire) {
	select {
	case s.sendCh <- w:
	case <-s.done:
	}
}

type frameResult struct {
	body []byte
	err  error
}

// run drives the session loop until a fatal condition (deadline miss, I/O
// error, decode error, unexpected message variant, or context
// cancellation) ends it. It owns conn and closes it on return.
func (s *session) run(ctx context.Context) error {
	defer close(s.done)
	defer s.conn.Close()

	frames := make(chan frameResult, 1)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if err := transport.ArmReadDeadline(s.conn, s.heartbeatTimeout); err != nil {
				frames <- frameResult{err: err}
				return
			}
			body, err := transport.ReadNonEmptyFrame(s.conn, func() {
				_ = transport.ArmReadDeadline(s.conn, s.heartbeatTimeout)
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

	sendTimer := time.NewTimer(s.sendInterval)
	defer sendTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-sendTimer.C:
			if err := s.sendMsg(protocol.NewServerPing()); err != nil {
				return err
			}
			sendTimer.Reset(s.sendInterval)

		case fr := <-frames:
			if fr.err != nil {
				if isTimeout(fr.err) {
					metrics.IncHeartbeatTimeouts()
					return fmt.Errorf("%w: no frame received within %s", relayerr.ErrDeadline, s.heartbeatTimeout)
				}
				metrics.IncError(metrics.ErrFrameRead)
				return fmt.Errorf("%w: %v", relayerr.ErrConnRead, fr.err)
			}
			msg, err := wireformat.DecodeClientMsg(fr.body)
			if err != nil {
				metrics.IncError(metrics.ErrDecode)
				return fmt.Errorf("%w: %v", relayerr.ErrDecode, err)
			}
			switch msg.Kind {
			case protocol.ClientPing:
				// receipt alone already reset the deadline; nothing else to do.
			default:
				return fmt.Errorf("%w: unexpected client message kind %d", relayerr.ErrDecode, msg.Kind)
			}

		case w := <-s.sendCh:
			if err := s.sendMsg(protocol.NewServerEvent(w)); err != nil {
				return err
			}
			if !sendTimer.Stop() {
				<-sendTimer.C
			}
			sendTimer.Reset(s.sendInterval)
		}
	}
}

func (s *session) sendMsg(m protocol.ServerMsg) error {
	body, err := wireformat.EncodeServerMsg(m)
	if err != nil {
		return fmt.Errorf("%w: %v", relayerr.ErrEncode, err)
	}
	if err := transport.WriteFrame(s.conn, body); err != nil {
		return err
	}
	return nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
