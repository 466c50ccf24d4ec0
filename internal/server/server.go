// Package server implements the relay server's session state machine:
// single-active-session admission over mTLS, event fan-in from the input
// controller, and heartbeat discipline.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/logging"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/relayerr"
)

const defaultHandshakeTimeout = 10 * time.Second

// Server owns the TLS listener and the single active session handle.
type Server struct {
	addr             string
	tlsConfig        *tls.Config
	events           <-chan inputevent.Wire
	heartbeatTimeout time.Duration
	handshakeTimeout time.Duration
	logger           *slog.Logger

	mu     sync.Mutex
	active *session
}

type Option func(*Server)

// New creates a Server listening on addr, accepting mTLS connections per
// tlsConfig, and forwarding events read from events to whichever session is
// currently active (dropping them silently when none is).
func New(addr string, tlsConfig *tls.Config, events <-chan inputevent.Wire, opts ...Option) *Server {
	s := &Server{
		addr:             addr,
		tlsConfig:        tlsConfig,
		events:           events,
		heartbeatTimeout: 20 * time.Second,
		handshakeTimeout: defaultHandshakeTimeout,
		logger:           logging.L(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func WithHeartbeatTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.heartbeatTimeout = d
		}
	}
}

func WithHandshakeTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.handshakeTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Run accepts connections and forwards events until ctx is cancelled. It
// returns nil on clean shutdown, or a wrapped relayerr on a fatal listener
// error (e.g. the event channel closing, per spec: a closed event producer
// is session-fatal and, at the process level, fatal).
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", relayerr.ErrListen, err)
	}
	defer ln.Close()
	s.logger.Info("tcp_listen", "addr", ln.Addr().String())

	go func() { <-ctx.Done(); _ = ln.Close() }()

	forwarderErr := make(chan error, 1)
	go func() {
		err := s.forwardEvents(ctx)
		forwarderErr <- err
		if err != nil {
			_ = ln.Close()
		}
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			select {
			case ferr := <-forwarderErr:
				if ferr != nil {
					return ferr
				}
			default:
			}
			return fmt.Errorf("%w: %v", relayerr.ErrAccept, err)
		}
		go s.handleConn(ctx, conn)

		select {
		case err := <-forwarderErr:
			return err
		default:
		}
	}
}

// forwardEvents drains the controller's event channel for the lifetime of
// the server, handing each event to whichever session is active. There is
// always a reader on this channel regardless of session state, which is
// what keeps a full capacity-1 channel from blocking the input source
// indefinitely when no client is connected: events are simply dropped.
func (s *Server) forwardEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case w, ok := <-s.events:
			if !ok {
				return fmt.Errorf("%w: input event channel closed", relayerr.ErrChannelClosed)
			}
			s.mu.Lock()
			active := s.active
			s.mu.Unlock()
			if active != nil {
				active.enqueue(w)
				metrics.IncEventsForwarded()
			} else {
				metrics.IncEventsDropped()
			}
		}
	}
}

// handleConn performs the TLS handshake, then admits the resulting session
// only if none is currently active; a second concurrent connection is
// handshaked and immediately closed, the first session is left untouched.
func (s *Server) handleConn(ctx context.Context, raw net.Conn) {
	tlsConn := tls.Server(raw, s.tlsConfig)
	hctx, cancel := context.WithTimeout(ctx, s.handshakeTimeout)
	defer cancel()
	if err := tlsConn.HandshakeContext(hctx); err != nil {
		s.logger.Warn("handshake_failed", "remote", raw.RemoteAddr().String(), "error", err)
		metrics.IncError(metrics.ErrHandshake)
		metrics.IncSessionsRejected()
		_ = raw.Close()
		return
	}

	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		s.logger.Info("session_rejected_already_active", "remote", raw.RemoteAddr().String())
		metrics.IncSessionsRejected()
		_ = tlsConn.Close()
		return
	}
	sess := newSession(tlsConn, s.heartbeatTimeout, s.logger.With("remote", raw.RemoteAddr().String()))
	s.active = sess
	s.mu.Unlock()
	s.logger.Info("session_started", "remote", raw.RemoteAddr().String())
	metrics.IncSessionsAccepted()

	err := sess.run(ctx)

	s.mu.Lock()
	if s.active == sess {
		s.active = nil
	}
	s.mu.Unlock()

	metrics.IncSessionsTerminated()
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("session_terminated", "remote", raw.RemoteAddr().String(), "error", err)
	} else {
		s.logger.Info("session_terminated", "remote", raw.RemoteAddr().String())
	}
}
