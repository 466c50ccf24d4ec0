// Package client implements the relay client's transport and session: the
// connect-with-timeout / bounded-retry reconnect loop and the per-connection
// heartbeat-driven receive loop that delivers events to the input sink.
package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/logging"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/relayerr"
)

// dialFunc and sleepFn are package-level, swappable in tests so the
// reconnect loop can be exercised without real network connections or real
// timer delays, mirroring the teacher's openSerialPort/sleepFn indirection
// for its own backoff tests.
var (
	dialFunc = func(ctx context.Context, addr string, cfg *tls.Config) (net.Conn, error) {
		d := &tls.Dialer{Config: cfg}
		return d.DialContext(ctx, "tcp", addr)
	}
	sleepFn = func(ctx context.Context, d time.Duration) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}
)

// Client drives the reconnect loop against a single configured server
// address.
type Client struct {
	serverAddr string
	tlsConfig  *tls.Config
	sink       chan<- inputevent.Wire

	connectTimeout   time.Duration
	reconnectDelay   time.Duration
	retryCap         int
	heartbeatTimeout time.Duration

	logger *slog.Logger
}

type Option func(*Client)

func New(serverAddr string, tlsConfig *tls.Config, sink chan<- inputevent.Wire, opts ...Option) *Client {
	c := &Client{
		serverAddr:       serverAddr,
		tlsConfig:        tlsConfig,
		sink:             sink,
		connectTimeout:   10 * time.Second,
		reconnectDelay:   5 * time.Second,
		retryCap:         5,
		heartbeatTimeout: 20 * time.Second,
		logger:           logging.L(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.reconnectDelay = d
		}
	}
}

func WithRetryCap(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retryCap = n
		}
	}
}

func WithHeartbeatTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.heartbeatTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes the reconnect loop until ctx is cancelled or the retry cap
// is exhausted, in which case it returns a wrapped relayerr.ErrGivingUp —
// the caller (cmd/terong-client) logs it and exits non-zero.
func (c *Client) Run(ctx context.Context) error {
	retries := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		metrics.IncReconnectAttempts()
		conn, err := c.connect(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Warn("connect_failed", "error", err)
			metrics.IncError(metrics.ErrConnect)
			if retries >= c.retryCap {
				c.logger.Error("giving_up", "retries", retries)
				metrics.IncReconnectGiveups()
				return fmt.Errorf("%w: after %d retries", relayerr.ErrGivingUp, retries)
			}
			retries++
			c.logger.Debug("retry_count_incremented", "retries", retries)
			sleepFn(ctx, c.reconnectDelay)
			continue
		}

		retries = 0
		c.logger.Info("connected", "server", c.serverAddr)
		err = c.runSession(ctx, conn)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Warn("session_terminated", "error", err)
		} else {
			c.logger.Info("session_terminated")
		}
	}
}

// connect races a TLS dial against connectTimeout, per spec §4.8.
func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	cctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()
	conn, err := dialFunc(cctx, c.serverAddr, c.tlsConfig)
	if err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", relayerr.ErrDeadline, err)
		}
		return nil, fmt.Errorf("%w: %v", relayerr.ErrConnWrite, err)
	}
	return conn, nil
}
