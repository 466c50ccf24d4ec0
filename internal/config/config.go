// Package config defines the configuration structures consumed by the relay
// core. Building them from flags, environment variables, or files belongs
// to the cmd/ entrypoints; this package only holds the resulting values and
// validates them.
package config

import (
	"fmt"
	"time"
)

// Defaults mirror the timing constants spec'd for the relay's transport and
// client reconnect policy.
const (
	DefaultHeartbeatTimeout = 20 * time.Second
	DefaultConnectTimeout   = 10 * time.Second
	DefaultReconnectDelay   = 5 * time.Second
	DefaultRetryCap         = 5
)

// ServerConfig configures the relay server's listener, TLS material, and
// input device paths.
type ServerConfig struct {
	ListenAddr string // host:port the TLS listener binds to

	ServerCert     []byte // PEM-encoded server certificate
	ServerKey      []byte // PEM-encoded server private key
	ClientRootCert []byte // PEM-encoded root trusted to verify client certs

	KeyboardDevice string // Linux: path under /dev/input
	MouseDevice    string
	TouchpadDevice string // optional; empty disables the touchpad source

	EventLog bool // the orthogonal --log flag: enable event logging

	HeartbeatTimeout time.Duration // zero means DefaultHeartbeatTimeout
}

// ClientConfig configures the relay client's server address, TLS material,
// and reconnect policy.
type ClientConfig struct {
	ServerAddr string // host:port; the host is an IP address (IP SANs, not DNS)

	ClientCert     []byte
	ClientKey      []byte
	ServerRootCert []byte

	ConnectTimeout time.Duration // zero means DefaultConnectTimeout
	ReconnectDelay time.Duration // zero means DefaultReconnectDelay
	RetryCap       int           // zero means DefaultRetryCap

	HeartbeatTimeout time.Duration // zero means DefaultHeartbeatTimeout
}

// Validate checks required fields are present and applies defaults for
// zero-valued timing fields. It does not attempt to parse the PEM material
// or resolve device paths — only the core's TLS/input-source constructors
// do that, at the point they actually need the bytes.
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if len(c.ServerCert) == 0 || len(c.ServerKey) == 0 || len(c.ClientRootCert) == 0 {
		return fmt.Errorf("config: server cert, server key, and client root cert are all required")
	}
	if c.KeyboardDevice == "" && c.MouseDevice == "" {
		return fmt.Errorf("config: at least one of keyboard or mouse device is required")
	}
	if c.HeartbeatTimeout <= 0 {
		c.HeartbeatTimeout = DefaultHeartbeatTimeout
	}
	return nil
}

// Validate checks required fields are present and applies defaults.
func (c *ClientConfig) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("config: server address is required")
	}
	if len(c.ClientCert) == 0 || len(c.ClientKey) == 0 || len(c.ServerRootCert) == 0 {
		return fmt.Errorf("config: client cert, client key, and server root cert are all required")
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = DefaultReconnectDelay
	}
	if c.RetryCap <= 0 {
		c.RetryCap = DefaultRetryCap
	}
	if c.HeartbeatTimeout <= 0 {
		c.HeartbeatTimeout = DefaultHeartbeatTimeout
	}
	return nil
}
