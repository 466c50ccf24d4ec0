package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// appConfig holds the raw flag/env values before certificate files are read
// and validated into a config.ClientConfig.
type appConfig struct {
	serverAddr string

	clientCertPath     string
	clientKeyPath      string
	serverRootCertPath string

	logFormat string
	logLevel  string

	metricsAddr     string
	logMetricsEvery time.Duration

	connectTimeout   time.Duration
	reconnectDelay   time.Duration
	retryCap         int
	heartbeatTimeout time.Duration
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}

	serverAddr := flag.String("server-addr", "", "Server TLS address (host:port; host must be an IP address)")
	clientCert := flag.String("client-cert", "", "Path to the client's PEM certificate")
	clientKey := flag.String("client-key", "", "Path to the client's PEM private key")
	serverRootCert := flag.String("server-root-cert", "", "Path to the PEM root trusted to verify the server certificate")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g. :9101); empty disables")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log metrics counters")
	connectTimeout := flag.Duration("connect-timeout", 10*time.Second, "Per-attempt dial timeout")
	reconnectDelay := flag.Duration("reconnect-delay", 5*time.Second, "Delay between reconnect attempts")
	retryCap := flag.Int("retry-cap", 5, "Maximum consecutive reconnect attempts before giving up")
	heartbeatTimeout := flag.Duration("heartbeat-timeout", 20*time.Second, "Heartbeat receive deadline")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	cfg.serverAddr = *serverAddr
	cfg.clientCertPath = *clientCert
	cfg.clientKeyPath = *clientKey
	cfg.serverRootCertPath = *serverRootCert
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.logMetricsEvery = *logMetricsEvery
	cfg.connectTimeout = *connectTimeout
	cfg.reconnectDelay = *reconnectDelay
	cfg.retryCap = *retryCap
	cfg.heartbeatTimeout = *heartbeatTimeout

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		fmt.Printf("configuration error: %v\n", err)
		return nil, *showVersion
	}
	return cfg, *showVersion
}

func (c *appConfig) validate() error {
	switch c.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format: %s", c.logFormat)
	}
	switch c.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.logLevel)
	}
	if c.serverAddr == "" {
		return fmt.Errorf("server address is required")
	}
	if c.clientCertPath == "" || c.clientKeyPath == "" || c.serverRootCertPath == "" {
		return fmt.Errorf("client-cert, client-key, and server-root-cert are all required")
	}
	if c.connectTimeout <= 0 || c.reconnectDelay <= 0 || c.heartbeatTimeout <= 0 {
		return fmt.Errorf("connect-timeout, reconnect-delay, and heartbeat-timeout must all be > 0")
	}
	if c.retryCap <= 0 {
		return fmt.Errorf("retry-cap must be > 0")
	}
	return nil
}

// applyEnvOverrides maps TERONG_CLIENT_* environment variables onto cfg.
// It runs after flag parsing, and a set, non-empty variable replaces the
// field's value whether it came from a flag default or an explicitly
// passed flag. Unparsable durations are ignored.
func applyEnvOverrides(c *appConfig) {
	get := func(k string) (string, bool) {
		v, ok := os.LookupEnv(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("TERONG_CLIENT_SERVER_ADDR"); ok {
		c.serverAddr = v
	}
	if v, ok := get("TERONG_CLIENT_CLIENT_CERT"); ok {
		c.clientCertPath = v
	}
	if v, ok := get("TERONG_CLIENT_CLIENT_KEY"); ok {
		c.clientKeyPath = v
	}
	if v, ok := get("TERONG_CLIENT_SERVER_ROOT_CERT"); ok {
		c.serverRootCertPath = v
	}
	if v, ok := get("TERONG_LOG"); ok {
		c.logLevel = v
	}
	if v, ok := get("TERONG_CLIENT_METRICS_ADDR"); ok {
		c.metricsAddr = v
	}
	if v, ok := get("TERONG_CLIENT_CONNECT_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.connectTimeout = d
		}
	}
	if v, ok := get("TERONG_CLIENT_RECONNECT_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.reconnectDelay = d
		}
	}
	if v, ok := get("TERONG_CLIENT_HEARTBEAT_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.heartbeatTimeout = d
		}
	}
}

func readCertFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
