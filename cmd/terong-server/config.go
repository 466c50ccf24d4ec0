package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// appConfig holds the raw flag/env values before certificate files are
// read and validated into a config.ServerConfig.
type appConfig struct {
	listenAddr string

	serverCertPath     string
	serverKeyPath      string
	clientRootCertPath string

	keyboardDevice string
	mouseDevice    string
	touchpadDevice string

	eventLog bool

	logFormat string
	logLevel  string

	metricsAddr     string
	logMetricsEvery time.Duration

	heartbeatTimeout time.Duration
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}

	listen := flag.String("listen", ":7070", "TLS listen address")
	serverCert := flag.String("server-cert", "", "Path to the server's PEM certificate")
	serverKey := flag.String("server-key", "", "Path to the server's PEM private key")
	clientRootCert := flag.String("client-root-cert", "", "Path to the PEM root trusted to verify client certificates")
	keyboardDevice := flag.String("keyboard-device", "", "Linux evdev keyboard device path (e.g. /dev/input/event0)")
	mouseDevice := flag.String("mouse-device", "", "Linux evdev mouse device path")
	touchpadDevice := flag.String("touchpad-device", "", "Linux evdev touchpad device path (optional; events are discarded)")
	eventLog := flag.Bool("log", false, "Log every observed input event at debug level")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g. :9100); empty disables")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log metrics counters")
	heartbeatTimeout := flag.Duration("heartbeat-timeout", 20*time.Second, "Heartbeat receive deadline")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	cfg.listenAddr = *listen
	cfg.serverCertPath = *serverCert
	cfg.serverKeyPath = *serverKey
	cfg.clientRootCertPath = *clientRootCert
	cfg.keyboardDevice = *keyboardDevice
	cfg.mouseDevice = *mouseDevice
	cfg.touchpadDevice = *touchpadDevice
	cfg.eventLog = *eventLog
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.logMetricsEvery = *logMetricsEvery
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
	if c.listenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.serverCertPath == "" || c.serverKeyPath == "" || c.clientRootCertPath == "" {
		return fmt.Errorf("server-cert, server-key, and client-root-cert are all required")
	}
	if c.keyboardDevice == "" && c.mouseDevice == "" {
		return fmt.Errorf("at least one of keyboard-device or mouse-device is required")
	}
	if c.heartbeatTimeout <= 0 {
		return fmt.Errorf("heartbeat-timeout must be > 0")
	}
	return nil
}

// applyEnvOverrides maps TERONG_SERVER_* environment variables onto cfg.
// It runs after flag parsing, and a set, non-empty variable replaces the
// field's value whether it came from a flag default or an explicitly
// passed flag. Empty values are ignored, matching the teacher's lax
// env-override style.
func applyEnvOverrides(c *appConfig) {
	get := func(k string) (string, bool) {
		v, ok := os.LookupEnv(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("TERONG_SERVER_LISTEN"); ok {
		c.listenAddr = v
	}
	if v, ok := get("TERONG_SERVER_SERVER_CERT"); ok {
		c.serverCertPath = v
	}
	if v, ok := get("TERONG_SERVER_SERVER_KEY"); ok {
		c.serverKeyPath = v
	}
	if v, ok := get("TERONG_SERVER_CLIENT_ROOT_CERT"); ok {
		c.clientRootCertPath = v
	}
	if v, ok := get("TERONG_SERVER_KEYBOARD_DEVICE"); ok {
		c.keyboardDevice = v
	}
	if v, ok := get("TERONG_SERVER_MOUSE_DEVICE"); ok {
		c.mouseDevice = v
	}
	if v, ok := get("TERONG_SERVER_TOUCHPAD_DEVICE"); ok {
		c.touchpadDevice = v
	}
	if v, ok := get("TERONG_LOG"); ok {
		c.logLevel = v
	}
	if v, ok := get("TERONG_SERVER_METRICS_ADDR"); ok {
		c.metricsAddr = v
	}
	if v, ok := get("TERONG_SERVER_HEARTBEAT_TIMEOUT"); ok {
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
