package main

import (
	"testing"
	"time"
)

func baseServerConfig() *appConfig {
	return &appConfig{
		listenAddr:         ":7070",
		serverCertPath:     "server.pem",
		serverKeyPath:      "server-key.pem",
		clientRootCertPath: "client-root.pem",
		keyboardDevice:     "/dev/input/event0",
		logFormat:          "text",
		logLevel:           "info",
		heartbeatTimeout:   20 * time.Second,
	}
}

func TestConfigValidate_OK(t *testing.T) {
	c := baseServerConfig()
	if err := c.validate(); err != nil {
		t.Fatalf("expected ok got %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*appConfig)
	}{
		{"badFormat", func(c *appConfig) { c.logFormat = "xx" }},
		{"badLevel", func(c *appConfig) { c.logLevel = "nope" }},
		{"missingListen", func(c *appConfig) { c.listenAddr = "" }},
		{"missingServerCert", func(c *appConfig) { c.serverCertPath = "" }},
		{"missingServerKey", func(c *appConfig) { c.serverKeyPath = "" }},
		{"missingClientRootCert", func(c *appConfig) { c.clientRootCertPath = "" }},
		{"noDevices", func(c *appConfig) { c.keyboardDevice = ""; c.mouseDevice = "" }},
		{"badHeartbeat", func(c *appConfig) { c.heartbeatTimeout = 0 }},
	}
	for _, tc := range tests {
		base := baseServerConfig()
		tc.mod(base)
		if err := base.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
