package main

import (
	"testing"
	"time"
)

func baseClientConfig() *appConfig {
	return &appConfig{
		serverAddr:         "10.0.0.2:7070",
		clientCertPath:     "client.pem",
		clientKeyPath:      "client-key.pem",
		serverRootCertPath: "server-root.pem",
		logFormat:          "text",
		logLevel:           "info",
		connectTimeout:     10 * time.Second,
		reconnectDelay:     5 * time.Second,
		retryCap:           5,
		heartbeatTimeout:   20 * time.Second,
	}
}

func TestConfigValidate_OK(t *testing.T) {
	c := baseClientConfig()
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
		{"missingServerAddr", func(c *appConfig) { c.serverAddr = "" }},
		{"missingClientCert", func(c *appConfig) { c.clientCertPath = "" }},
		{"missingClientKey", func(c *appConfig) { c.clientKeyPath = "" }},
		{"missingServerRootCert", func(c *appConfig) { c.serverRootCertPath = "" }},
		{"badConnectTimeout", func(c *appConfig) { c.connectTimeout = 0 }},
		{"badReconnectDelay", func(c *appConfig) { c.reconnectDelay = 0 }},
		{"badHeartbeat", func(c *appConfig) { c.heartbeatTimeout = 0 }},
		{"badRetryCap", func(c *appConfig) { c.retryCap = 0 }},
	}
	for _, tc := range tests {
		base := baseClientConfig()
		tc.mod(base)
		if err := base.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
