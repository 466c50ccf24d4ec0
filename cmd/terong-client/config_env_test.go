package main

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvOverrides_Basic(t *testing.T) {
	base := baseClientConfig()

	os.Setenv("TERONG_CLIENT_SERVER_ADDR", "10.0.0.9:7070")
	os.Setenv("TERONG_LOG", "debug")
	os.Setenv("TERONG_CLIENT_RECONNECT_DELAY", "2s")
	t.Cleanup(func() {
		os.Unsetenv("TERONG_CLIENT_SERVER_ADDR")
		os.Unsetenv("TERONG_LOG")
		os.Unsetenv("TERONG_CLIENT_RECONNECT_DELAY")
	})

	applyEnvOverrides(base)

	if base.serverAddr != "10.0.0.9:7070" {
		t.Fatalf("expected serverAddr override, got %s", base.serverAddr)
	}
	if base.logLevel != "debug" {
		t.Fatalf("expected logLevel override, got %s", base.logLevel)
	}
	if base.reconnectDelay != 2*time.Second {
		t.Fatalf("expected reconnectDelay override, got %v", base.reconnectDelay)
	}
}

func TestApplyEnvOverrides_BadDurationIgnored(t *testing.T) {
	base := baseClientConfig()
	os.Setenv("TERONG_CLIENT_CONNECT_TIMEOUT", "notaduration")
	t.Cleanup(func() { os.Unsetenv("TERONG_CLIENT_CONNECT_TIMEOUT") })

	applyEnvOverrides(base)

	if base.connectTimeout != 10*time.Second {
		t.Fatalf("expected connectTimeout unchanged, got %v", base.connectTimeout)
	}
}
