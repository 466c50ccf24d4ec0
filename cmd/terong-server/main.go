package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kafji/terong-relay/internal/config"
	"github.com/kafji/terong-relay/internal/controller"
	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/server"
	"github.com/kafji/terong-relay/internal/source"
	"github.com/kafji/terong-relay/internal/tlsboot"
)

// Helper implementations moved to dedicated files: version.go, config.go, logger.go, metrics_logger.go.

func main() {
	appCfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("terong-server %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if appCfg == nil {
		os.Exit(1)
	}
	l := setupLogger(appCfg.logFormat, appCfg.logLevel)

	serverCert, err := readCertFile(appCfg.serverCertPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}
	serverKey, err := readCertFile(appCfg.serverKeyPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}
	clientRootCert, err := readCertFile(appCfg.clientRootCertPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}

	cfg := config.ServerConfig{
		ListenAddr:       appCfg.listenAddr,
		ServerCert:       serverCert,
		ServerKey:        serverKey,
		ClientRootCert:   clientRootCert,
		KeyboardDevice:   appCfg.keyboardDevice,
		MouseDevice:      appCfg.mouseDevice,
		TouchpadDevice:   appCfg.touchpadDevice,
		EventLog:         appCfg.eventLog,
		HeartbeatTimeout: appCfg.heartbeatTimeout,
	}
	if err := cfg.Validate(); err != nil {
		l.Error("config_error", "error", err)
		os.Exit(1)
	}

	tlsConfig, err := tlsboot.NewServerTLSConfig(cfg.ServerCert, cfg.ServerKey, cfg.ClientRootCert)
	if err != nil {
		l.Error("tls_config_error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	startMetricsLogger(ctx, appCfg.logMetricsEvery, l, &wg)

	events := make(chan inputevent.Wire, 1)
	ctrl := controller.New(events)

	onEvent := func(e inputevent.Local) bool {
		if cfg.EventLog {
			l.Debug("input_event", "kind", e.Kind)
		}
		return ctrl.OnInputEvent(e, time.Now())
	}

	devices := source.Devices{
		Keyboard: cfg.KeyboardDevice,
		Mouse:    cfg.MouseDevice,
		Touchpad: cfg.TouchpadDevice,
	}

	srv := server.New(cfg.ListenAddr, tlsConfig, events,
		server.WithHeartbeatTimeout(cfg.HeartbeatTimeout),
		server.WithLogger(l),
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := source.Run(ctx, devices, onEvent); err != nil {
			l.Error("input_source_error", "error", err)
			metrics.IncError(metrics.ErrInputSource)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			l.Error("tcp_server_error", "error", err)
			cancel()
		}
	}()

	metrics.SetReadinessFunc(func() bool { return ctx.Err() == nil })
	if appCfg.metricsAddr != "" {
		metrics.InitBuildInfo(version, commit, date)
		metricsSrv := metrics.StartHTTP(appCfg.metricsAddr)
		defer func() { _ = metricsSrv.Shutdown(context.Background()) }()
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	l.Info("shutdown_signal", "signal", s.String())
	cancel()
	wg.Wait()
}
