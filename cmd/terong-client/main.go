package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kafji/terong-relay/internal/client"
	"github.com/kafji/terong-relay/internal/config"
	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/metrics"
	"github.com/kafji/terong-relay/internal/sink"
	"github.com/kafji/terong-relay/internal/tlsboot"
)

// Helper implementations moved to dedicated files: version.go, config.go, logger.go, metrics_logger.go.

func main() {
	appCfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("terong-client %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if appCfg == nil {
		os.Exit(1)
	}
	l := setupLogger(appCfg.logFormat, appCfg.logLevel)

	clientCert, err := readCertFile(appCfg.clientCertPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}
	clientKey, err := readCertFile(appCfg.clientKeyPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}
	serverRootCert, err := readCertFile(appCfg.serverRootCertPath)
	if err != nil {
		l.Error("cert_load_error", "error", err)
		os.Exit(1)
	}

	cfg := config.ClientConfig{
		ServerAddr:       appCfg.serverAddr,
		ClientCert:       clientCert,
		ClientKey:        clientKey,
		ServerRootCert:   serverRootCert,
		ConnectTimeout:   appCfg.connectTimeout,
		ReconnectDelay:   appCfg.reconnectDelay,
		RetryCap:         appCfg.retryCap,
		HeartbeatTimeout: appCfg.heartbeatTimeout,
	}
	if err := cfg.Validate(); err != nil {
		l.Error("config_error", "error", err)
		os.Exit(1)
	}

	serverHost := cfg.ServerAddr
	if h, _, err := net.SplitHostPort(cfg.ServerAddr); err == nil {
		serverHost = h
	}
	tlsConfig, err := tlsboot.NewClientTLSConfig(cfg.ClientCert, cfg.ClientKey, cfg.ServerRootCert, serverHost)
	if err != nil {
		l.Error("tls_config_error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	startMetricsLogger(ctx, appCfg.logMetricsEvery, l, &wg)

	events := make(chan inputevent.Wire, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sink.Run(ctx, events); err != nil {
			l.Error("input_sink_error", "error", err)
			metrics.IncError(metrics.ErrInputSink)
			cancel()
		}
	}()

	c := client.New(cfg.ServerAddr, tlsConfig, events,
		client.WithConnectTimeout(cfg.ConnectTimeout),
		client.WithReconnectDelay(cfg.ReconnectDelay),
		client.WithRetryCap(cfg.RetryCap),
		client.WithHeartbeatTimeout(cfg.HeartbeatTimeout),
		client.WithLogger(l),
	)

	clientErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		clientErr <- c.Run(ctx)
	}()

	metrics.SetReadinessFunc(func() bool { return ctx.Err() == nil })
	if appCfg.metricsAddr != "" {
		metrics.InitBuildInfo(version, commit, date)
		metricsSrv := metrics.StartHTTP(appCfg.metricsAddr)
		defer func() { _ = metricsSrv.Shutdown(context.Background()) }()
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sigCh:
		l.Info("shutdown_signal", "signal", s.String())
		cancel()
	case err := <-clientErr:
		if err != nil {
			l.Error("client_error", "error", err)
			cancel()
			wg.Wait()
			os.Exit(1)
		}
	}
	wg.Wait()
}
