package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kafji/terong-relay/internal/metrics"
)

func startMetricsLogger(ctx context.Context, interval time.Duration, l *slog.Logger, wg *sync.WaitGroup) {
	if interval <= 0 {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				snap := metrics.Snap()
				l.Info("metrics_snapshot",
					"sessions_accepted", snap.SessionsAccepted,
					"sessions_rejected", snap.SessionsRejected,
					"sessions_terminated", snap.SessionsTerminated,
					"events_forwarded", snap.EventsForwarded,
					"events_dropped", snap.EventsDropped,
					"relay_toggles", snap.RelayToggles,
					"heartbeat_timeouts", snap.HeartbeatTimeouts,
					"errors", snap.Errors,
				)
			case <-ctx.Done():
				return
			}
		}
	}()
}
