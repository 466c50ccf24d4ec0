package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/kafji/terong-relay/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus counters
var (
	SessionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_accepted_total",
		Help: "Total client sessions accepted by the server.",
	})
	SessionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_rejected_total",
		Help: "Total incoming connections rejected before a session started (handshake failure, already has a client).",
	})
	SessionsTerminated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_terminated_total",
		Help: "Total sessions that ended, on either side.",
	})
	EventsForwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_forwarded_total",
		Help: "Total input events forwarded from the server to a connected client.",
	})
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_dropped_total",
		Help: "Total input events dropped because no client session was active.",
	})
	EventsReplayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_replayed_total",
		Help: "Total input events replayed as synthetic OS input by the client.",
	})
	RelayToggles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_toggles_total",
		Help: "Total times the relay state flipped via the double-press toggle key.",
	})
	RelayActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_active",
		Help: "Current relay state: 1 if input is being forwarded to the client, 0 otherwise.",
	})
	ReconnectAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconnect_attempts_total",
		Help: "Total client connection attempts, including the first.",
	})
	ReconnectGiveups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconnect_giveups_total",
		Help: "Total times the client exhausted its retry cap and gave up.",
	})
	HeartbeatTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heartbeat_timeouts_total",
		Help: "Total sessions ended because no frame arrived within the heartbeat deadline.",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build metadata (value is always 1).",
	}, []string{"version", "commit", "date"})
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "errors_total",
		Help: "Error counters by subsystem.",
	}, []string{"where"})

	readinessMu sync.RWMutex
	readinessFn func() bool
)

// Error label constants (stable label values to bound cardinality)
const (
	ErrAccept      = "accept"
	ErrHandshake   = "handshake"
	ErrFrameRead   = "frame_read"
	ErrFrameWrite  = "frame_write"
	ErrDecode      = "decode"
	ErrInputSource = "input_source"
	ErrInputSink   = "input_sink"
	ErrConnect     = "connect"
)

// StartHTTP serves Prometheus metrics at /metrics and a readiness probe
// at /ready on a new server listening on addr.
func StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if IsReady() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready\n"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready\n"))
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		logging.L().Info("metrics_listen", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L().Error("metrics_http_error", "error", err)
		}
	}()
	return srv
}

// Local mirrored counters for cheap in-process inspection (e.g. a status
// log line), avoiding a Prometheus scrape round trip.
var (
	localSessionsAccepted   uint64
	localSessionsRejected   uint64
	localSessionsTerminated uint64
	localEventsForwarded    uint64
	localEventsDropped      uint64
	localEventsReplayed     uint64
	localRelayToggles       uint64
	localReconnectAttempts  uint64
	localReconnectGiveups   uint64
	localHeartbeatTimeouts  uint64
	localErrors             uint64
)

// Snapshot is a cheap copy of local counters.
type Snapshot struct {
	SessionsAccepted   uint64
	SessionsRejected   uint64
	SessionsTerminated uint64
	EventsForwarded    uint64
	EventsDropped      uint64
	EventsReplayed     uint64
	RelayToggles       uint64
	ReconnectAttempts  uint64
	ReconnectGiveups   uint64
	HeartbeatTimeouts  uint64
	Errors             uint64
}

func Snap() Snapshot {
	return Snapshot{
		SessionsAccepted:   atomic.LoadUint64(&localSessionsAccepted),
		SessionsRejected:   atomic.LoadUint64(&localSessionsRejected),
		SessionsTerminated: atomic.LoadUint64(&localSessionsTerminated),
		EventsForwarded:    atomic.LoadUint64(&localEventsForwarded),
		EventsDropped:      atomic.LoadUint64(&localEventsDropped),
		EventsReplayed:     atomic.LoadUint64(&localEventsReplayed),
		RelayToggles:       atomic.LoadUint64(&localRelayToggles),
		ReconnectAttempts:  atomic.LoadUint64(&localReconnectAttempts),
		ReconnectGiveups:   atomic.LoadUint64(&localReconnectGiveups),
		HeartbeatTimeouts:  atomic.LoadUint64(&localHeartbeatTimeouts),
		Errors:             atomic.LoadUint64(&localErrors),
	}
}

func IncSessionsAccepted() {
	SessionsAccepted.Inc()
	atomic.AddUint64(&localSessionsAccepted, 1)
}

func IncSessionsRejected() {
	SessionsRejected.Inc()
	atomic.AddUint64(&localSessionsRejected, 1)
}

func IncSessionsTerminated() {
	SessionsTerminated.Inc()
	atomic.AddUint64(&localSessionsTerminated, 1)
}

func IncEventsForwarded() {
	EventsForwarded.Inc()
	atomic.AddUint64(&localEventsForwarded, 1)
}

func IncEventsDropped() {
	EventsDropped.Inc()
	atomic.AddUint64(&localEventsDropped, 1)
}

func IncEventsReplayed() {
	EventsReplayed.Inc()
	atomic.AddUint64(&localEventsReplayed, 1)
}

// RecordRelayToggle sets the relay-active gauge to the new state and
// increments the toggle counter; call once per flip, not per event.
func RecordRelayToggle(active bool) {
	if active {
		RelayActive.Set(1)
	} else {
		RelayActive.Set(0)
	}
	RelayToggles.Inc()
	atomic.AddUint64(&localRelayToggles, 1)
}

func IncReconnectAttempts() {
	ReconnectAttempts.Inc()
	atomic.AddUint64(&localReconnectAttempts, 1)
}

func IncReconnectGiveups() {
	ReconnectGiveups.Inc()
	atomic.AddUint64(&localReconnectGiveups, 1)
}

func IncHeartbeatTimeouts() {
	HeartbeatTimeouts.Inc()
	atomic.AddUint64(&localHeartbeatTimeouts, 1)
}

func IncError(label string) {
	Errors.WithLabelValues(label).Inc()
	atomic.AddUint64(&localErrors, 1)
}

// InitBuildInfo sets the build info gauge (should be called once at startup).
func InitBuildInfo(version, commit, date string) {
	BuildInfo.WithLabelValues(version, commit, date).Set(1)
	// Pre-register common error label series so the first error of each
	// kind does not pay registration latency.
	for _, lbl := range []string{
		ErrAccept, ErrHandshake, ErrFrameRead, ErrFrameWrite,
		ErrDecode, ErrInputSource, ErrInputSink, ErrConnect,
	} {
		Errors.WithLabelValues(lbl).Add(0)
	}
}

// SetReadinessFunc registers a function used by /ready and IsReady.
func SetReadinessFunc(fn func() bool) { readinessMu.Lock(); readinessFn = fn; readinessMu.Unlock() }

// IsReady invokes the registered readiness function if present.
func IsReady() bool {
	readinessMu.RLock()
	fn := readinessFn
	readinessMu.RUnlock()
	if fn == nil {
		return true
	}
	return fn()
}

// Ready is a concise alias used at call sites.
func Ready() bool { return IsReady() }
