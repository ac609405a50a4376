package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is a valid no-op
// collector; record methods check the receiver so wiring stays optional.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Tracking metrics
	HeartbeatsTotal prometheus.Counter
	DetectionsTotal *prometheus.CounterVec
	CommandsTotal   *prometheus.CounterVec
	NagsTotal       prometheus.Counter
	AudioTurnsTotal *prometheus.CounterVec

	// Collaborator metrics
	CollaboratorCalls    *prometheus.CounterVec
	CollaboratorDuration *prometheus.HistogramVec
	CollaboratorErrors   *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for the JSON stats endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds headline metric values for the JSON stats API.
type Snapshot struct {
	TotalRequests   int64 `json:"total_requests"`
	TotalHeartbeats int64 `json:"total_heartbeats"`
	TotalDetections int64 `json:"total_detections"`
	TotalCommands   int64 `json:"total_commands"`
	TotalNags       int64 `json:"total_nags"`
	ActiveSessions  int64 `json:"active_sessions"`
	UptimeSeconds   int64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector registered on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alpine_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		HeartbeatsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "alpine_heartbeats_total",
				Help: "Total heartbeat samples processed",
			},
		),
		DetectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_detections_total",
				Help: "Game detections by source",
			},
			[]string{"source"},
		),
		CommandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_commands_total",
				Help: "Commands emitted to clients by type",
			},
			[]string{"type"},
		),
		NagsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "alpine_nags_total",
				Help: "Unsolicited nag interventions fired",
			},
		),
		AudioTurnsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_audio_turns_total",
				Help: "Audio turns by outcome",
			},
			[]string{"outcome"},
		),

		CollaboratorCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_collaborator_calls_total",
				Help: "External capability calls",
			},
			[]string{"capability", "status"},
		),
		CollaboratorDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alpine_collaborator_duration_seconds",
				Help:    "External capability call duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"capability"},
		),
		CollaboratorErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alpine_collaborator_errors_total",
				Help: "External capability call failures",
			},
			[]string{"capability"},
		),

		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "alpine_sessions_active",
				Help: "Active tracking sessions",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "alpine_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.mu.Unlock()
}

// RecordHeartbeat records one processed heartbeat sample.
func (m *Metrics) RecordHeartbeat() {
	if m == nil {
		return
	}
	m.HeartbeatsTotal.Inc()
	m.mu.Lock()
	m.snapshot.TotalHeartbeats++
	m.mu.Unlock()
}

// RecordDetection records a positive detection by source.
func (m *Metrics) RecordDetection(source string) {
	if m == nil {
		return
	}
	m.DetectionsTotal.WithLabelValues(source).Inc()
	m.mu.Lock()
	m.snapshot.TotalDetections++
	m.mu.Unlock()
}

// RecordCommand records one emitted command.
func (m *Metrics) RecordCommand(cmdType string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(cmdType).Inc()
	m.mu.Lock()
	m.snapshot.TotalCommands++
	m.mu.Unlock()
}

// RecordNag records one fired nag.
func (m *Metrics) RecordNag() {
	if m == nil {
		return
	}
	m.NagsTotal.Inc()
	m.mu.Lock()
	m.snapshot.TotalNags++
	m.mu.Unlock()
}

// RecordAudioTurn records one completed audio turn by outcome.
func (m *Metrics) RecordAudioTurn(outcome string) {
	if m == nil {
		return
	}
	m.AudioTurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordCollaboratorCall records one external capability call.
func (m *Metrics) RecordCollaboratorCall(capability string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.CollaboratorErrors.WithLabelValues(capability).Inc()
	}
	m.CollaboratorCalls.WithLabelValues(capability, status).Inc()
	m.CollaboratorDuration.WithLabelValues(capability).Observe(duration.Seconds())
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsActive.Inc()
	m.mu.Lock()
	m.snapshot.ActiveSessions++
	m.mu.Unlock()
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.SessionsActive.Dec()
	m.mu.Lock()
	if m.snapshot.ActiveSessions > 0 {
		m.snapshot.ActiveSessions--
	}
	m.mu.Unlock()
}

// GetSnapshot returns current headline values for the JSON stats API.
func (m *Metrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = int64(time.Since(m.startTime).Seconds())
	return snap
}
