package notify

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks the real-time subsystem. All methods are nil-safe so wiring
// metrics stays optional in tests.
type Metrics struct {
	activeConnections prometheus.Gauge
	connectionsTotal  prometheus.Counter
	rejectedOrigins   prometheus.Counter
	dispatches        *prometheus.CounterVec
	sendErrors        prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "durgasos_ws_connections_active",
			Help: "Current number of registered WebSocket connections.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "durgasos_ws_connections_total",
			Help: "Total WebSocket connections accepted since start.",
		}),
		rejectedOrigins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "durgasos_ws_rejected_origins_total",
			Help: "Connection attempts rejected by the origin policy.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "durgasos_notifications_dispatched_total",
			Help: "Notifications dispatched, by scope.",
		}, []string{"scope"}),
		sendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "durgasos_notification_send_errors_total",
			Help: "Per-connection send failures during dispatch.",
		}),
	}

	reg.MustRegister(
		m.activeConnections,
		m.connectionsTotal,
		m.rejectedOrigins,
		m.dispatches,
		m.sendErrors,
	)
	return m
}

func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.activeConnections.Inc()
	m.connectionsTotal.Inc()
}

func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.activeConnections.Dec()
}

func (m *Metrics) OriginRejected() {
	if m == nil {
		return
	}
	m.rejectedOrigins.Inc()
}

func (m *Metrics) recordDispatch(scope string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(scope).Inc()
}

func (m *Metrics) recordSendError() {
	if m == nil {
		return
	}
	m.sendErrors.Inc()
}
