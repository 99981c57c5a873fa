// Package metric provides prometheus instrumentation for the connector.
package metric

import "github.com/prometheus/client_golang/prometheus"

const namespace = "signalbridge"

// Metrics contains the connector-level metrics.
type Metrics struct {
	FramesRouted     *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
	DaemonErrors     prometheus.Counter
	EventsParsed     *prometheus.CounterVec
	EnvelopesDropped *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all connector metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		FramesRouted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "frames_routed_total",
				Help:      "Inbound frames routed by outcome (response, notification)",
			},
			[]string{"outcome"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_in_flight",
				Help:      "Requests awaiting a correlated response",
			},
		),
		DaemonErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "daemon_errors_total",
				Help:      "Error frames returned by the daemon",
			},
		),
		EventsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "parser",
				Name:      "events_parsed_total",
				Help:      "Normalized events emitted by kind",
			},
			[]string{"kind"},
		),
		EnvelopesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "parser",
				Name:      "envelopes_dropped_total",
				Help:      "Envelopes dropped by reason (no_source, not_whitelisted, decode)",
			},
			[]string{"reason"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.FramesRouted,
		m.RequestsInFlight,
		m.DaemonErrors,
		m.EventsParsed,
		m.EnvelopesDropped,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
