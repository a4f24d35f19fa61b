package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors shared by observed channels.
type Metrics struct {
	OpsTotal    *prometheus.CounterVec
	OpDuration  *prometheus.HistogramVec
	OpsInFlight *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "channel_ops_total",
				Help:      "Total number of channel operations by outcome",
			},
			[]string{"channel", "op", "outcome"},
		),
		OpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "channel_op_duration_seconds",
				Help:      "Time spent blocked in channel operations",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"channel", "op"},
		),
		OpsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "channel_ops_in_flight",
				Help:      "Number of channel operations currently blocked",
			},
			[]string{"channel", "op"},
		),
	}
}

func (m *Metrics) begin(channel, op string) {
	if m == nil {
		return
	}
	m.OpsInFlight.WithLabelValues(channel, op).Inc()
}

func (m *Metrics) end(channel, op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.OpsInFlight.WithLabelValues(channel, op).Dec()
	m.OpsTotal.WithLabelValues(channel, op, outcome).Inc()
	m.OpDuration.WithLabelValues(channel, op).Observe(d.Seconds())
}
