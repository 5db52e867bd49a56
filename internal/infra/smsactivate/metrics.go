package smsactivate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK        = "ok"
	outcomeStatus    = "bad_status"
	outcomeTransport = "transport"
	outcomeMalformed = "malformed"
)

type Metrics struct {
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors in reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "smsactivate",
			Name:      "request_duration_seconds",
			Help:      "Duration of price API requests by action and outcome.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"action", "outcome"}),
	}

	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) observe(action, outcome string, took time.Duration) {
	m.duration.WithLabelValues(action, outcome).Observe(took.Seconds())
}
