package listmonk

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client request outcomes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "listmonk_mcp",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Completed listmonk API calls by outcome. code is the HTTP status or \"transport\".",
			},
			[]string{"method", "route", "code"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "listmonk_mcp",
				Subsystem: "client",
				Name:      "retries_total",
				Help:      "Retries scheduled after connectivity failures.",
			},
			[]string{"method", "route"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "listmonk_mcp",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Wall-clock duration of listmonk API calls including retries.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.retries, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(method, route string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "transport"
	if statusCode != 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requests.WithLabelValues(method, route, code).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) retry(method, route string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method, route).Inc()
}
