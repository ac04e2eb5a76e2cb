package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds Prometheus collectors for client-side auth operations.
type Metrics struct {
	Operations          *prometheus.CounterVec
	OperationDurationMs *prometheus.HistogramVec
	Notifications       *prometheus.CounterVec
	Authenticated       prometheus.Gauge
}

// New registers and returns auth metrics collectors on reg.
// A nil reg registers on the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moortracker_auth_operations_total",
			Help: "Total number of auth operations by operation and result",
		}, []string{"operation", "result"}),
		OperationDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moortracker_auth_operation_duration_ms",
			Help:    "Duration of auth operations in milliseconds, including remote calls",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"operation"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moortracker_auth_notifications_total",
			Help: "Total number of change notifications applied to the session store",
		}, []string{"event"}),
		Authenticated: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moortracker_auth_authenticated",
			Help: "1 when the session store holds an authenticated user, 0 otherwise",
		}),
	}
}

func (m *Metrics) IncrementOperation(operation, result string) {
	m.Operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveOperationDuration(operation string, durationMs float64) {
	m.OperationDurationMs.WithLabelValues(operation).Observe(durationMs)
}

func (m *Metrics) IncrementNotifications(event string) {
	m.Notifications.WithLabelValues(event).Inc()
}

func (m *Metrics) SetAuthenticated(authenticated bool) {
	if authenticated {
		m.Authenticated.Set(1)
		return
	}
	m.Authenticated.Set(0)
}
