package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
	StatusTransitions *prometheus.CounterVec
	CartsCreated      prometheus.Counter
	OrderItemsRemoved prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qualstore",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qualstore",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qualstore",
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Order status update attempts by role, target status and outcome.",
	}, []string{"role", "target", "result"})
	carts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "qualstore",
		Subsystem: "orders",
		Name:      "carts_created_total",
		Help:      "Active orders created on a caller's first add.",
	})
	removed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "qualstore",
		Subsystem: "order_items",
		Name:      "removed_total",
		Help:      "Order items deleted because their quantity dropped below one or on request.",
	})

	reg.MustRegister(requests, latency, transitions, carts, removed)
	return &Metrics{
		Requests:          requests,
		LatencyMS:         latency,
		StatusTransitions: transitions,
		CartsCreated:      carts,
		OrderItemsRemoved: removed,
		gatherer:          reg,
	}
}

// Handler exposes the registry this Metrics was built on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// The recorders below are nil-safe so services can run without metrics.

func (m *Metrics) ObserveTransition(role, target, result string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(role, target, result).Inc()
}

func (m *Metrics) CartCreated() {
	if m == nil {
		return
	}
	m.CartsCreated.Inc()
}

func (m *Metrics) OrderItemRemoved() {
	if m == nil {
		return
	}
	m.OrderItemsRemoved.Inc()
}
