// Package observability provides Prometheus metrics for the exchange.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "gbce"

// Metrics holds the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Trading metrics
	TradesRecorded *prometheus.CounterVec
	TradesRejected *prometheus.CounterVec

	// Broker metrics
	BatchSize          prometheus.Histogram
	BatchFlushDuration prometheus.Histogram

	// Index metrics
	IndexValue *prometheus.GaugeVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		TradesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "trades_recorded_total",
			Help:      "Total number of trades appended to a stock ledger",
		}, []string{"symbol", "side"}),
		TradesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "trades_rejected_total",
			Help:      "Total number of trade orders rejected",
		}, []string{"reason"}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "batch_size",
			Help:      "Number of orders applied per broker batch",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),
		BatchFlushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "batch_flush_duration_seconds",
			Help:      "Time spent applying one broker batch",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		IndexValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "value",
			Help:      "Last calculated value of a share index",
		}, []string{"index"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordTrade(symbol, side string) {
	if m == nil {
		return
	}
	m.TradesRecorded.WithLabelValues(symbol, side).Inc()
}

func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.TradesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordBatch(size int, seconds float64) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
	m.BatchFlushDuration.Observe(seconds)
}

func (m *Metrics) SetIndexValue(name string, value float64) {
	if m == nil {
		return
	}
	m.IndexValue.WithLabelValues(name).Set(value)
}
