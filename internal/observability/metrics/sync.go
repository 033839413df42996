package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SyncMetrics tracks store mutations, rollbacks, and realtime feed activity.
type SyncMetrics struct {
	registry *prometheus.Registry

	mutationsTotal      *prometheus.CounterVec
	rollbacksTotal      *prometheus.CounterVec
	realtimeEventsTotal *prometheus.CounterVec
	collectionSize      *prometheus.GaugeVec
	requestSeconds      *prometheus.HistogramVec
}

func NewSyncMetrics(service string) *SyncMetrics {
	registry := prometheus.NewRegistry()

	mutationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsync",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Committed store mutations by collection and kind.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"collection", "kind"},
	)
	rollbacksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsync",
			Subsystem: "store",
			Name:      "rollbacks_total",
			Help:      "Optimistic deletes rolled back after remote rejection.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"collection"},
	)
	realtimeEventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsync",
			Subsystem: "realtime",
			Name:      "events_total",
			Help:      "Realtime feed events applied, by event type.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"type"},
	)
	collectionSize := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "docsync",
			Subsystem: "store",
			Name:      "collection_size",
			Help:      "Current number of cached records per collection.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"collection"},
	)

	requestSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docsync",
			Subsystem: "backend",
			Name:      "request_seconds",
			Help:      "Outbound backend request duration by operation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"operation"},
	)

	registry.MustRegister(mutationsTotal, rollbacksTotal, realtimeEventsTotal, collectionSize, requestSeconds)

	return &SyncMetrics{
		registry:            registry,
		mutationsTotal:      mutationsTotal,
		rollbacksTotal:      rollbacksTotal,
		realtimeEventsTotal: realtimeEventsTotal,
		collectionSize:      collectionSize,
		requestSeconds:      requestSeconds,
	}
}

func (m *SyncMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *SyncMetrics) ObserveMutation(collection, kind string) {
	m.mutationsTotal.WithLabelValues(collection, kind).Inc()
}

func (m *SyncMetrics) ObserveRollback(collection string) {
	m.rollbacksTotal.WithLabelValues(collection).Inc()
}

func (m *SyncMetrics) ObserveRealtimeEvent(eventType string) {
	m.realtimeEventsTotal.WithLabelValues(eventType).Inc()
}

func (m *SyncMetrics) SetCollectionSize(collection string, size int) {
	m.collectionSize.WithLabelValues(collection).Set(float64(size))
}

func (m *SyncMetrics) ObserveBackendRequest(operation string, elapsed time.Duration) {
	m.requestSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
}
