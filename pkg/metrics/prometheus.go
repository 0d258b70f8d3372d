// Package metrics exposes the Prometheus instrumentation shared by the
// pipeline, leader/follower, and Euler servers.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container.
type Metrics struct {
	JobsTotal          *prometheus.CounterVec
	AlgorithmDuration  *prometheus.HistogramVec
	ActiveConnections  prometheus.Gauge
	QueueDepth         *prometheus.GaugeVec
	ActiveLeader       prometheus.Gauge
	GraphVerticesTotal *prometheus.HistogramVec
	ServiceInfo        *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics constructs and registers the metrics container.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		JobsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_total",
				Help:      "Total number of jobs processed, by server and status",
			},
			[]string{"server", "status"},
		),

		AlgorithmDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "algorithm_duration_seconds",
				Help:      "Duration of a single algorithm kernel invocation",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"algorithm"},
		),

		ActiveConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_connections",
				Help:      "Current number of open client connections",
			},
		),

		QueueDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Current depth of a pipeline stage queue",
			},
			[]string{"queue"},
		),

		ActiveLeader: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_leader_index",
				Help:      "Index of the worker currently elected leader",
			},
		),

		GraphVerticesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_vertices_total",
				Help:      "Number of vertices in processed graphs",
				Buckets:   []float64{1, 4, 8, 16, 20, 32, 50},
			},
			[]string{"server"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service build/environment information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-wide metrics container, initializing it with
// defaults if InitMetrics has not yet been called.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("graphsuite", "")
	}
	return defaultMetrics
}

// RecordJob records completion of one job for the given server ("pipeline",
// "leaderfollower", "euler") and status ("success", "error", or
// "no_circuit" from the Euler server).
func (m *Metrics) RecordJob(server, status string) {
	m.JobsTotal.WithLabelValues(server, status).Inc()
}

// RecordAlgorithm records the wall-clock duration of one kernel invocation.
func (m *Metrics) RecordAlgorithm(algorithm string, d time.Duration) {
	m.AlgorithmDuration.WithLabelValues(algorithm).Observe(d.Seconds())
}

// RecordGraphSize records the vertex count of a processed graph.
func (m *Metrics) RecordGraphSize(server string, vertices int) {
	m.GraphVerticesTotal.WithLabelValues(server).Observe(float64(vertices))
}

// SetQueueDepth sets the current depth of a named pipeline queue.
func (m *Metrics) SetQueueDepth(queue string, depth int) {
	m.QueueDepth.WithLabelValues(queue).Set(float64(depth))
}

// SetServiceInfo sets the service_info gauge to 1 for the given labels.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer runs a small HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
