package metrics

import (
	"runtime"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "service")

	require.NotNil(t, m)
	require.NotNil(t, m.JobsTotal)
	require.NotNil(t, m.AlgorithmDuration)
	require.NotNil(t, m.ActiveConnections)
	require.NotNil(t, m.QueueDepth)
	require.NotNil(t, m.ActiveLeader)
}

func TestGet(t *testing.T) {
	defaultMetrics = nil

	m := Get()
	require.NotNil(t, m)

	m2 := Get()
	require.Same(t, m, m2)
}

func TestRecordJob(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "jobs")

	require.NotPanics(t, func() {
		m.RecordJob("pipeline", "success")
		m.RecordJob("leaderfollower", "error")
	})
}

func TestRecordAlgorithm(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "algo")

	require.NotPanics(t, func() {
		m.RecordAlgorithm("max_flow", 500*time.Millisecond)
		m.RecordAlgorithm("mst", 1*time.Millisecond)
	})
}

func TestRecordGraphSize(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "graph")

	require.NotPanics(t, func() {
		m.RecordGraphSize("pipeline", 20)
		m.RecordGraphSize("euler", 8)
	})
}

func TestSetQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "queue")

	require.NotPanics(t, func() {
		m.SetQueueDepth("q1", 3)
		m.SetQueueDepth("q4", 0)
	})
}

func TestSetServiceInfo(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	m := InitMetrics("test", "info")

	require.NotPanics(t, func() {
		m.SetServiceInfo("1.0.0", "production")
	})
}

func TestRuntimeCollector(t *testing.T) {
	collector := NewRuntimeCollector("test", "runtime")

	descCh := make(chan *prometheus.Desc, 10)
	collector.Describe(descCh)
	close(descCh)

	count := 0
	for range descCh {
		count++
	}
	require.GreaterOrEqual(t, count, 5)

	metricCh := make(chan prometheus.Metric, 10)
	collector.Collect(metricCh)
	close(metricCh)

	count = 0
	for range metricCh {
		count++
	}
	require.GreaterOrEqual(t, count, 5)
}

func TestConnTracker(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_active_connections",
	})

	tracker := NewConnTracker(gauge)

	tracker.Start("127.0.0.1:1")
	tracker.Start("127.0.0.1:1")
	tracker.Start("127.0.0.1:2")

	require.Equal(t, 2, tracker.active["127.0.0.1:1"])

	tracker.End("127.0.0.1:1")
	require.Equal(t, 1, tracker.active["127.0.0.1:1"])

	tracker.End("127.0.0.1:1")
	tracker.End("127.0.0.1:1")
	require.GreaterOrEqual(t, tracker.active["127.0.0.1:1"], 0)
}

func TestTimer(t *testing.T) {
	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "test_duration",
			Buckets: []float64{.01, .1, 1},
		},
		[]string{"algorithm"},
	)

	timer := NewTimer(histogram, "max_flow")

	time.Sleep(10 * time.Millisecond)

	duration := timer.ObserveDuration()
	require.GreaterOrEqual(t, duration, 10*time.Millisecond)
}

func TestHandler(t *testing.T) {
	handler := Handler()
	require.NotNil(t, handler)
}

func TestRuntimeCollector_GCPause(t *testing.T) {
	runtime.GC()

	collector := NewRuntimeCollector("test", "gc")
	metricCh := make(chan prometheus.Metric, 10)
	collector.Collect(metricCh)
	close(metricCh)

	found := false
	for range metricCh {
		found = true
	}
	require.True(t, found)
}
