package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "fetch_total",
		Help:      "Count of attempts to fetch the newest blocks.",
	}, []string{"network", "status"})

	streamFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of fetching the newest blocks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	streamCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "cycle_total",
		Help:      "Count of monitoring cycles.",
	}, []string{"network", "status"})

	streamCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a monitoring cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	streamCycleTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "cycle_transactions",
		Help:      "Number of sampled transactions scored per cycle.",
		Buckets:   prometheus.LinearBuckets(0, 1, 16),
	}, []string{"network"})

	streamBackoffSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "backoff_seconds",
		Help:      "Current wait before the next cycle after a source error.",
	}, []string{"network"})

	streamActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stream_monitor",
		Name:      "active",
		Help:      "Whether the monitor loop is running.",
	}, []string{"network"})
)

// StreamMonitor tracks metrics for the streaming monitor loop.
type StreamMonitor struct {
	network string
}

// NewStreamMonitor constructs a StreamMonitor with defaults.
func NewStreamMonitor(network string) *StreamMonitor {
	if network == "" {
		network = unknown
	}
	return &StreamMonitor{network: network}
}

// ObserveFetch records a block fetch outcome and duration.
func (m StreamMonitor) ObserveFetch(err error, started time.Time) {
	s := status(err)
	streamFetchTotal.WithLabelValues(m.network, s).Inc()
	streamFetchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveCycle records a monitoring cycle and the number of transactions it scored.
func (m StreamMonitor) ObserveCycle(err error, transactions int, started time.Time) {
	s := status(err)
	streamCycleTotal.WithLabelValues(m.network, s).Inc()
	streamCycleDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	streamCycleTransactions.WithLabelValues(m.network).Observe(float64(transactions))
}

// SetBackoff records the wait before the next cycle.
func (m StreamMonitor) SetBackoff(d time.Duration) {
	streamBackoffSeconds.WithLabelValues(m.network).Set(d.Seconds())
}

// SetActive records whether the loop is running.
func (m StreamMonitor) SetActive(active bool) {
	v := 0.0
	if active {
		v = 1
	}
	streamActive.WithLabelValues(m.network).Set(v)
}
