package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchChunkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch_analyzer",
		Name:      "chunk_total",
		Help:      "Count of scored batch chunks.",
	}, []string{"status"})

	batchChunkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batch_analyzer",
		Name:      "chunk_duration_seconds",
		Help:      "Duration of scoring a batch chunk.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	batchChunkSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batch_analyzer",
		Name:      "chunk_size",
		Help:      "Number of transactions per scored chunk.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	batchRowErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch_analyzer",
		Name:      "row_errors_total",
		Help:      "Count of CSV rows skipped because they could not be parsed.",
	})

	batchReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch_analyzer",
		Name:      "reports_total",
		Help:      "Count of completed batch analyses.",
	}, []string{"status"})
)

// BatchAnalyzer tracks metrics for batch file analysis.
type BatchAnalyzer struct{}

// NewBatchAnalyzer constructs a BatchAnalyzer.
func NewBatchAnalyzer() *BatchAnalyzer {
	return &BatchAnalyzer{}
}

// ObserveChunk records a scored chunk.
func (m BatchAnalyzer) ObserveChunk(err error, size int, started time.Time) {
	s := status(err)
	batchChunkTotal.WithLabelValues(s).Inc()
	batchChunkDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	batchChunkSize.Observe(float64(size))
}

// ObserveRowErrors adds skipped rows.
func (m BatchAnalyzer) ObserveRowErrors(n int) {
	batchRowErrorsTotal.Add(float64(n))
}

// ObserveReport records the outcome of a whole analysis.
func (m BatchAnalyzer) ObserveReport(err error) {
	batchReportsTotal.WithLabelValues(status(err)).Inc()
}
