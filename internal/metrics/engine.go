package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineProcessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "process_total",
		Help:      "Count of Process calls.",
	}, []string{"source", "scorer", "status"})

	engineProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "process_duration_seconds",
		Help:      "Duration of scoring a set of records.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "scorer", "status"})

	engineScoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "scored_total",
		Help:      "Count of scored transactions by tier.",
	}, []string{"source", "tier"})

	engineDuplicatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "duplicates_total",
		Help:      "Count of records skipped as already scored.",
	}, []string{"source"})

	engineFeatureWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "feature_warnings_total",
		Help:      "Count of feature values replaced with a neutral default.",
	})

	engineProfileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "profile_errors_total",
		Help:      "Count of profile updates that could not be persisted.",
	})
)

// Engine tracks metrics for the scoring engine.
type Engine struct{}

// NewEngine constructs an Engine metrics collector.
func NewEngine() *Engine {
	return &Engine{}
}

// ObserveProcess records a Process call.
func (m Engine) ObserveProcess(source, scorer string, err error, started time.Time) {
	if source == "" {
		source = unknown
	}
	if scorer == "" {
		scorer = unknown
	}
	s := status(err)
	engineProcessTotal.WithLabelValues(source, scorer, s).Inc()
	engineProcessDuration.WithLabelValues(source, scorer, s).Observe(time.Since(started).Seconds())
}

// ObserveScored counts a scored transaction.
func (m Engine) ObserveScored(source, tier string) {
	engineScoredTotal.WithLabelValues(source, tier).Inc()
}

// ObserveDuplicates counts skipped duplicate records.
func (m Engine) ObserveDuplicates(source string, n int) {
	if n > 0 {
		engineDuplicatesTotal.WithLabelValues(source).Add(float64(n))
	}
}

// ObserveFeatureWarnings counts extraction warnings.
func (m Engine) ObserveFeatureWarnings(n int) {
	engineFeatureWarningsTotal.Add(float64(n))
}

// ObserveProfileError counts a failed profile persistence.
func (m Engine) ObserveProfileError() {
	engineProfileErrorsTotal.Inc()
}
