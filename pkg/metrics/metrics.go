// Package metrics provides Prometheus metrics for the Clover service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchComputationsTotal tracks match computations by operation and mode
	MatchComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "matching",
			Name:      "computations_total",
			Help:      "Total number of match computations by operation and mode",
		},
		[]string{"operation", "mode"},
	)

	// MatchComputationDuration tracks match computation duration in seconds
	MatchComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clover",
			Subsystem: "matching",
			Name:      "computation_duration_seconds",
			Help:      "Duration of match computations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// PairsScoredTotal tracks scored listing/lead pairs by kind
	PairsScoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "matching",
			Name:      "pairs_scored_total",
			Help:      "Total number of scored listing/lead pairs by kind",
		},
		[]string{"kind"},
	)

	// RecordsSkippedTotal tracks malformed records skipped during matching
	RecordsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "matching",
			Name:      "records_skipped_total",
			Help:      "Total number of malformed records skipped during matching",
		},
		[]string{"kind"},
	)

	// KafkaMessagesConsumed tracks Kafka messages consumed by status
	KafkaMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "kafka",
			Name:      "messages_consumed_total",
			Help:      "Total number of messages consumed from Kafka by status",
		},
		[]string{"topic", "status"},
	)

	// DatabaseQueryDuration tracks database query duration
	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clover",
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Duration of database queries in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// RecordMatchComputation records one finished match computation
func RecordMatchComputation(operation, mode string, durationSeconds float64) {
	MatchComputationsTotal.WithLabelValues(operation, mode).Inc()
	MatchComputationDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordKafkaConsume records a consumed Kafka message
func RecordKafkaConsume(topic, status string) {
	KafkaMessagesConsumed.WithLabelValues(topic, status).Inc()
}
