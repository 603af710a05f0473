package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MessagesGenerated  prometheus.Counter
	GenerationFailures prometheus.Counter
	RosterChanges      *prometheus.CounterVec
	AvailabilityEdits  *prometheus.CounterVec
	SharesSent         *prometheus.CounterVec
	SharesFailed       *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge

	// store, when set, mirrors counters into the database.
	store MetricsStore
}
