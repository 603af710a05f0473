package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMessagesGenerated()
	IncGenerationFailures()
	IncRosterChange(op string)
	IncAvailabilityEdit(clearedEnd bool)
	IncShareSent(sharer string)
	IncShareFailed(sharer string)
	SetStartupTime(duration float64)
}

// MetricsStore persists counters across process runs.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
