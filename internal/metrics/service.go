package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MessagesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_messages_generated_total",
			Help: "The total number of scheduling messages composed.",
		}),
		GenerationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_generation_failures_total",
			Help: "The total number of compose attempts without a resolvable opponent.",
		}),
		RosterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_roster_changes_total",
			Help: "The total number of persisted roster changes.",
		}, []string{"op"}),
		AvailabilityEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_availability_edits_total",
			Help: "The total number of availability field edits.",
		}, []string{"cleared_end"}),
		SharesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_shares_sent_total",
			Help: "The total number of messages handed to a share target.",
		}, []string{"sharer"}),
		SharesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_shares_failed_total",
			Help: "The total number of share attempts that failed.",
		}, []string{"sharer"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scheduler_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MessagesGenerated,
		s.GenerationFailures,
		s.RosterChanges,
		s.AvailabilityEdits,
		s.SharesSent,
		s.SharesFailed,
		s.StartupTimeSeconds,
	)

	return s
}

// WithStore mirrors every counter increment into store so totals survive
// restarts of short-lived CLI runs.
func (s *Service) WithStore(store MetricsStore) *Service {
	s.store = store
	return s
}

func (s *Service) persist(key string) {
	if s.store != nil {
		s.store.Increment(key)
	}
}

func (s *Service) IncMessagesGenerated() {
	s.MessagesGenerated.Inc()
	s.persist("messages_generated")
}

func (s *Service) IncGenerationFailures() {
	s.GenerationFailures.Inc()
	s.persist("generation_failures")
}

func (s *Service) IncRosterChange(op string) {
	s.RosterChanges.WithLabelValues(op).Inc()
	s.persist("roster_" + op)
}

func (s *Service) IncAvailabilityEdit(clearedEnd bool) {
	s.AvailabilityEdits.WithLabelValues(strconv.FormatBool(clearedEnd)).Inc()
}

func (s *Service) IncShareSent(sharer string) {
	s.SharesSent.WithLabelValues(sharer).Inc()
	s.persist("shares_sent_" + sharer)
}

func (s *Service) IncShareFailed(sharer string) {
	s.SharesFailed.WithLabelValues(sharer).Inc()
	s.persist("shares_failed_" + sharer)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
