package http

import (
	"net/http"

	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
)

func NewServer(sched *scheduler.Scheduler, metricsSvc metrics.Metrics, metricsHandler http.Handler) *Server {
	server := &Server{
		Scheduler:      sched,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /opponents", Chain(s.ListOpponentsHandler(), paramsMiddleware))
	s.Router.Handle("POST /opponents", Chain(s.AddOpponentHandler(), paramsMiddleware))
	s.Router.Handle("PUT /opponents/{id}", Chain(s.UpdateOpponentHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /opponents/{id}", Chain(s.RemoveOpponentHandler(), paramsMiddleware))

	s.Router.Handle("GET /form", Chain(s.GetFormHandler(), paramsMiddleware))
	s.Router.Handle("PUT /form", Chain(s.SetFormHandler(), paramsMiddleware))
	s.Router.Handle("POST /form/availability", Chain(s.EditAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("POST /form/reset", Chain(s.ResetFormHandler(), paramsMiddleware))

	s.Router.Handle("POST /message", Chain(s.MessageHandler(), paramsMiddleware))
	s.Router.Handle("POST /share", Chain(s.ShareHandler(), paramsMiddleware))

	s.Router.Handle("GET /options/time", Chain(s.TimeOptionsHandler(), paramsMiddleware))
	s.Router.Handle("GET /options/championships", Chain(s.ChampionshipsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
