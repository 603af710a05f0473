package http

import (
	"net/http"

	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
)

type Server struct {
	Scheduler      *scheduler.Scheduler
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Router         *http.ServeMux
}

type errorResponse struct {
	Error string `json:"error"`
}

type optionsResponse struct {
	Options []string `json:"options"`
}
