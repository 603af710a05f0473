package scheduler

import (
	"errors"
	"sync"

	"github.com/mauv0809/squad-scheduler/internal/message"
	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/mauv0809/squad-scheduler/internal/share"
)

var ErrUnknownChampionship = errors.New("unknown championship")

// Scheduler owns the in-progress scheduling form. Every edit replaces the
// form with a new value computed from the old one.
type Scheduler struct {
	mu      sync.RWMutex
	form    message.MatchData
	roster  roster.Store
	sharer  share.Sharer
	metrics metrics.Metrics
}

// Result is a generated message with everything needed to share it.
type Result struct {
	Message  string          `json:"message"`
	Link     string          `json:"link"`
	Opponent roster.Opponent `json:"opponent"`
}

// Edit is a single availability field change.
type Edit struct {
	Day   string `json:"day"`
	Slot  string `json:"slot"`
	Field string `json:"field"`
	Value string `json:"value"`
}
