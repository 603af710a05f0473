package scheduler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/message"
	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/mauv0809/squad-scheduler/internal/share"
)

// New creates a Scheduler holding the default form. sharer may be nil
// when no share target is configured.
func New(opponents roster.Store, sharer share.Sharer, metrics metrics.Metrics) *Scheduler {
	return &Scheduler{
		form:    message.DefaultMatchData(),
		roster:  opponents,
		sharer:  sharer,
		metrics: metrics,
	}
}

// Roster returns the roster the scheduler resolves opponents against.
func (s *Scheduler) Roster() roster.Store { return s.roster }

// Form returns the current form.
func (s *Scheduler) Form() message.MatchData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// Reset restores the default form.
func (s *Scheduler) Reset() message.MatchData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = message.DefaultMatchData()
	log.Info("Form reset")
	return s.form
}

// SetForm replaces the whole form after checking it.
func (s *Scheduler) SetForm(data message.MatchData) (message.MatchData, error) {
	if err := ValidateForm(data); err != nil {
		return message.MatchData{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = data
	return s.form, nil
}

// ValidateForm checks the parts of a form a user could have typed by
// hand: the championship and the availability grid.
func ValidateForm(data message.MatchData) error {
	if !message.ValidChampionship(data.Championship) {
		return fmt.Errorf("%w: %q", ErrUnknownChampionship, data.Championship)
	}
	return data.Availability.Valid()
}

// EditAvailability applies a single field change to the form's grid.
// Values outside the time vocabulary, and ends not after the slot's
// start, are refused the way the form's selects never offer them.
func (s *Scheduler) EditAvailability(e Edit) (message.MatchData, error) {
	day, err := availability.ParseDay(e.Day)
	if err != nil {
		return message.MatchData{}, err
	}
	slot, err := availability.ParseSlot(e.Slot)
	if err != nil {
		return message.MatchData{}, err
	}
	field, err := availability.ParseField(e.Field)
	if err != nil {
		return message.MatchData{}, err
	}
	if !availability.ValidTime(e.Value) {
		return message.MatchData{}, fmt.Errorf("%w: %q", availability.ErrInvalidTime, e.Value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.form.Availability[day].Slot(slot)
	if field == availability.End && e.Value != "" && current.Start != "" && e.Value <= current.Start {
		return message.MatchData{}, fmt.Errorf("%w: %s-%s", availability.ErrEndBeforeStart, current.Start, e.Value)
	}

	next := s.form
	next.Availability = availability.Apply(s.form.Availability, day, slot, field, e.Value)
	cleared := current.End != "" && next.Availability[day].Slot(slot).End == "" && field == availability.Start
	if cleared {
		log.Debug("End cleared by new start", "day", day, "slot", slot, "start", e.Value)
	}
	if next.Availability[day].Overlaps() {
		log.Warn("Slots overlap", "day", day)
	}
	s.form = next
	s.metrics.IncAvailabilityEdit(cleared)
	return s.form, nil
}

// Generate composes the message for the current form.
func (s *Scheduler) Generate() (Result, error) {
	return s.GenerateFor(s.Form())
}

// GenerateFor composes the message for data without touching the form.
func (s *Scheduler) GenerateFor(data message.MatchData) (Result, error) {
	msg, opponent, err := message.Generate(data, s.roster)
	if err != nil {
		s.metrics.IncGenerationFailures()
		return Result{}, err
	}
	s.metrics.IncMessagesGenerated()
	return Result{
		Message:  msg,
		Link:     share.WhatsAppLink(opponent.Phone, msg),
		Opponent: opponent,
	}, nil
}

// Share generates the message for data and hands it to the configured
// share targets. Nothing is shared when the opponent does not resolve.
func (s *Scheduler) Share(ctx context.Context, data message.MatchData, dryRun bool) (Result, error) {
	res, err := s.GenerateFor(data)
	if err != nil {
		return Result{}, err
	}
	if s.sharer == nil {
		log.Warn("No share target configured")
		return res, nil
	}
	err = s.sharer.Share(ctx, share.Shared{
		Message:      res.Message,
		Phone:        res.Opponent.Phone,
		Championship: data.Championship,
		OpponentName: res.Opponent.Name,
	}, dryRun)
	return res, err
}

// NewSharer bundles sharers into one that records per-target metrics.
func NewSharer(m metrics.Metrics, sharers ...share.Sharer) share.Sharer {
	return share.Multi{
		Sharers: sharers,
		OnResult: func(name string, err error) {
			if err != nil {
				m.IncShareFailed(name)
				return
			}
			m.IncShareSent(name)
		},
	}
}
