package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/roster"
)

var ErrOpponentNotFound = errors.New("opponent not found in roster")

// Lookup resolves an opponent id against the roster.
type Lookup interface {
	Lookup(id int) (roster.Opponent, bool)
}

// MatchData is the in-progress scheduling form.
type MatchData struct {
	Host         string                          `json:"host"`
	HostClub     string                          `json:"hostClub"`
	Championship string                          `json:"championship"`
	Observation  string                          `json:"observation"`
	OpponentID   OpponentID                      `json:"opponentId"`
	Availability availability.WeeklyAvailability `json:"availability"`
}

// OpponentID is the selected opponent. The zero value means no selection.
type OpponentID struct {
	ID    int
	Valid bool
}

// SelectOpponent returns a set OpponentID.
func SelectOpponent(id int) OpponentID { return OpponentID{ID: id, Valid: true} }

// MarshalJSON writes the id as a number, or "" when unset.
func (o OpponentID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(o.ID)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (o *OpponentID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*o = OpponentID{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*o = OpponentID{}
			return nil
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid opponent id %s: %w", string(data), err)
	}
	*o = SelectOpponent(id)
	return nil
}

// Championships lists the competitions a match can belong to.
var Championships = []string{
	"Série A",
	"Série B",
	"Série C",
	"Série D",
	"Série E",
	"Copa Squad",
	"Copa Survival",
	"Conference League",
	"Libertadores",
	"Sul Americana",
	"Champions League",
	"Europa League",
}

// ValidChampionship reports whether name is one of Championships.
func ValidChampionship(name string) bool {
	for _, c := range Championships {
		if c == name {
			return true
		}
	}
	return false
}

// DefaultMatchData returns the form as it looks on first use: weekday
// evenings open, weekend unavailable, no opponent selected.
func DefaultMatchData() MatchData {
	var week availability.WeeklyAvailability
	for _, d := range []availability.Day{availability.Monday, availability.Tuesday, availability.Wednesday, availability.Thursday, availability.Friday} {
		week[d].Slot1 = availability.TimeSlot{Start: "20:00", End: "23:00"}
	}
	return MatchData{
		Host:         "alexmetalloide81",
		HostClub:     "Beşiktaş",
		Championship: "Série E",
		Availability: week,
	}
}
