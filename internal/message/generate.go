package message

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/roster"
)

// Resolve finds the selected opponent of data in the roster.
func Resolve(data MatchData, lookup Lookup) (roster.Opponent, error) {
	if !data.OpponentID.Valid {
		return roster.Opponent{}, fmt.Errorf("%w: no opponent selected", ErrOpponentNotFound)
	}
	opponent, ok := lookup.Lookup(data.OpponentID.ID)
	if !ok {
		return roster.Opponent{}, fmt.Errorf("%w: id %d", ErrOpponentNotFound, data.OpponentID.ID)
	}
	return opponent, nil
}

// Generate resolves the opponent and composes the message. No message is
// produced when the opponent cannot be resolved.
func Generate(data MatchData, lookup Lookup) (string, roster.Opponent, error) {
	opponent, err := Resolve(data, lookup)
	if err != nil {
		log.Warn("Message not generated", "error", err)
		return "", roster.Opponent{}, err
	}
	log.Debug("Generating message", "opponentID", opponent.ID, "championship", data.Championship)
	return Compose(data, opponent), opponent, nil
}
