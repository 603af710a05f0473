package message

import (
	"fmt"
	"strings"

	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/roster"
)

const (
	unavailable     = "Indisponível"
	noObservation   = "Nenhuma"
	slotSeparator   = " | "
	messageTemplate = `🎮 AGENDAMENTO OFICIAL DE PARTIDA – %s

👤 Mandante: %s
🏴‍☠️ Clube: %s
⚔️ Adversário: %s
📞 Contato: %s (via WhatsApp)

Disponibilidade:
%s

Observação: %s

Caso a disponibilidade não coincida, favor entrar em contato
para definirmos um horário dentro do prazo da rodada.`
)

// FormatSlot renders one window. ok is false when neither bound is set.
func FormatSlot(slot availability.TimeSlot) (text string, ok bool) {
	switch {
	case slot.Start == "" && slot.End == "":
		return "", false
	case slot.End == "":
		return slot.Start + " em diante", true
	case slot.Start == "":
		return "Até " + slot.End, true
	default:
		return slot.Start + " às " + slot.End, true
	}
}

// FormatDayLine renders a day as "<label>: ...". Slot1 always comes
// before slot2, whatever their times.
func FormatDayLine(label string, day availability.DailyAvailability) string {
	var parts []string
	if s, ok := FormatSlot(day.Slot1); ok {
		parts = append(parts, s)
	}
	if s, ok := FormatSlot(day.Slot2); ok {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return label + ": " + unavailable
	}
	return label + ": " + strings.Join(parts, slotSeparator)
}

// FormatAvailability renders the seven day lines, Monday to Sunday.
func FormatAvailability(week availability.WeeklyAvailability) []string {
	lines := make([]string, 0, availability.DaysInWeek)
	for _, d := range availability.Days() {
		lines = append(lines, FormatDayLine(d.Label(), week[d]))
	}
	return lines
}

// Compose renders the scheduling message for the given opponent. The text
// is returned as is; escaping for a transport is the caller's concern.
func Compose(data MatchData, opponent roster.Opponent) string {
	observation := data.Observation
	if observation == "" {
		observation = noObservation
	}
	return fmt.Sprintf(messageTemplate,
		data.Championship,
		data.Host,
		data.HostClub,
		opponent.Name,
		data.Host,
		strings.Join(FormatAvailability(data.Availability), "\n"),
		observation,
	)
}
