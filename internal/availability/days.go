package availability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var days = [DaysInWeek]struct {
	key   string
	label string
	short string
}{
	{"monday", "Segunda-feira", "Segunda"},
	{"tuesday", "Terça-feira", "Terça"},
	{"wednesday", "Quarta-feira", "Quarta"},
	{"thursday", "Quinta-feira", "Quinta"},
	{"friday", "Sexta-feira", "Sexta"},
	{"saturday", "Sábado", "Sábado"},
	{"sunday", "Domingo", "Domingo"},
}

// Days returns the days of the week in message order, Monday to Sunday.
func Days() []Day {
	out := make([]Day, DaysInWeek)
	for i := range out {
		out[i] = Day(i)
	}
	return out
}

func (d Day) valid() bool { return d >= Monday && d <= Sunday }

// Key is the lower-case English name used in JSON payloads.
func (d Day) Key() string {
	if !d.valid() {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return days[d].key
}

// Label is the name printed in generated messages.
func (d Day) Label() string {
	if !d.valid() {
		return ""
	}
	return days[d].label
}

// ShortLabel is the compact name shown next to the form rows.
func (d Day) ShortLabel() string {
	if !d.valid() {
		return ""
	}
	return days[d].short
}

func (d Day) String() string { return d.Key() }

// ParseDay accepts a day key such as "monday", ignoring case.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, d := range days {
		if d.key == s {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

// ParseSlot accepts "slot1" or "slot2".
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slot1":
		return Slot1, nil
	case "slot2":
		return Slot2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

func (s Slot) String() string {
	switch s {
	case Slot1:
		return "slot1"
	case Slot2:
		return "slot2"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// ParseField accepts "start" or "end".
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Start, nil
	case "end":
		return End, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func (f Field) String() string {
	switch f {
	case Start:
		return "start"
	case End:
		return "end"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// MarshalJSON writes the grid as an object keyed by day, Monday first.
func (w WeeklyAvailability) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", days[i].key)
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by day. Missing days stay empty,
// unknown keys are rejected.
func (w *WeeklyAvailability) UnmarshalJSON(data []byte) error {
	var raw map[string]DailyAvailability
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out WeeklyAvailability
	for key, daily := range raw {
		d, err := ParseDay(key)
		if err != nil {
			return err
		}
		out[d] = daily
	}
	*w = out
	return nil
}
