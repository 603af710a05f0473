package availability

import (
	"fmt"
	"sort"
)

var timeOptions = func() []string {
	opts := make([]string, 0, 48)
	for h := 0; h < 24; h++ {
		opts = append(opts, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return opts
}()

// TimeOptions returns the selectable times, 00:00 through 23:30 in
// 30 minute steps. The returned slice is a copy.
func TimeOptions() []string {
	return append([]string(nil), timeOptions...)
}

// ValidTime reports whether v is empty or one of TimeOptions.
func ValidTime(v string) bool {
	if v == "" {
		return true
	}
	i := sort.SearchStrings(timeOptions, v)
	return i < len(timeOptions) && timeOptions[i] == v
}

// EndOptions returns the values an end field may take given start.
// Every option is allowed while start is unset.
func EndOptions(start string) []string {
	if start == "" {
		return TimeOptions()
	}
	i := sort.SearchStrings(timeOptions, start)
	for i < len(timeOptions) && timeOptions[i] <= start {
		i++
	}
	return append([]string(nil), timeOptions[i:]...)
}

// Valid reports whether the slot holds known times with end after start.
func (t TimeSlot) Valid() error {
	if !ValidTime(t.Start) {
		return fmt.Errorf("%w: start %q", ErrInvalidTime, t.Start)
	}
	if !ValidTime(t.End) {
		return fmt.Errorf("%w: end %q", ErrInvalidTime, t.End)
	}
	if t.Start != "" && t.End != "" && t.End <= t.Start {
		return fmt.Errorf("%w: %s-%s", ErrEndBeforeStart, t.Start, t.End)
	}
	return nil
}

// IsEmpty reports whether neither bound is set.
func (t TimeSlot) IsEmpty() bool { return t.Start == "" && t.End == "" }

// Slot returns the requested window. It panics on an unknown slot.
func (d DailyAvailability) Slot(s Slot) TimeSlot {
	switch s {
	case Slot1:
		return d.Slot1
	case Slot2:
		return d.Slot2
	}
	panic(fmt.Sprintf("availability: %v", s))
}

func (d *DailyAvailability) slotPtr(s Slot) *TimeSlot {
	switch s {
	case Slot1:
		return &d.Slot1
	case Slot2:
		return &d.Slot2
	}
	panic(fmt.Sprintf("availability: %v", s))
}

// Active reports whether either window has a start time.
func (d DailyAvailability) Active() bool {
	return d.Slot1.Start != "" || d.Slot2.Start != ""
}

// Overlaps reports whether both windows are fully bounded and intersect.
// Overlapping windows are accepted everywhere; this is only a hint.
func (d DailyAvailability) Overlaps() bool {
	a, b := d.Slot1, d.Slot2
	if a.Start == "" || a.End == "" || b.Start == "" || b.End == "" {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// Valid checks every slot of the week.
func (w WeeklyAvailability) Valid() error {
	for _, day := range Days() {
		for _, s := range []Slot{Slot1, Slot2} {
			if err := w[day].Slot(s).Valid(); err != nil {
				return fmt.Errorf("%s %s: %w", day, s, err)
			}
		}
	}
	return nil
}

// Apply returns a copy of w with one field of one slot set to value.
// Moving a start to or past the current end clears that end in the same
// edit, so stored slots never have end <= start. Setting an end leaves
// the start untouched. Unknown day, slot or field values panic.
func Apply(w WeeklyAvailability, day Day, slot Slot, field Field, value string) WeeklyAvailability {
	if !day.valid() {
		panic(fmt.Sprintf("availability: %v", day))
	}
	next := w
	ts := next[day].slotPtr(slot)
	switch field {
	case Start:
		ts.Start = value
		if ts.End != "" && value != "" && value >= ts.End {
			ts.End = ""
		}
	case End:
		ts.End = value
	default:
		panic(fmt.Sprintf("availability: %v", field))
	}
	return next
}
