package availability

import "errors"

var (
	ErrInvalidTime    = errors.New("time must be empty or HH:MM on a 30 minute grid")
	ErrEndBeforeStart = errors.New("slot end must be after its start")
	ErrUnknownDay     = errors.New("unknown day")
	ErrUnknownSlot    = errors.New("unknown slot")
	ErrUnknownField   = errors.New("unknown field")
)

// TimeSlot is one window inside a day. Start and End are either empty or
// an HH:MM value from TimeOptions.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DailyAvailability holds the two independent windows of a day.
type DailyAvailability struct {
	Slot1 TimeSlot `json:"slot1"`
	Slot2 TimeSlot `json:"slot2"`
}

// WeeklyAvailability maps every day of the week, Monday first, to its
// availability. The array length keeps the seven-day grid closed.
type WeeklyAvailability [DaysInWeek]DailyAvailability

// Day identifies a calendar day. Monday is zero.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of entries in a WeeklyAvailability.
const DaysInWeek = 7

// Slot selects one of the two windows of a day.
type Slot int

const (
	Slot1 Slot = iota
	Slot2
)

// Field selects the bound of a slot being edited.
type Field int

const (
	Start Field = iota
	End
)
