package schedule

import (
	"errors"
	"time"
)

// ErrUnsupportedRepeat is returned when a Spec carries a repeat mode the
// expander has no rule for. Validate rejects such specs up front, so seeing
// this error means the caller bypassed validation.
var ErrUnsupportedRepeat = errors.New("repeat mode has no expansion rule")

// Expand generates the ordered, finite occurrence sequence for a validated
// Spec. It is pure and deterministic: calling it twice with the same Spec
// yields an identical sequence, sorted ascending by (date, slot) with no
// duplicate pairs.
func Expand(spec Spec) ([]Occurrence, error) {
	switch spec.Repeat {
	case RepeatDaily:
		return expandDaily(spec), nil
	case RepeatWeekly:
		return expandWeekly(spec), nil
	}
	return nil, ErrUnsupportedRepeat
}

// MustExpand is Expand for specs already produced by Validate, which cannot
// carry an unsupported mode. It panics otherwise.
func MustExpand(spec Spec) []Occurrence {
	occ, err := Expand(spec)
	if err != nil {
		panic(err)
	}
	return occ
}

func expandDaily(spec Spec) []Occurrence {
	start := DateOnly(spec.StartDate)
	out := make([]Occurrence, 0, spec.Count*maxInt(1, len(spec.TimeSlots)))
	for i := 0; i < spec.Count; i++ {
		out = crossSlots(out, start.AddDate(0, 0, i), spec.TimeSlots)
	}
	return out
}

// expandWeekly walks count weeks starting at the week containing the start
// date. Weekdays in the first week that fall before the start date are
// skipped: the schedule begins at the start date, never retroactively.
func expandWeekly(spec Spec) []Occurrence {
	start := DateOnly(spec.StartDate)
	// Rewind to the Sunday of the start week.
	weekStart := start.AddDate(0, 0, -int(start.Weekday()))

	out := make([]Occurrence, 0, spec.Count*len(spec.Weekdays)*maxInt(1, len(spec.TimeSlots)))
	for week := 0; week < spec.Count; week++ {
		for _, wd := range spec.Weekdays {
			date := weekStart.AddDate(0, 0, week*7+int(wd))
			if date.Before(start) {
				continue
			}
			out = crossSlots(out, date, spec.TimeSlots)
		}
	}
	return out
}

// crossSlots appends one occurrence per slot for the given date, or a single
// date-only occurrence when the schedule has no slots. Slots arrive already
// in canonical order from Validate.
func crossSlots(out []Occurrence, date time.Time, slots []TimeSlot) []Occurrence {
	if len(slots) == 0 {
		return append(out, Occurrence{Date: date})
	}
	for _, slot := range slots {
		out = append(out, Occurrence{Date: date, Slot: slot})
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
