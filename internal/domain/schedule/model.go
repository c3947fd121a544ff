package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeSlot is one of the fixed care-activity times of day. The zero value
// SlotNone marks a date-only occurrence for flows where time of day is
// optional (e.g. music).
type TimeSlot string

const (
	SlotNone    TimeSlot = ""
	SlotMorning TimeSlot = "morning"
	SlotNoon    TimeSlot = "noon"
	SlotEvening TimeSlot = "evening"
	SlotNight   TimeSlot = "night"
)

// slotOrder fixes the canonical ordering: morning < noon < evening < night.
var slotOrder = map[TimeSlot]int{
	SlotMorning: 0,
	SlotNoon:    1,
	SlotEvening: 2,
	SlotNight:   3,
}

// AllTimeSlots lists the valid slots in canonical order.
var AllTimeSlots = []TimeSlot{SlotMorning, SlotNoon, SlotEvening, SlotNight}

// ParseTimeSlot parses a slot name case-insensitively.
func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := slotOrder[slot]; !ok {
		return SlotNone, fmt.Errorf("unknown time slot: %q", s)
	}
	return slot, nil
}

// Rank returns the slot's position in the canonical order.
func (s TimeSlot) Rank() int {
	if r, ok := slotOrder[s]; ok {
		return r
	}
	return -1
}

// RepeatMode is the recurrence variant of a schedule.
type RepeatMode string

const (
	RepeatDaily  RepeatMode = "daily"
	RepeatWeekly RepeatMode = "weekly"
	// RepeatMonthly is selectable in the client but has no defined
	// expansion rule; the validator rejects it.
	RepeatMonthly RepeatMode = "monthly"
)

// ParseRepeatMode parses a repeat mode name case-insensitively.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch RepeatMode(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatDaily:
		return RepeatDaily, nil
	case RepeatWeekly:
		return RepeatWeekly, nil
	case RepeatMonthly:
		return RepeatMonthly, nil
	}
	return "", fmt.Errorf("unknown repeat mode: %q", s)
}

// Count bounds for the stepper controls. Out-of-range input is clamped, not
// rejected.
const (
	MinCount       = 1
	MaxDailyCount  = 30
	MaxWeeklyCount = 12
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday parses a weekday name ("Mon" or "Monday") case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday: %q", s)
	}
	return wd, nil
}

// Spec is a validated recurring-schedule description. Construct it through
// Validate; a Spec built by hand is not guaranteed to satisfy the invariants
// the expander relies on (sorted deduplicated slots and weekdays, clamped
// count, midnight-UTC start date).
type Spec struct {
	StartDate    time.Time      `json:"start_date"`
	Repeat       RepeatMode     `json:"repeat"`
	Count        int            `json:"count"`
	Weekdays     []time.Weekday `json:"weekdays,omitempty"`
	TimeSlots    []TimeSlot     `json:"time_slots,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
}

// Occurrence is one concrete (date, slot) instance generated from a Spec.
// Slot is SlotNone when the schedule carries no time slots.
type Occurrence struct {
	Date time.Time `json:"date"`
	Slot TimeSlot  `json:"slot,omitempty"`
}

// DateOnly truncates t to a calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeSlots(slots []TimeSlot) []TimeSlot {
	seen := make(map[TimeSlot]bool, len(slots))
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank() < out[j].Rank() })
	return out
}

func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
