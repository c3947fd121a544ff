package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Raw holds the untrusted form fields of the schedule configuration panel
// exactly as the client submits them. Count arrives as text because the
// stepper field accepts direct entry.
type Raw struct {
	StartDate    string   `json:"start_date"`
	Repeat       string   `json:"repeat"`
	Count        string   `json:"count"`
	Weekdays     []string `json:"weekdays"`
	TimeSlots    []string `json:"time_slots"`
	Instructions string   `json:"instructions"`
}

// Validation error codes. Codes marked as notices never block a save; the
// client uses them to correct the displayed value.
const (
	CodeMissingStartDate      = "missing_start_date"
	CodeInvalidStartDate      = "invalid_start_date"
	CodeMissingRepeatMode     = "missing_repeat_mode"
	CodeInvalidRepeatMode     = "invalid_repeat_mode"
	CodeRepeatModeUnsupported = "repeat_mode_unsupported"
	CodeNoWeekdaysSelected    = "no_weekdays_selected"
	CodeInvalidWeekday        = "invalid_weekday"
	CodeInvalidTimeSlot       = "invalid_time_slot"
	CodeNoTimeSlots           = "no_time_slots"
	CodeCountOutOfRange       = "count_out_of_range" // notice
)

// ValidationError is a field-level validation failure returned as a value.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
	// Value carries the corrected value for clamp notices.
	Value string `json:"value,omitempty"`
}

// Policy configures per-catalog-kind validation rules. Medicine requires at
// least one time slot; music and exercise do not.
type Policy struct {
	RequireTimeSlots bool
}

// Result is the outcome of validating a Raw schedule. Spec is meaningful
// only when Valid() reports true. Notices carry non-blocking corrections
// (count clamping) and may be present on a valid result.
type Result struct {
	Spec    Spec              `json:"spec"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Notices []ValidationError `json:"notices,omitempty"`
}

// Valid reports whether the input produced a usable Spec.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// startDateFormats are tried in order; the client historically sent D/M/YYYY.
var startDateFormats = []string{"2006-01-02", "2/1/2006", "02/01/2006"}

// Validate checks raw form input against the given policy and produces a
// validated Spec or the list of field errors. It is pure: no side effects,
// and the same input always yields the same result.
func Validate(raw Raw, policy Policy) Result {
	var res Result
	spec := Spec{Instructions: strings.TrimSpace(raw.Instructions)}

	start, err := parseStartDate(raw.StartDate)
	switch {
	case strings.TrimSpace(raw.StartDate) == "":
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeMissingStartDate, Field: "start_date",
			Message: "start date is required",
		})
	case err != nil:
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeInvalidStartDate, Field: "start_date",
			Message: fmt.Sprintf("unparseable start date: %q", raw.StartDate),
		})
	default:
		spec.StartDate = start
	}

	mode, err := ParseRepeatMode(raw.Repeat)
	switch {
	case strings.TrimSpace(raw.Repeat) == "":
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeMissingRepeatMode, Field: "repeat",
			Message: "repeat mode is required",
		})
	case err != nil:
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeInvalidRepeatMode, Field: "repeat",
			Message: err.Error(),
		})
	case mode == RepeatMonthly:
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeRepeatModeUnsupported, Field: "repeat",
			Message: "monthly repeat has no defined expansion rule",
		})
	default:
		spec.Repeat = mode
	}

	switch spec.Repeat {
	case RepeatDaily:
		spec.Count = clampCount(raw.Count, MaxDailyCount, &res)
	case RepeatWeekly:
		spec.Count = clampCount(raw.Count, MaxWeeklyCount, &res)

		var days []time.Weekday
		for _, d := range raw.Weekdays {
			wd, err := ParseWeekday(d)
			if err != nil {
				res.Errors = append(res.Errors, ValidationError{
					Code: CodeInvalidWeekday, Field: "weekdays",
					Message: err.Error(),
				})
				continue
			}
			days = append(days, wd)
		}
		spec.Weekdays = normalizeWeekdays(days)
		if len(spec.Weekdays) == 0 {
			res.Errors = append(res.Errors, ValidationError{
				Code: CodeNoWeekdaysSelected, Field: "weekdays",
				Message: "select at least one day of the week",
			})
		}
	}

	var slots []TimeSlot
	for _, s := range raw.TimeSlots {
		slot, err := ParseTimeSlot(s)
		if err != nil {
			res.Errors = append(res.Errors, ValidationError{
				Code: CodeInvalidTimeSlot, Field: "time_slots",
				Message: err.Error(),
			})
			continue
		}
		slots = append(slots, slot)
	}
	spec.TimeSlots = normalizeSlots(slots)
	if policy.RequireTimeSlots && len(spec.TimeSlots) == 0 {
		res.Errors = append(res.Errors, ValidationError{
			Code: CodeNoTimeSlots, Field: "time_slots",
			Message: "select at least one time of day",
		})
	}

	if res.Valid() {
		res.Spec = spec
	}
	return res
}

func parseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// clampCount parses the stepper text field. Non-digit characters are
// stripped before parsing; an empty field falls back to the minimum without
// a notice, while an out-of-range number is clamped and reported so the
// client re-displays the corrected value.
func clampCount(raw string, max int, res *Result) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if digits == "" {
		return MinCount
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// Longer than an int; treat as over the maximum.
		n = max + 1
	}

	clamped := n
	if clamped < MinCount {
		clamped = MinCount
	}
	if clamped > max {
		clamped = max
	}
	if clamped != n {
		res.Notices = append(res.Notices, ValidationError{
			Code: CodeCountOutOfRange, Field: "count",
			Message: fmt.Sprintf("count %d adjusted to %d", n, clamped),
			Value:   strconv.Itoa(clamped),
		})
	}
	return clamped
}
