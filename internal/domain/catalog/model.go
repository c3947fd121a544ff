package catalog

import (
	"fmt"
	"strings"

	"github.com/careassign/careassign/internal/domain/schedule"
)

// Kind identifies the activity category an item belongs to. Each kind maps
// to one of the staff app's assign flows.
type Kind string

const (
	KindMedicine Kind = "medicine"
	KindMusic    Kind = "music"
	KindExercise Kind = "exercise"
)

// AllKinds lists the selectable activity categories.
var AllKinds = []Kind{KindMedicine, KindMusic, KindExercise}

// ParseKind parses an activity kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMedicine:
		return KindMedicine, nil
	case KindMusic:
		return KindMusic, nil
	case KindExercise:
		return KindExercise, nil
	}
	return "", fmt.Errorf("unknown catalog kind: %q", s)
}

// SchedulePolicy returns the validation policy for schedules attached to
// this kind. Medicine requires at least one time of day; music and exercise
// may be scheduled date-only.
func (k Kind) SchedulePolicy() schedule.Policy {
	return schedule.Policy{RequireTimeSlots: k == KindMedicine}
}

// Item is a selectable catalog entry: a fixed exercise or music track, or a
// free-text medicine name created on demand. The core only ever holds the
// id and display title once an item is selected.
type Item struct {
	ID    string  `json:"id"`
	Kind  Kind    `json:"kind"`
	Title string  `json:"title"`
	Image *string `json:"image,omitempty"`
}
