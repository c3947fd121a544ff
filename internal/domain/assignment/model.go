package assignment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

// FoodTiming is the medicine-only "to be taken" option.
type FoodTiming string

const (
	AfterFood  FoodTiming = "after_food"
	BeforeFood FoodTiming = "before_food"
)

// ParseFoodTiming parses a food timing option case-insensitively.
func ParseFoodTiming(s string) (FoodTiming, error) {
	switch FoodTiming(strings.ToLower(strings.TrimSpace(s))) {
	case AfterFood:
		return AfterFood, nil
	case BeforeFood:
		return BeforeFood, nil
	}
	return "", fmt.Errorf("unknown food timing: %q", s)
}

// Assignment pairs a catalog item with a validated schedule for one patient.
// Records are immutable once created; edits replace the record. Occurrences
// are recomputed from the schedule rather than stored, so repositories that
// persist only the schedule reproduce identical sequences on load.
type Assignment struct {
	ID          uuid.UUID             `json:"id"`
	PatientID   string                `json:"patient_id"`
	AssignedBy  string                `json:"assigned_by,omitempty"`
	Item        catalog.Item          `json:"item"`
	Schedule    schedule.Spec         `json:"schedule"`
	Occurrences []schedule.Occurrence `json:"occurrences"`
	FoodTimings []FoodTiming          `json:"food_timings,omitempty"`
	Note        string                `json:"note,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}
