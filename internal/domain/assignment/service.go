package assignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

var (
	// ErrInvalidSchedule means CreateAssignment received a spec that never
	// went through schedule.Validate. The UI blocks this upstream, so it is
	// a caller defect rather than a user-facing condition.
	ErrInvalidSchedule = errors.New("schedule spec is not validated")
	// ErrNoItemSelected means no catalog item was chosen before saving.
	ErrNoItemSelected = errors.New("no catalog item selected")
	// ErrMissingPatient means the assignment carries no patient identity.
	ErrMissingPatient = errors.New("patient id is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries everything needed to commit one assignment.
type CreateParams struct {
	PatientID   string
	AssignedBy  string
	Item        catalog.Item
	Spec        schedule.Spec
	FoodTimings []FoodTiming
	Note        string
}

// Create builds an immutable Assignment from a selected item and a validated
// spec, expands its occurrences, and appends it to the collection. The spec
// invariants are re-checked defensively; a spec that could not have come from
// schedule.Validate fails with ErrInvalidSchedule.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Assignment, error) {
	if p.Item.ID == "" {
		return nil, ErrNoItemSelected
	}
	if strings.TrimSpace(p.PatientID) == "" {
		return nil, ErrMissingPatient
	}
	if !specValidated(p.Spec) {
		return nil, ErrInvalidSchedule
	}

	occ, err := schedule.Expand(p.Spec)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	a := &Assignment{
		ID:          uuid.New(),
		PatientID:   p.PatientID,
		AssignedBy:  p.AssignedBy,
		Item:        p.Item,
		Schedule:    p.Spec,
		Occurrences: occ,
		FoodTimings: p.FoodTimings,
		Note:        strings.TrimSpace(p.Note),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// specValidated re-checks the Spec invariants that Validate guarantees.
func specValidated(spec schedule.Spec) bool {
	if spec.StartDate.IsZero() {
		return false
	}
	switch spec.Repeat {
	case schedule.RepeatDaily:
		return spec.Count >= schedule.MinCount && spec.Count <= schedule.MaxDailyCount
	case schedule.RepeatWeekly:
		return spec.Count >= schedule.MinCount &&
			spec.Count <= schedule.MaxWeeklyCount &&
			len(spec.Weekdays) > 0
	}
	return false
}

// List returns the patient's assignments whose item title contains the
// filter text case-insensitively, in insertion order. An empty filter
// returns everything.
func (s *Service) List(ctx context.Context, patientID, filter string) ([]*Assignment, error) {
	all, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return all, nil
	}
	var out []*Assignment
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Item.Title), filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get resolves a single assignment by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	return s.repo.GetByID(ctx, id)
}

// Remove deletes by id. Removing an id that is not present is a no-op, not
// an error.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Remove(ctx, id)
}
