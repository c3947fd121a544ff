package assignment

import (
	"context"
	"errors"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

// State is the assign-flow position of one screen's session.
type State string

const (
	StateIdle         State = "idle"
	StateItemSelected State = "item_selected"
	StateConfiguring  State = "configuring"
)

// ErrNotConfigured is returned when Save is called before any schedule input
// was provided for the selected item.
var ErrNotConfigured = errors.New("schedule not configured")

// Session models the in-progress configuration of one assign screen:
// Idle -> ItemSelected -> Configuring -> (saved | cancelled) -> Idle.
// Selecting a new item while one is selected replaces the in-progress
// configuration; nothing is committed until Save succeeds. Calls must be
// serialized by the caller (one user's worth of UI events), matching the
// single-writer discipline of the underlying collection.
type Session struct {
	svc        *Service
	patientID  string
	assignedBy string

	state  State
	item   *catalog.Item
	raw    schedule.Raw
	result schedule.Result
	extras SessionExtras
}

// SessionExtras carries the medicine-only form fields alongside the schedule.
type SessionExtras struct {
	FoodTimings []FoodTiming
	Note        string
}

// NewSession starts an idle assign-flow session for one patient and the
// staff member driving the screen.
func NewSession(svc *Service, patientID, assignedBy string) *Session {
	return &Session{svc: svc, patientID: patientID, assignedBy: assignedBy, state: StateIdle}
}

// State reports the current flow position.
func (s *Session) State() State { return s.state }

// SelectedItem returns the currently selected catalog item, or nil.
func (s *Session) SelectedItem() *catalog.Item {
	if s.item == nil {
		return nil
	}
	copy := *s.item
	return &copy
}

// Draft returns the raw schedule input as last submitted, for re-rendering
// the configuration panel.
func (s *Session) Draft() schedule.Raw { return s.raw }

// Errors returns the validation errors of the last SetSchedule call, for
// inline field rendering. Empty when the draft validates.
func (s *Session) Errors() []schedule.ValidationError { return s.result.Errors }

// Notices returns the non-blocking corrections (count clamping) of the last
// SetSchedule call.
func (s *Session) Notices() []schedule.ValidationError { return s.result.Notices }

// ToggleSelect selects the item, or deselects it when it is already the
// current selection. Either way any in-progress schedule configuration is
// discarded: selection changes always restart the flow.
func (s *Session) ToggleSelect(item catalog.Item) {
	if s.item != nil && s.item.ID == item.ID {
		s.reset()
		return
	}
	s.reset()
	selected := item
	s.item = &selected
	s.state = StateItemSelected
}

// SetSchedule records the configuration panel input and validates it against
// the selected item's slot policy. The result is returned for inline error
// display; an invalid draft keeps the session in Configuring so the user can
// correct it.
func (s *Session) SetSchedule(raw schedule.Raw, extras SessionExtras) (schedule.Result, error) {
	if s.item == nil {
		return schedule.Result{}, ErrNoItemSelected
	}
	s.raw = raw
	s.extras = extras
	s.result = schedule.Validate(raw, s.item.Kind.SchedulePolicy())
	s.state = StateConfiguring
	return s.result, nil
}

// CanSave reports whether the save control should be enabled: an item is
// selected and the current draft validates.
func (s *Session) CanSave() bool {
	return s.item != nil && s.state == StateConfiguring && s.result.Valid()
}

// Save commits the configured assignment and returns the session to Idle.
func (s *Session) Save(ctx context.Context) (*Assignment, error) {
	a, err := s.save(ctx)
	if err != nil {
		return nil, err
	}
	s.reset()
	return a, nil
}

// SaveAndContinue commits the configured assignment but keeps the item
// selected with a cleared schedule, for the "add another" flow.
func (s *Session) SaveAndContinue(ctx context.Context) (*Assignment, error) {
	a, err := s.save(ctx)
	if err != nil {
		return nil, err
	}
	item := *s.item
	s.reset()
	s.item = &item
	s.state = StateItemSelected
	return a, nil
}

func (s *Session) save(ctx context.Context) (*Assignment, error) {
	if s.item == nil {
		return nil, ErrNoItemSelected
	}
	if s.state != StateConfiguring {
		return nil, ErrNotConfigured
	}
	if !s.result.Valid() {
		return nil, ErrInvalidSchedule
	}
	return s.svc.Create(ctx, CreateParams{
		PatientID:   s.patientID,
		AssignedBy:  s.assignedBy,
		Item:        *s.item,
		Spec:        s.result.Spec,
		FoodTimings: s.extras.FoodTimings,
		Note:        s.extras.Note,
	})
}

// Cancel discards the in-progress configuration without side effects.
func (s *Session) Cancel() { s.reset() }

func (s *Session) reset() {
	s.state = StateIdle
	s.item = nil
	s.raw = schedule.Raw{}
	s.result = schedule.Result{}
	s.extras = SessionExtras{}
}
