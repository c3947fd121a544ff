package assignment

import (
	"context"
	"testing"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

func newTestSession() (*Session, *Service) {
	svc := NewService(NewMemoryRepo())
	return NewSession(svc, "patient-1", "nurse-7"), svc
}

func weeklyRaw(weekdays ...string) schedule.Raw {
	return schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "weekly",
		Count:     "2",
		Weekdays:  weekdays,
	}
}

func TestSession_HappyPath(t *testing.T) {
	sess, svc := newTestSession()
	if sess.State() != StateIdle {
		t.Fatalf("expected idle, got %s", sess.State())
	}

	item := testItem(catalog.KindExercise, "Yoga")
	sess.ToggleSelect(item)
	if sess.State() != StateItemSelected {
		t.Fatalf("expected item_selected, got %s", sess.State())
	}

	res, err := sess.SetSchedule(weeklyRaw("Mon", "Wed"), SessionExtras{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if !sess.CanSave() {
		t.Fatal("expected save enabled")
	}

	a, err := sess.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.State() != StateIdle {
		t.Errorf("expected idle after save, got %s", sess.State())
	}

	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("expected saved assignment in collection, got %+v", list)
	}
}

func TestSession_SaveWithoutItem(t *testing.T) {
	sess, _ := newTestSession()
	if _, err := sess.Save(context.Background()); err != ErrNoItemSelected {
		t.Fatalf("expected ErrNoItemSelected, got %v", err)
	}
}

func TestSession_SaveWithoutConfiguring(t *testing.T) {
	sess, _ := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindMusic, "Urban Chill"))
	if _, err := sess.Save(context.Background()); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSession_InvalidScheduleBlocksSave(t *testing.T) {
	sess, svc := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindExercise, "Stretching"))

	// Weekly with no weekdays: save must stay disabled.
	res, err := sess.SetSchedule(weeklyRaw(), SessionExtras{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Valid() {
		t.Fatal("expected invalid result")
	}
	if sess.CanSave() {
		t.Fatal("expected save disabled")
	}
	if len(sess.Errors()) == 0 {
		t.Fatal("expected inline errors exposed")
	}
	if _, err := sess.Save(context.Background()); err != ErrInvalidSchedule {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}

	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 0 {
		t.Errorf("nothing must be committed, got %d items", len(list))
	}
}

func TestSession_MedicinePolicyApplied(t *testing.T) {
	sess, _ := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindMedicine, "Aspirin 100 mg"))

	// No time slots: medicine requires at least one.
	res, _ := sess.SetSchedule(schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "daily",
		Count:     "3",
	}, SessionExtras{})
	if res.Valid() {
		t.Fatal("expected no_time_slots error for medicine")
	}

	res, _ = sess.SetSchedule(schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "daily",
		Count:     "3",
		TimeSlots: []string{"Morning"},
	}, SessionExtras{FoodTimings: []FoodTiming{AfterFood}, Note: "with water"})
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}

	a, err := sess.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.FoodTimings) != 1 || a.FoodTimings[0] != AfterFood {
		t.Errorf("expected food timing carried, got %+v", a.FoodTimings)
	}
	if a.Note != "with water" {
		t.Errorf("expected note carried, got %q", a.Note)
	}
}

func TestSession_ToggleDeselects(t *testing.T) {
	sess, _ := newTestSession()
	item := testItem(catalog.KindExercise, "Yoga")

	sess.ToggleSelect(item)
	sess.ToggleSelect(item)
	if sess.State() != StateIdle {
		t.Errorf("expected idle after re-toggle, got %s", sess.State())
	}
	if sess.SelectedItem() != nil {
		t.Error("expected no selection after re-toggle")
	}
}

func TestSession_SelectingNewItemReplacesConfig(t *testing.T) {
	sess, _ := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindExercise, "Yoga"))
	if _, err := sess.SetSchedule(weeklyRaw("Mon"), SessionExtras{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := testItem(catalog.KindExercise, "Light Cardio")
	sess.ToggleSelect(other)
	if sess.State() != StateItemSelected {
		t.Fatalf("expected item_selected, got %s", sess.State())
	}
	if got := sess.SelectedItem(); got == nil || got.ID != other.ID {
		t.Fatal("expected new selection to replace the old one")
	}
	if sess.Draft().Repeat != "" {
		t.Error("expected in-progress schedule discarded")
	}
}

func TestSession_CancelDiscards(t *testing.T) {
	sess, svc := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindMusic, "Oceanic Calm"))
	if _, err := sess.SetSchedule(weeklyRaw("Fri"), SessionExtras{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess.Cancel()
	if sess.State() != StateIdle {
		t.Errorf("expected idle after cancel, got %s", sess.State())
	}
	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 0 {
		t.Errorf("cancel must have no side effects, got %d items", len(list))
	}
}

func TestSession_SaveAndContinueKeepsItem(t *testing.T) {
	sess, svc := newTestSession()
	item := testItem(catalog.KindMedicine, "Aspirin 100 mg")
	sess.ToggleSelect(item)
	if _, err := sess.SetSchedule(schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "daily",
		Count:     "2",
		TimeSlots: []string{"Noon"},
	}, SessionExtras{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sess.SaveAndContinue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.State() != StateItemSelected {
		t.Errorf("expected item_selected after save-and-continue, got %s", sess.State())
	}
	if got := sess.SelectedItem(); got == nil || got.ID != item.ID {
		t.Error("expected item still selected")
	}
	if len(sess.Errors()) != 0 || sess.Draft().StartDate != "" {
		t.Error("expected schedule draft cleared")
	}

	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 1 {
		t.Fatalf("expected one committed assignment, got %d", len(list))
	}
}

func TestSession_NoticesExposed(t *testing.T) {
	sess, _ := newTestSession()
	sess.ToggleSelect(testItem(catalog.KindExercise, "Yoga"))

	res, _ := sess.SetSchedule(schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "daily",
		Count:     "45",
	}, SessionExtras{})
	if !res.Valid() {
		t.Fatalf("clamping must not block: %+v", res.Errors)
	}
	if len(sess.Notices()) != 1 || sess.Notices()[0].Value != "30" {
		t.Errorf("expected clamp notice with corrected value, got %+v", sess.Notices())
	}
}
