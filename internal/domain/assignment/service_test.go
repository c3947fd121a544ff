package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
)

func testItem(kind catalog.Kind, title string) catalog.Item {
	return catalog.Item{ID: uuid.New().String(), Kind: kind, Title: title}
}

func validSpec(t *testing.T, raw schedule.Raw) schedule.Spec {
	t.Helper()
	res := schedule.Validate(raw, schedule.Policy{})
	if !res.Valid() {
		t.Fatalf("unexpected validation errors: %+v", res.Errors)
	}
	return res.Spec
}

func dailySpec(t *testing.T) schedule.Spec {
	return validSpec(t, schedule.Raw{
		StartDate: "2025-01-06",
		Repeat:    "daily",
		Count:     "3",
		TimeSlots: []string{"Morning", "Evening"},
	})
}

func TestCreate_RoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	item := testItem(catalog.KindExercise, "Yoga")
	spec := dailySpec(t)

	a, err := svc.Create(context.Background(), CreateParams{
		PatientID:  "patient-1",
		AssignedBy: "nurse-7",
		Item:       item,
		Spec:       spec,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if len(a.Occurrences) != 6 {
		t.Errorf("expected 6 occurrences, got %d", len(a.Occurrences))
	}

	list, err := svc.List(context.Background(), "patient-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one assignment, got %d", len(list))
	}
	if list[0].Item.ID != item.ID {
		t.Errorf("item id mismatch: %s vs %s", list[0].Item.ID, item.ID)
	}

	// Listed occurrences must equal a fresh expansion of the same spec.
	want, _ := schedule.Expand(spec)
	if len(list[0].Occurrences) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(list[0].Occurrences))
	}
	for i := range want {
		if !list[0].Occurrences[i].Date.Equal(want[i].Date) || list[0].Occurrences[i].Slot != want[i].Slot {
			t.Errorf("occurrence %d differs from expansion", i)
		}
	}
}

func TestCreate_NoItem(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Create(context.Background(), CreateParams{
		PatientID: "patient-1",
		Spec:      dailySpec(t),
	})
	if err != ErrNoItemSelected {
		t.Fatalf("expected ErrNoItemSelected, got %v", err)
	}
}

func TestCreate_MissingPatient(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Create(context.Background(), CreateParams{
		Item: testItem(catalog.KindMusic, "Oceanic Calm"),
		Spec: dailySpec(t),
	})
	if err != ErrMissingPatient {
		t.Fatalf("expected ErrMissingPatient, got %v", err)
	}
}

func TestCreate_UnvalidatedSpecRejected(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	cases := []schedule.Spec{
		{}, // zero value
		{StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Repeat: schedule.RepeatDaily, Count: 45},
		{StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Repeat: schedule.RepeatWeekly, Count: 2},
		{StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Repeat: schedule.RepeatMonthly, Count: 1},
	}
	for i, spec := range cases {
		_, err := svc.Create(context.Background(), CreateParams{
			PatientID: "patient-1",
			Item:      testItem(catalog.KindExercise, "Stretching"),
			Spec:      spec,
		})
		if err != ErrInvalidSchedule {
			t.Errorf("case %d: expected ErrInvalidSchedule, got %v", i, err)
		}
	}
}

func TestList_FilterAndOrder(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	spec := dailySpec(t)

	for _, title := range []string{"Morning Walk", "Yoga", "Morning Stretch"} {
		_, err := svc.Create(context.Background(), CreateParams{
			PatientID: "patient-1",
			Item:      testItem(catalog.KindExercise, title),
			Spec:      spec,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all, _ := svc.List(context.Background(), "patient-1", "")
	if len(all) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(all))
	}
	if all[0].Item.Title != "Morning Walk" || all[2].Item.Title != "Morning Stretch" {
		t.Error("insertion order not preserved")
	}

	filtered, _ := svc.List(context.Background(), "patient-1", "morning")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(filtered))
	}
	if filtered[0].Item.Title != "Morning Walk" || filtered[1].Item.Title != "Morning Stretch" {
		t.Error("filter broke insertion order")
	}

	other, _ := svc.List(context.Background(), "patient-2", "")
	if len(other) != 0 {
		t.Errorf("expected no assignments for other patient, got %d", len(other))
	}
}

func TestRemove_AbsentIDIsNoOp(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	spec := dailySpec(t)

	for _, title := range []string{"Yoga", "Balance Training"} {
		if _, err := svc.Create(context.Background(), CreateParams{
			PatientID: "patient-1",
			Item:      testItem(catalog.KindExercise, title),
			Spec:      spec,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := svc.Remove(context.Background(), uuid.New()); err != nil {
		t.Fatalf("remove of absent id must not error: %v", err)
	}
	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 2 {
		t.Fatalf("expected collection untouched, got %d items", len(list))
	}
}

func TestRemove_ExistingID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	a, err := svc.Create(context.Background(), CreateParams{
		PatientID: "patient-1",
		Item:      testItem(catalog.KindMusic, "Forest Whispers"),
		Spec:      dailySpec(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Remove(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ := svc.List(context.Background(), "patient-1", "")
	if len(list) != 0 {
		t.Errorf("expected empty collection, got %d items", len(list))
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Get(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
