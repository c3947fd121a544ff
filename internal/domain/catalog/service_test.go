package catalog

import (
	"context"
	"testing"
)

func TestSearch_SeededLists(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	exercises, err := svc.Search(context.Background(), KindExercise, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exercises) != 6 {
		t.Errorf("expected 6 seeded exercises, got %d", len(exercises))
	}

	music, _ := svc.Search(context.Background(), KindMusic, "")
	if len(music) != 6 {
		t.Errorf("expected 6 seeded music tracks, got %d", len(music))
	}

	medicine, _ := svc.Search(context.Background(), KindMedicine, "")
	if len(medicine) != 0 {
		t.Errorf("expected empty medicine catalog, got %d items", len(medicine))
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	got, err := svc.Search(context.Background(), KindExercise, "YOGA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Yoga" {
		t.Fatalf("expected Yoga, got %+v", got)
	}

	got, _ = svc.Search(context.Background(), KindMusic, "calm")
	if len(got) != 1 || got[0].Title != "Oceanic Calm" {
		t.Fatalf("expected Oceanic Calm, got %+v", got)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	got, _ := svc.Search(context.Background(), KindExercise, "swimming")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestCreateMedicine(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	item, err := svc.CreateMedicine(context.Background(), "Aspirin 100 mg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated id")
	}
	if item.Kind != KindMedicine {
		t.Errorf("expected medicine kind, got %s", item.Kind)
	}

	got, err := svc.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Aspirin 100 mg" {
		t.Errorf("expected title round-trip, got %q", got.Title)
	}
}

func TestCreateMedicine_EmptyName(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.CreateMedicine(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank medicine name")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestSchedulePolicy_PerKind(t *testing.T) {
	if !KindMedicine.SchedulePolicy().RequireTimeSlots {
		t.Error("medicine must require time slots")
	}
	if KindMusic.SchedulePolicy().RequireTimeSlots {
		t.Error("music must allow date-only schedules")
	}
	if KindExercise.SchedulePolicy().RequireTimeSlots {
		t.Error("exercise must allow date-only schedules")
	}
}
