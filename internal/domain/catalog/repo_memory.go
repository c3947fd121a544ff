package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned when a catalog id does not resolve.
var ErrItemNotFound = errors.New("catalog item not found")

// memoryRepo is the in-memory catalog store. The exercise and music lists
// ship as seed data; medicine entries are appended as staff type them.
type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]*Item
	order []string // insertion order, ids
}

// NewMemoryRepo creates an in-memory catalog seeded with the fixed exercise
// and music lists.
func NewMemoryRepo() Repository {
	r := &memoryRepo{items: make(map[string]*Item)}
	for _, title := range []string{
		"Morning Walk", "Yoga", "Stretching",
		"Light Cardio", "Breathing Exercises", "Balance Training",
	} {
		r.seed(KindExercise, title)
	}
	for _, title := range []string{
		"Serene Melodies", "Nature's Embrace", "Oceanic Calm",
		"Forest Whispers", "Urban Chill", "Desert Mirage",
	} {
		r.seed(KindMusic, title)
	}
	return r
}

func (r *memoryRepo) seed(kind Kind, title string) {
	item := &Item{ID: uuid.New().String(), Kind: kind, Title: title}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *memoryRepo) ListByKind(_ context.Context, kind Kind) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Item
	for _, id := range r.order {
		if item := r.items[id]; item.Kind == kind {
			copy := *item
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memoryRepo) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	stored := *item
	r.items[item.ID] = &stored
	r.order = append(r.order, item.ID)
	return nil
}
