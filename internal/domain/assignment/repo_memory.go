package assignment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memoryRepo keeps assignments in an ordered in-memory collection. This is
// the primary mode of the service: one session's worth of assignments under
// a single-writer discipline, guarded here so concurrent readers are safe.
type memoryRepo struct {
	mu    sync.RWMutex
	items []*Assignment
}

// NewMemoryRepo creates an empty in-memory assignment store.
func NewMemoryRepo() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, a *Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *a
	r.items = append(r.items, &stored)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.ID == id {
			copy := *a
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) ListByPatient(_ context.Context, patientID string) ([]*Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Assignment
	for _, a := range r.items {
		if a.PatientID == patientID {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}

// Remove deletes by id, preserving the order of the remaining records. An
// unknown id leaves the collection untouched and returns nil.
func (r *memoryRepo) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}
