package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by GetByID for an unknown assignment id. Remove
// deliberately does not return it: removing an absent id is a no-op.
var ErrNotFound = errors.New("assignment not found")

// Repository stores committed assignments in insertion order. Listing always
// returns records oldest-first, matching the display order of the View tab.
type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Assignment, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
