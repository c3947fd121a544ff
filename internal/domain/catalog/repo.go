package catalog

import "context"

// Repository provides read access to catalog items plus creation of ad-hoc
// medicine entries. The fixed lists are reference data owned elsewhere; the
// service only needs lookup and title search.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByKind(ctx context.Context, kind Kind) ([]*Item, error)
	Create(ctx context.Context, item *Item) error
}
