package catalog

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get resolves a catalog item by id.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns the items of a kind whose title contains the filter text,
// case-insensitively, preserving the catalog's fixed order. An empty filter
// returns the whole list.
func (s *Service) Search(ctx context.Context, kind Kind, filter string) ([]*Item, error) {
	items, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return items, nil
	}
	var out []*Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), filter) {
			out = append(out, item)
		}
	}
	return out, nil
}

// CreateMedicine registers a free-text medicine name as a catalog item so an
// assignment can reference it by id like any fixed entry.
func (s *Service) CreateMedicine(ctx context.Context, title string) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("medicine name is required")
	}
	item := &Item{Kind: KindMedicine, Title: title}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
