package services

import (
	"context"

	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
)

// MenuFinder is the read side of the menu store
type MenuFinder interface {
	Find(ctx context.Context, q query.Query) ([]models.MenuItem, error)
}

// SearchService answers storefront menu searches
type SearchService struct {
	menu MenuFinder
}

func NewSearchService(menu MenuFinder) *SearchService {
	return &SearchService{menu: menu}
}

// Search matches available items by text, category and price range
func (s *SearchService) Search(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error) {
	return s.menu.Find(ctx, query.Search(p))
}

// Advanced adds flag, allergen and tag filters
func (s *SearchService) Advanced(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error) {
	return s.menu.Find(ctx, query.AdvancedSearch(p))
}

// Suggestions returns distinct item names in lang, in match order
func (s *SearchService) Suggestions(ctx context.Context, q string, lang models.Language) ([]string, error) {
	names := make([]string, 0)

	qry, ok := query.Suggestions(q, lang)
	if !ok {
		return names, nil
	}

	items, err := s.menu.Find(ctx, qry)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		name := item.Name.In(lang)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
