package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func price(v float64) *float64 { return &v }

func validMenuInput() *models.MenuItemInput {
	return &models.MenuItemInput{
		Name:        models.BilingualInput{EN: "Flat White", AR: "فلات وايت"},
		Description: models.BilingualInput{EN: "Velvety milk", AR: "حليب مخملي"},
		Category:    models.BilingualInput{EN: "Coffee", AR: "قهوة"},
		Price:       price(4.5),
		Image:       "/uploads/flat-white.jpg",
		Tags:        []string{"hot", " "},
	}
}

func menuItem(name, category string, p float64, available bool) models.MenuItem {
	return models.MenuItem{
		Name:        models.LocalizedText{EN: name, AR: name},
		Description: models.LocalizedText{EN: name, AR: name},
		Category:    models.LocalizedText{EN: category, AR: category},
		Price:       p,
		Image:       "/img.jpg",
		IsAvailable: available,
	}
}

func TestMenuService_Create(t *testing.T) {
	store := &mockMenuStore{}
	svc := NewMenuService(store, zap.NewNop())

	item, err := svc.Create(context.Background(), validMenuInput())
	require.NoError(t, err)
	assert.False(t, item.ID.IsZero())
	assert.True(t, item.IsAvailable)
	assert.False(t, item.IsFeatured)
	assert.Equal(t, []string{"hot"}, item.Tags)
	assert.Len(t, store.docs, 1)
}

func TestMenuService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *models.MenuItemInput)
	}{
		{"missing arabic category", func(in *models.MenuItemInput) { in.Category.AR = "" }},
		{"blank english name", func(in *models.MenuItemInput) { in.Name.EN = "   " }},
		{"zero price", func(in *models.MenuItemInput) { in.Price = price(0) }},
		{"missing price", func(in *models.MenuItemInput) { in.Price = nil }},
		{"discount above 100", func(in *models.MenuItemInput) { in.DiscountPercentage = price(120) }},
		{"missing image", func(in *models.MenuItemInput) { in.Image = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockMenuStore{}
			svc := NewMenuService(store, zap.NewNop())
			in := validMenuInput()
			tt.mutate(in)

			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Empty(t, store.docs)
		})
	}
}

func TestMenuService_ListPagination(t *testing.T) {
	store := &mockMenuStore{}
	for i := 0; i < 25; i++ {
		store.seed(menuItem(fmt.Sprintf("Item %d", i), "Coffee", 3, true))
	}
	svc := NewMenuService(store, zap.NewNop())

	items, page, err := svc.List(context.Background(), query.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, &models.Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}, page)

	items, page, err = svc.List(context.Background(), query.ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int64(3), page.Page)

	items, page, err = svc.List(context.Background(), query.ListParams{Page: math.MaxInt64, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, items, "a page past the end is empty, not page one")
	assert.Equal(t, int64(math.MaxInt64/100), page.Page)
}

func TestMenuService_Update(t *testing.T) {
	store := &mockMenuStore{}
	ids := store.seed(menuItem("Latte", "Coffee", 4, true))
	svc := NewMenuService(store, zap.NewNop())
	ctx := context.Background()

	updated, err := svc.Update(ctx, ids[0].Hex(), &models.MenuItemUpdate{Price: price(5)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, "Latte", updated.Name.EN)

	_, err = svc.Update(ctx, ids[0].Hex(), &models.MenuItemUpdate{Category: &models.BilingualInput{EN: "Tea"}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Update(ctx, "123", &models.MenuItemUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMenuService_BulkToggleTwiceRestores(t *testing.T) {
	store := &mockMenuStore{}
	featured := menuItem("Mocha", "Coffee", 5, true)
	featured.IsFeatured = true
	ids := store.seed(featured, menuItem("Tea", "Tea", 2, true))
	svc := NewMenuService(store, zap.NewNop())
	ctx := context.Background()

	req := models.BulkRequest{Action: BulkToggleFeatured, IDs: []string{ids[0].Hex(), ids[1].Hex()}}

	res, err := svc.Bulk(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.MatchedCount)
	items := store.all()
	assert.False(t, items[0].IsFeatured)
	assert.True(t, items[1].IsFeatured)

	_, err = svc.Bulk(ctx, req)
	require.NoError(t, err)
	items = store.all()
	assert.True(t, items[0].IsFeatured)
	assert.False(t, items[1].IsFeatured)
}

func TestMenuService_BulkUpdate(t *testing.T) {
	store := &mockMenuStore{}
	ids := store.seed(menuItem("Mocha", "Coffee", 5, true), menuItem("Tea", "Tea", 2, true))
	svc := NewMenuService(store, zap.NewNop())
	ctx := context.Background()
	allIDs := []string{ids[0].Hex(), ids[1].Hex()}

	res, err := svc.Bulk(ctx, models.BulkRequest{Action: BulkUpdate, IDs: allIDs, Updates: json.RawMessage(`{"isAvailable":false}`)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ModifiedCount)
	for _, item := range store.all() {
		assert.False(t, item.IsAvailable)
	}

	tests := []struct {
		name string
		req  models.BulkRequest
	}{
		{"unknown field", models.BulkRequest{Action: BulkUpdate, IDs: allIDs, Updates: json.RawMessage(`{"$where":"1"}`)}},
		{"invalid price", models.BulkRequest{Action: BulkUpdate, IDs: allIDs, Updates: json.RawMessage(`{"price":-1}`)}},
		{"missing updates", models.BulkRequest{Action: BulkUpdate, IDs: allIDs}},
		{"empty updates", models.BulkRequest{Action: BulkUpdate, IDs: allIDs, Updates: json.RawMessage(`{}`)}},
		{"no ids", models.BulkRequest{Action: BulkDelete}},
		{"bad id", models.BulkRequest{Action: BulkDelete, IDs: []string{"xyz"}}},
		{"missing action", models.BulkRequest{IDs: allIDs}},
		{"gallery action", models.BulkRequest{Action: BulkToggleActive, IDs: allIDs}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Bulk(ctx, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	res, err = svc.Bulk(ctx, models.BulkRequest{Action: BulkDelete, IDs: allIDs})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedCount)
	assert.Empty(t, store.docs)
}

func TestMenuService_PublicGetHidesUnavailable(t *testing.T) {
	store := &mockMenuStore{}
	ids := store.seed(menuItem("Secret", "Coffee", 5, false), menuItem("Latte", "Coffee", 4, true))
	svc := NewMenuService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.PublicGet(ctx, ids[0].Hex())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	item, err := svc.PublicGet(ctx, ids[1].Hex())
	require.NoError(t, err)
	assert.Equal(t, "Latte", item.Name.EN)

	admin, err := svc.Get(ctx, ids[0].Hex())
	require.NoError(t, err)
	assert.Equal(t, "Secret", admin.Name.EN)

	items, err := svc.PublicList(ctx, "", models.LanguageEN)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMenuService_Stats(t *testing.T) {
	store := &mockMenuStore{}
	discounted := menuItem("Mocha", "Coffee", 6, true)
	discounted.IsDiscounted = true
	store.seed(discounted, menuItem("Latte", "Coffee", 4, true), menuItem("Green", "Tea", 2, false))
	svc := NewMenuService(store, zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(2), stats.AvailableItems)
	assert.Equal(t, int64(1), stats.DiscountedItems)
	assert.Equal(t, int64(0), stats.FeaturedItems)
	assert.Equal(t, []models.CategoryCount{{Category: "Coffee", Count: 2}, {Category: "Tea", Count: 1}}, stats.CategoryStats)
	assert.Equal(t, models.PriceStats{AvgPrice: 4, MinPrice: 2, MaxPrice: 6}, stats.PriceStats)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee", "Tea"}, categories)
}

func TestMenuService_DeleteMissing(t *testing.T) {
	svc := NewMenuService(&mockMenuStore{}, zap.NewNop())
	err := svc.Delete(context.Background(), "65f1c2a4b5d6e7f8a9b0c1d2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
