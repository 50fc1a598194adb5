package services

import (
	"context"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Menu bulk actions
const (
	BulkDelete             = "delete"
	BulkUpdate             = "update"
	BulkToggleAvailability = "toggle-availability"
	BulkToggleFeatured     = "toggle-featured"
	BulkToggleActive       = "toggle-active"
)

// MenuService manages menu items for the admin and storefront APIs
type MenuService struct {
	store  MenuStore
	logger *zap.Logger
	now    func() time.Time
}

func NewMenuService(store MenuStore, logger *zap.Logger) *MenuService {
	return &MenuService{store: store, logger: logger, now: time.Now}
}

// List returns one page of menu items for the admin table
func (s *MenuService) List(ctx context.Context, p query.ListParams) ([]models.MenuItem, *models.Pagination, error) {
	return listPage[models.MenuItem](ctx, s.store, query.Menu, p)
}

// Get returns any menu item by id, available or not
func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, bson.M{"_id": oid})
}

// Create validates and stores a new menu item
func (s *MenuService) Create(ctx context.Context, in *models.MenuItemInput) (*models.MenuItem, error) {
	in.Normalize()
	if err := Validate(in); err != nil {
		return nil, err
	}

	item := in.ToModel(s.now())
	id, err := s.store.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// Update applies the supplied fields only
func (s *MenuService) Update(ctx context.Context, id string, u *models.MenuItemUpdate) (*models.MenuItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u.Normalize()
	if err := Validate(u); err != nil {
		return nil, err
	}

	set := u.SetDocument(s.now())
	if len(set) == 0 {
		return s.store.FindOne(ctx, bson.M{"_id": oid})
	}
	return s.store.UpdateByID(ctx, oid, set)
}

// Delete removes a menu item
func (s *MenuService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, oid); err != nil {
		return err
	}
	s.logger.Info("Menu item deleted", zap.String("id", id))
	return nil
}

// Bulk applies one action to many items with a single write
func (s *MenuService) Bulk(ctx context.Context, req models.BulkRequest) (*models.BulkResult, error) {
	if req.Action == "" {
		return nil, apperrors.Validation("Invalid bulk operation parameters")
	}
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case BulkDelete:
		s.logger.Info("Bulk delete", zap.String("collection", "menu"), zap.Int("count", len(ids)))
		return bulkDelete[models.MenuItem](ctx, s.store, req.Action, ids)
	case BulkUpdate:
		if len(req.Updates) == 0 || string(req.Updates) == "null" {
			return nil, apperrors.Validation("Updates required for bulk update operation")
		}
		var u models.MenuItemUpdate
		if err := decodeStrict(req.Updates, &u); err != nil {
			return nil, err
		}
		u.Normalize()
		if err := Validate(&u); err != nil {
			return nil, err
		}
		return bulkSet[models.MenuItem](ctx, s.store, req.Action, ids, u.SetDocument(s.now()))
	case BulkToggleAvailability:
		return bulkToggle[models.MenuItem](ctx, s.store, req.Action, ids, "isAvailable")
	case BulkToggleFeatured:
		return bulkToggle[models.MenuItem](ctx, s.store, req.Action, ids, "isFeatured")
	}
	return nil, apperrors.Validation("Invalid action")
}

// Stats summarises the menu for the dashboard
func (s *MenuService) Stats(ctx context.Context) (*models.MenuStats, error) {
	var (
		stats models.MenuStats
		err   error
	)
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.TotalItems, bson.M{}},
		{&stats.AvailableItems, bson.M{"isAvailable": true}},
		{&stats.FeaturedItems, bson.M{"isFeatured": true}},
		{&stats.DiscountedItems, bson.M{"isDiscounted": true}},
	}
	for _, c := range counts {
		if *c.dst, err = s.store.Count(ctx, c.filter); err != nil {
			return nil, err
		}
	}

	if stats.CategoryStats, err = s.store.CategoryCounts(ctx); err != nil {
		return nil, err
	}
	if stats.PriceStats, err = s.store.PriceStats(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Categories lists the English category names in use
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "category.en", nil)
}

// PublicList returns the available items, optionally in one category
func (s *MenuService) PublicList(ctx context.Context, category string, lang models.Language) ([]models.MenuItem, error) {
	return s.store.Find(ctx, query.PublicList(query.Menu, category, lang))
}

// PublicGet returns an available item; hidden items are reported as missing
func (s *MenuService) PublicGet(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, bson.M{"_id": oid, "isAvailable": true})
}

// PublicCategories lists the category names of available items in lang
func (s *MenuService) PublicCategories(ctx context.Context, lang models.Language) ([]string, error) {
	return s.store.Distinct(ctx, "category."+string(lang), bson.M{"isAvailable": true})
}

// Discounted feeds the storefront hero slider
func (s *MenuService) Discounted(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.Find(ctx, query.Discounted())
}

// Featured returns the highlighted items
func (s *MenuService) Featured(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.Find(ctx, query.Featured())
}
