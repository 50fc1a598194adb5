package services

import (
	"context"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GalleryService manages gallery images for the admin and storefront APIs
type GalleryService struct {
	store  GalleryStore
	logger *zap.Logger
	now    func() time.Time
}

func NewGalleryService(store GalleryStore, logger *zap.Logger) *GalleryService {
	return &GalleryService{store: store, logger: logger, now: time.Now}
}

func (s *GalleryService) List(ctx context.Context, p query.ListParams) ([]models.GalleryItem, *models.Pagination, error) {
	return listPage[models.GalleryItem](ctx, s.store, query.Gallery, p)
}

func (s *GalleryService) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, bson.M{"_id": oid})
}

func (s *GalleryService) Create(ctx context.Context, in *models.GalleryItemInput) (*models.GalleryItem, error) {
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

func (s *GalleryService) Update(ctx context.Context, id string, u *models.GalleryItemUpdate) (*models.GalleryItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u.Normalize()
	if err := Validate(u); err != nil {
		return nil, err
	}

	set := u.SetDocument()
	if len(set) == 0 {
		return s.store.FindOne(ctx, bson.M{"_id": oid})
	}
	return s.store.UpdateByID(ctx, oid, set)
}

func (s *GalleryService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, oid); err != nil {
		return err
	}
	s.logger.Info("Gallery item deleted", zap.String("id", id))
	return nil
}

// Bulk applies one action to many items with a single write
func (s *GalleryService) Bulk(ctx context.Context, req models.BulkRequest) (*models.BulkResult, error) {
	if req.Action == "" {
		return nil, apperrors.Validation("Invalid bulk operation parameters")
	}
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case BulkDelete:
		s.logger.Info("Bulk delete", zap.String("collection", "gallery"), zap.Int("count", len(ids)))
		return bulkDelete[models.GalleryItem](ctx, s.store, req.Action, ids)
	case BulkUpdate:
		if len(req.Updates) == 0 || string(req.Updates) == "null" {
			return nil, apperrors.Validation("Updates required for bulk update operation")
		}
		var u models.GalleryItemUpdate
		if err := decodeStrict(req.Updates, &u); err != nil {
			return nil, err
		}
		u.Normalize()
		if err := Validate(&u); err != nil {
			return nil, err
		}
		return bulkSet[models.GalleryItem](ctx, s.store, req.Action, ids, u.SetDocument())
	case BulkToggleActive:
		return bulkToggle[models.GalleryItem](ctx, s.store, req.Action, ids, "isActive")
	}
	return nil, apperrors.Validation("Invalid action")
}

// Reorder gives each listed item order equal to its position
func (s *GalleryService) Reorder(ctx context.Context, req models.ReorderRequest) error {
	if len(req.Items) == 0 {
		return apperrors.Validation("Items array is required")
	}
	ids := make([]primitive.ObjectID, 0, len(req.Items))
	for _, item := range req.Items {
		oid, err := parseID(item.ID)
		if err != nil {
			return err
		}
		ids = append(ids, oid)
	}

	_, err := s.store.Reorder(ctx, ids)
	return err
}

func (s *GalleryService) Stats(ctx context.Context) (*models.GalleryStats, error) {
	var (
		stats models.GalleryStats
		err   error
	)
	if stats.TotalItems, err = s.store.Count(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.ActiveItems, err = s.store.Count(ctx, bson.M{"isActive": true}); err != nil {
		return nil, err
	}
	if stats.CategoryStats, err = s.store.CategoryCounts(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *GalleryService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "category.en", nil)
}

func (s *GalleryService) PublicList(ctx context.Context, category string, lang models.Language) ([]models.GalleryItem, error) {
	return s.store.Find(ctx, query.PublicList(query.Gallery, category, lang))
}

// PublicGet returns an active item; hidden items are reported as missing
func (s *GalleryService) PublicGet(ctx context.Context, id string) (*models.GalleryItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, bson.M{"_id": oid, "isActive": true})
}

func (s *GalleryService) PublicCategories(ctx context.Context, lang models.Language) ([]string, error) {
	return s.store.Distinct(ctx, "category."+string(lang), bson.M{"isActive": true})
}
