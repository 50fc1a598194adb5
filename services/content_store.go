package services

import (
	"context"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentStore is the persistence shared by menu and gallery items
type ContentStore[T any] interface {
	Find(ctx context.Context, q query.Query) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	UpdateMany(ctx context.Context, ids []primitive.ObjectID, set bson.M) (matched, modified int64, err error)
	// ToggleMany negates field on each listed document
	ToggleMany(ctx context.Context, ids []primitive.ObjectID, field string) (matched, modified int64, err error)
	Distinct(ctx context.Context, field string, filter bson.M) ([]string, error)
	CategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
}

// MenuStore adds price statistics
type MenuStore interface {
	ContentStore[models.MenuItem]
	PriceStats(ctx context.Context) (models.PriceStats, error)
}

// GalleryStore adds ordering
type GalleryStore interface {
	ContentStore[models.GalleryItem]
	Reorder(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// listPage runs an admin list query with its total count
func listPage[T any](ctx context.Context, store ContentStore[T], coll query.Collection, p query.ListParams) ([]T, *models.Pagination, error) {
	q := query.AdminList(coll, p)

	items, err := store.Find(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	total, err := store.Count(ctx, q.Filter)
	if err != nil {
		return nil, nil, err
	}

	page := q.Skip/q.Limit + 1
	return items, &models.Pagination{
		Page:  page,
		Limit: q.Limit,
		Total: total,
		Pages: query.PageCount(total, q.Limit),
	}, nil
}

// Bulk actions shared by both entities
func bulkDelete[T any](ctx context.Context, store ContentStore[T], action string, ids []primitive.ObjectID) (*models.BulkResult, error) {
	deleted, err := store.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &models.BulkResult{Action: action, DeletedCount: deleted}, nil
}

func bulkSet[T any](ctx context.Context, store ContentStore[T], action string, ids []primitive.ObjectID, set bson.M) (*models.BulkResult, error) {
	if len(set) == 0 {
		return nil, apperrors.Validation("Updates required for bulk update operation")
	}
	matched, modified, err := store.UpdateMany(ctx, ids, set)
	if err != nil {
		return nil, err
	}
	return &models.BulkResult{Action: action, MatchedCount: matched, ModifiedCount: modified}, nil
}

func bulkToggle[T any](ctx context.Context, store ContentStore[T], action string, ids []primitive.ObjectID, field string) (*models.BulkResult, error) {
	matched, modified, err := store.ToggleMany(ctx, ids, field)
	if err != nil {
		return nil, err
	}
	return &models.BulkResult{Action: action, MatchedCount: matched, ModifiedCount: modified}, nil
}
