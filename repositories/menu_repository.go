package repositories

import (
	"context"

	"github.com/HSouheill/coffee_backend/config"
	"github.com/HSouheill/coffee_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepository stores menu items
type MenuRepository struct {
	contentRepository[models.MenuItem]
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		contentRepository: contentRepository[models.MenuItem]{
			collection:   db.Collection(config.MenuCollection),
			resource:     "Menu item",
			stampUpdates: true,
		},
	}
}

// PriceStats returns the average, minimum and maximum price over the whole menu.
// An empty menu yields zeros.
func (r *MenuRepository) PriceStats(ctx context.Context) (models.PriceStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "minPrice", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "maxPrice", Value: bson.D{{Key: "$max", Value: "$price"}}},
		}}},
	}

	var stats models.PriceStats
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		if err := cursor.Decode(&stats); err != nil {
			return stats, err
		}
	}
	return stats, cursor.Err()
}
