package repositories

import (
	"context"

	"github.com/HSouheill/coffee_backend/config"
	"github.com/HSouheill/coffee_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GalleryRepository stores gallery images
type GalleryRepository struct {
	contentRepository[models.GalleryItem]
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{
		contentRepository: contentRepository[models.GalleryItem]{
			collection: db.Collection(config.GalleryCollection),
			resource:   "Gallery item",
		},
	}
}

// Reorder sets order = position for each id in a single bulk write
func (r *GalleryRepository) Reorder(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(ids))
	for i, id := range ids {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": i}}))
	}

	res, err := r.collection.BulkWrite(ctx, writes)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
