package repositories

import (
	"context"
	"sort"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// contentRepository holds the operations shared by the menu and gallery collections
type contentRepository[T any] struct {
	collection *mongo.Collection
	resource   string
	// stampUpdates adds updatedAt to pipeline toggles
	stampUpdates bool
}

// Find runs q and decodes every match
func (r *contentRepository[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of documents matching filter
func (r *contentRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// FindOne returns the first match or a not-found error
func (r *contentRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var item T
	if err := r.collection.FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, apperrors.FromMongo(err, r.resource)
	}
	return &item, nil
}

// Insert stores doc and returns its generated id
func (r *contentRepository[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, apperrors.FromMongo(err, r.resource)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateByID applies set and returns the updated document
func (r *contentRepository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item T
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		return nil, apperrors.FromMongo(err, r.resource)
	}
	return &item, nil
}

// DeleteByID removes one document
func (r *contentRepository[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(r.resource)
	}
	return nil
}

// DeleteMany removes every listed document
func (r *contentRepository[T]) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, idsFilter(ids))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateMany applies the same $set to every listed document
func (r *contentRepository[T]) UpdateMany(ctx context.Context, ids []primitive.ObjectID, set bson.M) (int64, int64, error) {
	res, err := r.collection.UpdateMany(ctx, idsFilter(ids), bson.M{"$set": set})
	if err != nil {
		return 0, 0, apperrors.FromMongo(err, r.resource)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// ToggleMany flips a boolean field on every listed document in one pipeline update,
// so each document is negated from its own current value.
func (r *contentRepository[T]) ToggleMany(ctx context.Context, ids []primitive.ObjectID, field string) (int64, int64, error) {
	set := bson.D{{Key: field, Value: bson.D{{Key: "$not", Value: "$" + field}}}}
	if r.stampUpdates {
		set = append(set, bson.E{Key: "updatedAt", Value: "$$NOW"})
	}

	res, err := r.collection.UpdateMany(ctx, idsFilter(ids), mongo.Pipeline{{{Key: "$set", Value: set}}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// Distinct returns the sorted non-empty string values of field
func (r *contentRepository[T]) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	if filter == nil {
		filter = bson.M{}
	}
	values, err := r.collection.Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// CategoryCounts groups the collection by English category, largest first
func (r *contentRepository[T]) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category.en"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := make([]models.CategoryCount, 0)
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func idsFilter(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}
