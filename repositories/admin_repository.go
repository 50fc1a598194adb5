package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/config"
	"github.com/HSouheill/coffee_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adminResource = "Admin"

// AdminRepository stores back-office accounts
type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		collection: db.Collection(config.AdminsCollection),
	}
}

// FindByLogin looks an account up by username or email
func (r *AdminRepository) FindByLogin(ctx context.Context, identifier string) (*models.Admin, error) {
	return r.findOne(ctx, loginFilter(identifier))
}

// loginFilter matches usernames exactly; emails are stored lower-cased
func loginFilter(identifier string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": strings.ToLower(identifier)},
	}}
}

// FindByID returns the account with the given id
func (r *AdminRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// ExistsByUsernameOrEmail reports whether either value is already registered
func (r *AdminRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	return r.exists(ctx, filter)
}

// EmailTaken reports whether email belongs to an account other than exclude
func (r *AdminRepository) EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	return r.exists(ctx, bson.M{"email": email, "_id": bson.M{"$ne": exclude}})
}

// List returns every account, newest first
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	admins := make([]models.Admin, 0)
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// Create inserts admin and assigns its id
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	res, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		return apperrors.FromMongo(err, "Username or email")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = id
	}
	return nil
}

// Update applies set, stamps updatedAt and returns the new state
func (r *AdminRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var admin models.Admin
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation("Email already in use")
		}
		return nil, apperrors.FromMongo(err, adminResource)
	}
	return &admin, nil
}

// SaveLoginState persists the lockout bookkeeping of one login attempt.
// A nil lockUntil clears the lock; a nil lastLogin leaves the previous value.
func (r *AdminRepository) SaveLoginState(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil, lastLogin *time.Time) error {
	set := bson.M{"loginAttempts": attempts}
	update := bson.M{}
	if lockUntil != nil {
		set["lockUntil"] = *lockUntil
	} else {
		update["$unset"] = bson.M{"lockUntil": ""}
	}
	if lastLogin != nil {
		set["lastLogin"] = *lastLogin
	}
	update["$set"] = set

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete removes the account
func (r *AdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(adminResource)
	}
	return nil
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var admin models.Admin
	if err := r.collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		return nil, apperrors.FromMongo(err, adminResource)
	}
	return &admin, nil
}

func (r *AdminRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
