// Package repository provides MongoDB-backed persistence for accounts and
// notes. Repositories return ecode-typed errors; callers never inspect
// driver errors directly.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/logging/logger"
)

// User represents an account entity. The password field holds the bcrypt
// hash and is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates a new account repository instance.
func NewUserRepository(db *mongo.Database, log *logger.Logger) UserRepository {
	collection := db.Collection("users")

	// Unique indexes back the registration uniqueness invariant even when
	// two registrations race past the service-level checks.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn(ctx, "failed to create user indexes", "error", err)
	}

	return &userRepository{
		collection: collection,
		logger:     log,
	}
}

// Create persists a new account.
func (r *userRepository) Create(ctx context.Context, user *User) (*User, error) {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ecode.Conflict(ecode.AlreadyExist("username or email"))
		}
		r.logger.Error(ctx, "failed to create user", "error", err)
		return nil, ecode.Internal("failed to create user", err)
	}

	return user, nil
}

// FindByID retrieves an account by id.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound(ecode.NotExist("user"))
		}
		r.logger.Error(ctx, "failed to find user", "id", id, "error", err)
		return nil, ecode.Internal("failed to find user", err)
	}

	return &user, nil
}

// FindByUsername retrieves an account by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail retrieves an account by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound(ecode.NotExist("user"))
		}
		r.logger.Error(ctx, "failed to find user", "error", err)
		return nil, ecode.Internal("failed to find user", err)
	}
	return &user, nil
}

// Delete removes an account by id. Administrative path only; the HTTP
// surface does not expose it.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.logger.Error(ctx, "failed to delete user", "id", id, "error", err)
		return ecode.Internal("failed to delete user", err)
	}
	if result.DeletedCount == 0 {
		return ecode.NotFound(ecode.NotExist("user"))
	}
	return nil
}
