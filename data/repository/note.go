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

// Note represents a note entity. The owner reference is set at creation and
// never changes.
type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	UserID      primitive.ObjectID `bson:"user" json:"user_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// NotePatch carries a partial update; nil fields are left untouched.
type NotePatch struct {
	Title       *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *NotePatch) IsEmpty() bool {
	return p == nil || (p.Title == nil && p.Description == nil)
}

// NoteRepository defines the interface for note persistence.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) (*Note, error)
	FindByID(ctx context.Context, id string) (*Note, error)
	ListByUser(ctx context.Context, userID string) ([]*Note, error)
	Update(ctx context.Context, id string, patch *NotePatch) (*Note, error)
	Delete(ctx context.Context, id string) error
}

type noteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewNoteRepository creates a new note repository instance.
func NewNoteRepository(db *mongo.Database, log *logger.Logger) NoteRepository {
	collection := db.Collection("notes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Owner-scoped listing is the hot path.
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn(ctx, "failed to create note index", "error", err)
	}

	return &noteRepository{
		collection: collection,
		logger:     log,
	}
}

// Create persists a new note.
func (r *noteRepository) Create(ctx context.Context, note *Note) (*Note, error) {
	note.ID = primitive.NewObjectID()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		r.logger.Error(ctx, "failed to create note", "error", err)
		return nil, ecode.Internal("failed to create note", err)
	}

	return note, nil
}

// FindByID retrieves a note by id.
func (r *noteRepository) FindByID(ctx context.Context, id string) (*Note, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	var note Note
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound(ecode.NotExist("note"))
		}
		r.logger.Error(ctx, "failed to find note", "id", id, "error", err)
		return nil, ecode.Internal("failed to find note", err)
	}

	return &note, nil
}

// ListByUser retrieves all notes owned by the given account. The query is
// scoped by owner, foreign notes are never loaded.
func (r *noteRepository) ListByUser(ctx context.Context, userID string) ([]*Note, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user": ownerID}, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to list notes", "user", userID, "error", err)
		return nil, ecode.Internal("failed to list notes", err)
	}
	defer cursor.Close(ctx)

	notes := []*Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		r.logger.Error(ctx, "failed to decode notes", "error", err)
		return nil, ecode.Internal("failed to decode notes", err)
	}

	return notes, nil
}

// Update applies a partial update and returns the updated note.
func (r *noteRepository) Update(ctx context.Context, id string, patch *NotePatch) (*Note, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	set := bson.M{"updated_at": time.Now()}
	if patch != nil {
		if patch.Title != nil {
			set["title"] = *patch.Title
		}
		if patch.Description != nil {
			set["description"] = *patch.Description
		}
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ecode.NotFound(ecode.NotExist("note"))
		}
		r.logger.Error(ctx, "failed to update note", "id", id, "error", result.Err())
		return nil, ecode.Internal("failed to update note", result.Err())
	}

	var updated Note
	if err := result.Decode(&updated); err != nil {
		return nil, ecode.Internal("failed to decode updated note", err)
	}

	return &updated, nil
}

// Delete permanently removes a note by id.
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.logger.Error(ctx, "failed to delete note", "id", id, "error", err)
		return ecode.Internal("failed to delete note", err)
	}
	if result.DeletedCount == 0 {
		return ecode.NotFound(ecode.NotExist("note"))
	}
	return nil
}
