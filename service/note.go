package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notevault/notevault/data/repository"
	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/logging/logger"
)

// CreateNoteInput carries the fields required to create a note.
type CreateNoteInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateNoteInput carries an optional title and description. At least one
// must be set.
type UpdateNoteInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// NoteService manages notes. Every operation that targets a single note runs
// through the owner guard before touching it.
type NoteService struct {
	notes  repository.NoteRepository
	logger *logger.Logger
}

// NewNoteService creates a note service.
func NewNoteService(notes repository.NoteRepository, log *logger.Logger) *NoteService {
	return &NoteService{notes: notes, logger: log}
}

// Create stores a new note owned by the given account.
func (s *NoteService) Create(ctx context.Context, ownerID string, input *CreateNoteInput) (*repository.Note, error) {
	if input.Title == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("title"))
	}
	if input.Description == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("description"))
	}

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	note, err := s.notes.Create(ctx, &repository.Note{
		Title:       input.Title,
		Description: input.Description,
		UserID:      owner,
	})
	if err != nil {
		s.logger.Error(ctx, "failed to create note", "error", err)
		return nil, err
	}
	return note, nil
}

// List returns the notes owned by the given account.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]*repository.Note, error) {
	notes, err := s.notes.ListByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "failed to list notes", "error", err)
		return nil, err
	}
	return notes, nil
}

// Get returns a single note after checking it belongs to the caller.
func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (*repository.Note, error) {
	return s.authorizeOwner(ctx, ownerID, noteID)
}

// Update applies a partial update to a note after checking ownership.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, input *UpdateNoteInput) (*repository.Note, error) {
	patch := &repository.NotePatch{Title: input.Title, Description: input.Description}
	if patch.IsEmpty() {
		return nil, ecode.Validation("at least one field (title or description) must be provided")
	}

	if _, err := s.authorizeOwner(ctx, ownerID, noteID); err != nil {
		return nil, err
	}

	note, err := s.notes.Update(ctx, noteID, patch)
	if err != nil {
		if !ecode.IsNotFound(err) {
			s.logger.Error(ctx, "failed to update note", "error", err)
		}
		return nil, err
	}
	return note, nil
}

// Delete removes a note after checking ownership.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if _, err := s.authorizeOwner(ctx, ownerID, noteID); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		if !ecode.IsNotFound(err) {
			s.logger.Error(ctx, "failed to delete note", "error", err)
		}
		return err
	}
	return nil
}

// authorizeOwner loads a note and rejects the request when it is owned by a
// different account. Missing notes surface as not found before ownership is
// considered.
func (s *NoteService) authorizeOwner(ctx context.Context, ownerID, noteID string) (*repository.Note, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID.Hex() != ownerID {
		return nil, ecode.Authorization("not authorized to access this note")
	}
	return note, nil
}
