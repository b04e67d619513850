package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notevault/notevault/data/repository"
	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/logging/logger"
)

func newTestNoteService(t *testing.T) *NoteService {
	t.Helper()
	return NewNoteService(repository.NewMemoryNoteRepository(), logger.StdLogger())
}

func strptr(s string) *string { return &s }

// TestCreateNote stores a note owned by the caller.
func TestCreateNote(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()

	note, err := svc.Create(ctx, owner, &CreateNoteInput{Title: "groceries", Description: "milk, eggs"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if note.ID.IsZero() {
		t.Error("Created note has no id")
	}
	if note.UserID.Hex() != owner {
		t.Errorf("Unexpected owner: got %s, want %s", note.UserID.Hex(), owner)
	}
}

// TestCreateNoteValidation requires both title and description.
func TestCreateNoteValidation(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()

	if _, err := svc.Create(ctx, owner, &CreateNoteInput{Title: "", Description: "body"}); ecode.KindOf(err) != ecode.KindValidation {
		t.Errorf("Unexpected error for missing title: got %v", err)
	}
	if _, err := svc.Create(ctx, owner, &CreateNoteInput{Title: "head", Description: ""}); ecode.KindOf(err) != ecode.KindValidation {
		t.Errorf("Unexpected error for missing description: got %v", err)
	}
}

// TestListScopedToOwner never returns another account's notes.
func TestListScopedToOwner(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	alice := primitive.NewObjectID().Hex()
	bob := primitive.NewObjectID().Hex()

	if _, err := svc.Create(ctx, alice, &CreateNoteInput{Title: "a1", Description: "d"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if _, err := svc.Create(ctx, alice, &CreateNoteInput{Title: "a2", Description: "d"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if _, err := svc.Create(ctx, bob, &CreateNoteInput{Title: "b1", Description: "d"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	notes, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Unexpected note count: got %d, want 2", len(notes))
	}
	for _, n := range notes {
		if n.UserID.Hex() != alice {
			t.Errorf("Foreign note in list: owner %s", n.UserID.Hex())
		}
	}

	// An owner with no notes gets an empty list, not an error.
	empty, err := svc.List(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Unexpected note count: got %d, want 0", len(empty))
	}
}

// TestOwnershipGuard rejects get, update and delete on another account's
// note without touching it.
func TestOwnershipGuard(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	alice := primitive.NewObjectID().Hex()
	bob := primitive.NewObjectID().Hex()

	note, err := svc.Create(ctx, alice, &CreateNoteInput{Title: "private", Description: "d"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	id := note.ID.Hex()

	if _, err := svc.Get(ctx, bob, id); ecode.KindOf(err) != ecode.KindAuthorization {
		t.Errorf("Unexpected error for foreign get: got %v", err)
	}
	if _, err := svc.Update(ctx, bob, id, &UpdateNoteInput{Title: strptr("hacked")}); ecode.KindOf(err) != ecode.KindAuthorization {
		t.Errorf("Unexpected error for foreign update: got %v", err)
	}
	if err := svc.Delete(ctx, bob, id); ecode.KindOf(err) != ecode.KindAuthorization {
		t.Errorf("Unexpected error for foreign delete: got %v", err)
	}

	// The note is untouched after the rejected operations.
	got, err := svc.Get(ctx, alice, id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if got.Title != "private" {
		t.Errorf("Note mutated by rejected update: title %q", got.Title)
	}
}

// TestUpdateNote applies partial updates and requires at least one field.
func TestUpdateNote(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()

	note, err := svc.Create(ctx, owner, &CreateNoteInput{Title: "old title", Description: "old body"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	id := note.ID.Hex()

	updated, err := svc.Update(ctx, owner, id, &UpdateNoteInput{Title: strptr("new title")})
	if err != nil {
		t.Fatalf("Failed to update note: %v", err)
	}
	if updated.Title != "new title" {
		t.Errorf("Unexpected title: got %q", updated.Title)
	}
	if updated.Description != "old body" {
		t.Errorf("Description changed by a title-only update: got %q", updated.Description)
	}

	if _, err := svc.Update(ctx, owner, id, &UpdateNoteInput{}); ecode.KindOf(err) != ecode.KindValidation {
		t.Errorf("Unexpected error for empty update: got %v", err)
	}
}

// TestDeleteNote removes a note; further access is not found.
func TestDeleteNote(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()

	note, err := svc.Create(ctx, owner, &CreateNoteInput{Title: "doomed", Description: "d"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	id := note.ID.Hex()

	if err := svc.Delete(ctx, owner, id); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	if _, err := svc.Get(ctx, owner, id); !ecode.IsNotFound(err) {
		t.Errorf("Unexpected error after delete: got %v", err)
	}
	if err := svc.Delete(ctx, owner, id); !ecode.IsNotFound(err) {
		t.Errorf("Unexpected error for double delete: got %v", err)
	}
}

// TestGetUnknownNote distinguishes missing ids from foreign ids.
func TestGetUnknownNote(t *testing.T) {
	svc := newTestNoteService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()

	if _, err := svc.Get(ctx, owner, primitive.NewObjectID().Hex()); !ecode.IsNotFound(err) {
		t.Errorf("Unexpected error for unknown id: got %v", err)
	}
	if _, err := svc.Get(ctx, owner, "not-an-object-id"); ecode.KindOf(err) != ecode.KindValidation {
		t.Errorf("Unexpected error for malformed id: got %v", err)
	}
}
