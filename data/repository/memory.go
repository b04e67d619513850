package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notevault/notevault/ecode"
)

// In-memory repository implementations with the same error contract as the
// MongoDB ones. Used by tests and by local development without a database.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryUserRepository creates an in-memory account repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, ecode.Conflict(ecode.AlreadyExist("username or email"))
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.users[user.ID.Hex()] = &stored
	return user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ecode.NotFound(ecode.NotExist("user"))
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ecode.NotFound(ecode.NotExist("user"))
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ecode.NotFound(ecode.NotExist("user"))
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ecode.NotFound(ecode.NotExist("user"))
	}
	delete(r.users, id)
	return nil
}

type memoryNoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*Note
}

// NewMemoryNoteRepository creates an in-memory note repository.
func NewMemoryNoteRepository() NoteRepository {
	return &memoryNoteRepository{notes: make(map[string]*Note)}
}

func (r *memoryNoteRepository) Create(_ context.Context, note *Note) (*Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = primitive.NewObjectID()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	stored := *note
	r.notes[note.ID.Hex()] = &stored
	return note, nil
}

func (r *memoryNoteRepository) FindByID(_ context.Context, id string) (*Note, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if n, ok := r.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, ecode.NotFound(ecode.NotExist("note"))
}

func (r *memoryNoteRepository) ListByUser(_ context.Context, userID string) ([]*Note, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("user id"))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := []*Note{}
	for _, n := range r.notes {
		if n.UserID == ownerID {
			cp := *n
			notes = append(notes, &cp)
		}
	}

	// Same order as the MongoDB repository: newest first.
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

func (r *memoryNoteRepository) Update(_ context.Context, id string, patch *NotePatch) (*Note, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, ecode.NotFound(ecode.NotExist("note"))
	}

	if patch != nil {
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Description != nil {
			n.Description = *patch.Description
		}
	}
	n.UpdatedAt = time.Now()

	cp := *n
	return &cp, nil
}

func (r *memoryNoteRepository) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ecode.Validation(ecode.FieldIsInvalid("note id"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return ecode.NotFound(ecode.NotExist("note"))
	}
	delete(r.notes, id)
	return nil
}
