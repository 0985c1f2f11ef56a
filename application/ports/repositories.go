package ports

import (
	"context"

	"notes-backend/domain/events"
	"notes-backend/domain/identity"
	"notes-backend/domain/notes"
)

// UserRepository defines the interface for user persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type UserRepository interface {
	// Create persists a new user along with its email uniqueness claim.
	// Fails with a conflict error when the email is already registered.
	Create(ctx context.Context, user *identity.User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*identity.User, error)

	// GetByEmail resolves a normalized email to its user
	GetByEmail(ctx context.Context, email string) (*identity.User, error)

	// UpdatePassword replaces the stored password hash for an existing user
	UpdatePassword(ctx context.Context, user *identity.User) error
}

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	// Create persists a new note
	Create(ctx context.Context, note *notes.Note) error

	// GetByID retrieves one of the owner's notes by its ID
	GetByID(ctx context.Context, userID, noteID string) (*notes.Note, error)

	// GetByUserID retrieves all notes for a user
	GetByUserID(ctx context.Context, userID string) ([]*notes.Note, error)

	// Update persists the mutable fields of an existing note
	Update(ctx context.Context, note *notes.Note) error

	// Delete removes one of the owner's notes
	Delete(ctx context.Context, userID, noteID string) error
}

// EventBus publishes domain events to external consumers.
// Publishing is best-effort: a failed publish never fails the request.
type EventBus interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
