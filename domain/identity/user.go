package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-backend/domain/events"
	pkgerrors "notes-backend/pkg/errors"
)

// User is the account aggregate. Password material is stored only as a
// bcrypt hash; the plaintext never reaches this package.
type User struct {
	// Private fields ensure encapsulation
	id           string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewUser creates a new user with validation. The id is random, never
// derived from registration time.
func NewUser(email, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password hash cannot be empty")
	}

	now := time.Now().UTC()
	user := &User{
		id:           uuid.New().String(),
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
		events:       []events.DomainEvent{},
	}

	user.addEvent(events.NewUserRegistered(user.id, user.email, now))

	return user, nil
}

// ReconstructUser rebuilds a user from repository data with preserved timestamps
func ReconstructUser(id, email, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("id cannot be empty")
	}

	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		events:       []events.DomainEvent{},
	}, nil
}

// ID returns the user's unique identifier
func (u *User) ID() string {
	return u.id
}

// Email returns the user's normalized email address
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the account was last modified
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return pkgerrors.NewValidationError("password hash cannot be empty")
	}

	u.passwordHash = newHash
	u.updatedAt = time.Now().UTC()

	u.addEvent(events.NewPasswordChanged(u.id, u.updatedAt))

	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (u *User) GetUncommittedEvents() []events.DomainEvent {
	return u.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (u *User) MarkEventsAsCommitted() {
	u.events = []events.DomainEvent{}
}

func (u *User) addEvent(event events.DomainEvent) {
	u.events = append(u.events, event)
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
