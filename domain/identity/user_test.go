package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "notes-backend/pkg/errors"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Alice@Example.com ", "$2a$10$hash")

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID())
	assert.Equal(t, "alice@example.com", user.Email())
	assert.Equal(t, "$2a$10$hash", user.PasswordHash())
	assert.Equal(t, user.CreatedAt(), user.UpdatedAt())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "$2a$10$hash")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewUser("alice@example.com", "")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestNewUser_RandomIDs(t *testing.T) {
	a, err := NewUser("a@example.com", "hash")
	assert.NoError(t, err)
	b, err := NewUser("b@example.com", "hash")
	assert.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewUser_RaisesRegisteredEvent(t *testing.T) {
	user, err := NewUser("alice@example.com", "hash")
	assert.NoError(t, err)

	evts := user.GetUncommittedEvents()
	assert.Len(t, evts, 1)
	assert.Equal(t, "user.registered", evts[0].GetEventType())
	assert.Equal(t, user.ID(), evts[0].GetAggregateID())
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser("alice@example.com", "oldhash")
	assert.NoError(t, err)
	user.MarkEventsAsCommitted()

	err = user.ChangePassword("newhash")

	assert.NoError(t, err)
	assert.Equal(t, "newhash", user.PasswordHash())

	evts := user.GetUncommittedEvents()
	assert.Len(t, evts, 1)
	assert.Equal(t, "user.password_changed", evts[0].GetEventType())
}

func TestChangePassword_EmptyHash(t *testing.T) {
	user, err := NewUser("alice@example.com", "oldhash")
	assert.NoError(t, err)

	err = user.ChangePassword("")

	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, "oldhash", user.PasswordHash())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@EXAMPLE.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
