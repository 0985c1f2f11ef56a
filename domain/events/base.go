package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// User Events

// UserRegistered is raised when a new user account is created
type UserRegistered struct {
	BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// NewUserRegistered creates a UserRegistered event
func NewUserRegistered(userID, email string, timestamp time.Time) UserRegistered {
	return UserRegistered{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "user.registered",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID: userID,
		Email:  email,
	}
}

// PasswordChanged is raised when a user updates their password
type PasswordChanged struct {
	BaseEvent
	UserID string `json:"user_id"`
}

// NewPasswordChanged creates a PasswordChanged event
func NewPasswordChanged(userID string, timestamp time.Time) PasswordChanged {
	return PasswordChanged{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "user.password_changed",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID: userID,
	}
}

// Note Events

// NoteCreated is raised when a new note is created
type NoteCreated struct {
	BaseEvent
	NoteID   string `json:"note_id"`
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// NewNoteCreated creates a NoteCreated event
func NewNoteCreated(noteID, userID, category, priority string, timestamp time.Time) NoteCreated {
	return NoteCreated{
		BaseEvent: BaseEvent{
			AggregateID: noteID,
			EventType:   "note.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		NoteID:   noteID,
		UserID:   userID,
		Category: category,
		Priority: priority,
	}
}

// NoteUpdated is raised when a note is modified
type NoteUpdated struct {
	BaseEvent
	NoteID string `json:"note_id"`
	UserID string `json:"user_id"`
}

// NewNoteUpdated creates a NoteUpdated event
func NewNoteUpdated(noteID, userID string, timestamp time.Time) NoteUpdated {
	return NoteUpdated{
		BaseEvent: BaseEvent{
			AggregateID: noteID,
			EventType:   "note.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		NoteID: noteID,
		UserID: userID,
	}
}

// NoteDeleted is raised when a note is removed
type NoteDeleted struct {
	BaseEvent
	NoteID string `json:"note_id"`
	UserID string `json:"user_id"`
}

// NewNoteDeleted creates a NoteDeleted event
func NewNoteDeleted(noteID, userID string, timestamp time.Time) NoteDeleted {
	return NoteDeleted{
		BaseEvent: BaseEvent{
			AggregateID: noteID,
			EventType:   "note.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		NoteID: noteID,
		UserID: userID,
	}
}
