package notes

import (
	"time"

	"github.com/google/uuid"

	"notes-backend/domain/events"
	pkgerrors "notes-backend/pkg/errors"
)

// Priority represents the urgency level of a note
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultCategory is assigned when a note is created without one
const DefaultCategory = "General"

// Priorities lists the valid levels in display order
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the known levels
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}

// Note is the main entity representing a user-owned note
// This is a rich domain model with encapsulated business logic
type Note struct {
	// Private fields ensure encapsulation
	id        string
	userID    string
	title     string
	content   string
	category  string
	priority  Priority
	createdAt time.Time
	updatedAt time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewNote creates a new note with defaults and validation. A fresh note has
// identical CreatedAt and UpdatedAt timestamps.
func NewNote(userID, title, content, category string, priority Priority) (*Note, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}

	if content == "" {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	if category == "" {
		category = DefaultCategory
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, pkgerrors.NewValidationError("priority must be High, Medium or Low")
	}

	now := time.Now().UTC()
	note := &Note{
		id:        uuid.New().String(),
		userID:    userID,
		title:     title,
		content:   content,
		category:  category,
		priority:  priority,
		createdAt: now,
		updatedAt: now,
		events:    []events.DomainEvent{},
	}

	note.addEvent(events.NewNoteCreated(note.id, userID, category, string(priority), now))

	return note, nil
}

// ReconstructNote rebuilds a note from repository data with preserved timestamps
func ReconstructNote(id, userID, title, content, category string, priority Priority, createdAt, updatedAt time.Time) (*Note, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("id cannot be empty")
	}

	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	return &Note{
		id:        id,
		userID:    userID,
		title:     title,
		content:   content,
		category:  category,
		priority:  priority,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    []events.DomainEvent{},
	}, nil
}

// ID returns the note's unique identifier
func (n *Note) ID() string {
	return n.id
}

// UserID returns the owner's ID
func (n *Note) UserID() string {
	return n.userID
}

// Title returns the note's title
func (n *Note) Title() string {
	return n.title
}

// Content returns the note's body text
func (n *Note) Content() string {
	return n.content
}

// Category returns the note's category
func (n *Note) Category() string {
	return n.category
}

// Priority returns the note's priority level
func (n *Note) Priority() Priority {
	return n.priority
}

// CreatedAt returns when the note was created
func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the note was last updated
func (n *Note) UpdatedAt() time.Time {
	return n.updatedAt
}

// Patch describes a partial update. Nil fields keep the existing value; a
// present value always replaces it and must pass validation. An explicit
// empty string is rejected, never treated as "keep".
type Patch struct {
	Title    *string
	Content  *string
	Category *string
	Priority *Priority
}

// IsEmpty reports whether the patch carries no fields at all
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.Priority == nil
}

// Apply merges a patch into the note. UpdatedAt is always refreshed, even
// when the supplied values equal the current ones.
func (n *Note) Apply(patch Patch) error {
	if patch.Title != nil && *patch.Title == "" {
		return pkgerrors.NewValidationError("title cannot be empty")
	}

	if patch.Content != nil && *patch.Content == "" {
		return pkgerrors.NewValidationError("content cannot be empty")
	}

	if patch.Category != nil && *patch.Category == "" {
		return pkgerrors.NewValidationError("category cannot be empty")
	}

	if patch.Priority != nil && !patch.Priority.IsValid() {
		return pkgerrors.NewValidationError("priority must be High, Medium or Low")
	}

	if patch.Title != nil {
		n.title = *patch.Title
	}
	if patch.Content != nil {
		n.content = *patch.Content
	}
	if patch.Category != nil {
		n.category = *patch.Category
	}
	if patch.Priority != nil {
		n.priority = *patch.Priority
	}

	// The clock may not have advanced since the last write; updatedAt
	// must still move strictly forward
	now := time.Now().UTC()
	if !now.After(n.updatedAt) {
		now = n.updatedAt.Add(time.Nanosecond)
	}
	n.updatedAt = now

	n.addEvent(events.NewNoteUpdated(n.id, n.userID, n.updatedAt))

	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (n *Note) GetUncommittedEvents() []events.DomainEvent {
	return n.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (n *Note) MarkEventsAsCommitted() {
	n.events = []events.DomainEvent{}
}

func (n *Note) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}
