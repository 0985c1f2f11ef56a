package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/events"
	"notes-backend/domain/notes"
	pkgerrors "notes-backend/pkg/errors"
)

// CreateNoteInput carries the fields for a new note. Category and Priority
// may be empty; the domain applies defaults.
type CreateNoteInput struct {
	Title    string
	Content  string
	Category string
	Priority notes.Priority
}

// NoteService manages a user's notes. Every operation is scoped to the
// owner's identifier, so one user can never touch another's notes.
type NoteService struct {
	noteRepo ports.NoteRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo ports.NoteRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateNote creates a note for the owner
func (s *NoteService) CreateNote(ctx context.Context, userID string, input CreateNoteInput) (*notes.Note, error) {
	note, err := notes.NewNote(userID, input.Title, input.Content, input.Category, input.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishNoteEvents(ctx, note)

	s.logger.Debug("note created",
		zap.String("noteID", note.ID()),
		zap.String("userID", userID),
	)

	return note, nil
}

// GetNote retrieves one of the owner's notes
func (s *NoteService) GetNote(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	if noteID == "" {
		return nil, pkgerrors.NewValidationError("noteID cannot be empty")
	}

	return s.noteRepo.GetByID(ctx, userID, noteID)
}

// GetUserNotes retrieves all notes belonging to the owner
func (s *NoteService) GetUserNotes(ctx context.Context, userID string) ([]*notes.Note, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	return s.noteRepo.GetByUserID(ctx, userID)
}

// UpdateNote merges a patch into one of the owner's notes. Absent patch
// fields keep their stored values; present fields are validated and replace
// them.
func (s *NoteService) UpdateNote(ctx context.Context, userID, noteID string, patch notes.Patch) (*notes.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := note.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishNoteEvents(ctx, note)

	return note, nil
}

// DeleteNote removes one of the owner's notes
func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if noteID == "" {
		return pkgerrors.NewValidationError("noteID cannot be empty")
	}

	if err := s.noteRepo.Delete(ctx, userID, noteID); err != nil {
		return err
	}

	s.publishEvents(ctx, events.NewNoteDeleted(noteID, userID, time.Now().UTC()))

	s.logger.Debug("note deleted",
		zap.String("noteID", noteID),
		zap.String("userID", userID),
	)

	return nil
}

func (s *NoteService) publishNoteEvents(ctx context.Context, note *notes.Note) {
	evts := note.GetUncommittedEvents()
	if len(evts) == 0 {
		return
	}

	s.publishEvents(ctx, evts...)
	note.MarkEventsAsCommitted()
}

func (s *NoteService) publishEvents(ctx context.Context, evts ...events.DomainEvent) {
	if err := s.eventBus.Publish(ctx, evts...); err != nil {
		s.logger.Warn("failed to publish note events", zap.Error(err))
	}
}
