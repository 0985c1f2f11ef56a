package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/notes"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// StatsService derives aggregate statistics over a user's notes. Nothing is
// cached or stored; every call recomputes from the note list.
type StatsService struct {
	noteRepo ports.NoteRepository
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewStatsService creates a new stats service. metrics may be nil when
// metrics emission is disabled.
func NewStatsService(
	noteRepo ports.NoteRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		noteRepo: noteRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetUserStats computes the owner's note statistics
func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*notes.Stats, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	start := time.Now()

	userNotes, err := s.noteRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.recordOperation(ctx, start, err)
		return nil, err
	}

	stats := notes.ComputeStats(userNotes)
	s.recordOperation(ctx, start, nil)

	s.logger.Debug("stats computed",
		zap.String("userID", userID),
		zap.Int("totalNotes", stats.TotalNotes),
	)

	return stats, nil
}

func (s *StatsService) recordOperation(ctx context.Context, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOperation(ctx, "GetUserStats", time.Since(start), err)
}
