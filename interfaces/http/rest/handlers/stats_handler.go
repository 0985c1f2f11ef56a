package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"notes-backend/application/services"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/common"
	pkgerrors "notes-backend/pkg/errors"
)

// StatsHandler serves derived note statistics
type StatsHandler struct {
	statsService *services.StatsService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(
	statsService *services.StatsService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), userCtx.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, stats)
}
