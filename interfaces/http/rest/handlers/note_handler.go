package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"notes-backend/application/services"
	"notes-backend/domain/notes"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/common"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

// NoteHandler handles note CRUD requests
type NoteHandler struct {
	noteService  *services.NoteService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(
	noteService *services.NoteService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *NoteHandler {
	return &NoteHandler{
		noteService:  noteService,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Content  string `json:"content" validate:"required,min=1"`
	Category string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=High Medium Low"`
}

// UpdateNoteRequest represents the request body for a partial update.
// Omitted fields keep their stored values.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Category *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=High Medium Low"`
}

// NoteResponse is the wire representation of a note
type NoteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toNoteResponse(note *notes.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID(),
		Title:     note.Title(),
		Content:   note.Content(),
		Category:  note.Category(),
		Priority:  note.Priority().String(),
		CreatedAt: utils.FormatRFC3339(note.CreatedAt()),
		UpdatedAt: utils.FormatRFC3339(note.UpdatedAt()),
	}
}

func toNoteResponses(userNotes []*notes.Note) []NoteResponse {
	result := make([]NoteResponse, 0, len(userNotes))
	for _, note := range userNotes {
		result = append(result, toNoteResponse(note))
	}
	return result
}

// CreateNote handles POST /api/v1/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateNoteRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), userCtx.UserID, services.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: notes.Priority(req.Priority),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toNoteResponse(note))
}

// ListNotes handles GET /api/v1/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	userNotes, err := h.noteService.GetUserNotes(r.Context(), userCtx.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toNoteResponses(userNotes))
}

// GetNote handles GET /api/v1/notes/{noteID}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	noteID := chi.URLParam(r, "noteID")

	note, err := h.noteService.GetNote(r.Context(), userCtx.UserID, noteID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toNoteResponse(note))
}

// UpdateNote handles PUT /api/v1/notes/{noteID}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	noteID := chi.URLParam(r, "noteID")

	var req UpdateNoteRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	patch := notes.Patch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if req.Priority != nil {
		p := notes.Priority(*req.Priority)
		patch.Priority = &p
	}

	note, err := h.noteService.UpdateNote(r.Context(), userCtx.UserID, noteID, patch)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toNoteResponse(note))
}

// DeleteNote handles DELETE /api/v1/notes/{noteID}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	noteID := chi.URLParam(r, "noteID")

	if err := h.noteService.DeleteNote(r.Context(), userCtx.UserID, noteID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "note deleted",
	})
}
