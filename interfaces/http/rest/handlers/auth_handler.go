package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"notes-backend/application/services"
	"notes-backend/domain/identity"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/common"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// AuthHandler handles registration, login and account requests
type AuthHandler struct {
	identityService *services.IdentityService
	jwtGenerator    *auth.JWTGenerator
	errorHandler    *pkgerrors.ErrorHandler
	logger          *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	identityService *services.IdentityService,
	jwtGenerator *auth.JWTGenerator,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		jwtGenerator:    jwtGenerator,
		errorHandler:    errorHandler,
		logger:          logger,
	}
}

// RegisterRequest represents the request body for account creation
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents the request body for a password change
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse is the wire representation of a user
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse carries a token and its user after register/login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID(),
		Email:     user.Email(),
		CreatedAt: utils.FormatRFC3339(user.CreatedAt()),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	user, err := h.identityService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.jwtGenerator.GenerateToken(user.ID(), user.Email(), []string{"user"})
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.Wrap(err, "failed to issue token"))
		return
	}

	common.RespondJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.jwtGenerator.GenerateToken(user.ID(), user.Email(), []string{"user"})
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.Wrap(err, "failed to issue token"))
		return
	}

	common.RespondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.identityService.GetUserByID(r.Context(), userCtx.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdatePassword handles PUT /api/v1/auth/password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req UpdatePasswordRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := h.identityService.UpdatePassword(r.Context(), userCtx.Email, req.NewPassword); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "password updated",
	})
}
