package services

import (
	"context"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/identity"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// IdentityService manages user accounts: registration, lookup, credentials.
type IdentityService struct {
	userRepo ports.UserRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	userRepo ports.UserRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates a new account. The email must not already be registered;
// a second registration with the same email returns a conflict error.
func (s *IdentityService) Register(ctx context.Context, email, password string) (*identity.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to hash password")
	}

	user, err := identity.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	s.logger.Info("user registered",
		zap.String("userID", user.ID()),
	)

	return user, nil
}

// GetUserByID retrieves a user by its identifier
func (s *IdentityService) GetUserByID(ctx context.Context, id string) (*identity.User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("id cannot be empty")
	}

	return s.userRepo.GetByID(ctx, id)
}

// FindUserByEmail resolves an email address to its user
func (s *IdentityService) FindUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	return s.userRepo.GetByEmail(ctx, email)
}

// Authenticate verifies credentials and returns the matching user. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*identity.User, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash()) {
		return nil, pkgerrors.NewUnauthorizedError("invalid credentials")
	}

	return user, nil
}

// UpdatePassword replaces the password for the account registered under email
func (s *IdentityService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to hash password")
	}

	if err := user.ChangePassword(hash); err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user); err != nil {
		return err
	}

	s.publishEvents(ctx, user)

	s.logger.Info("password updated",
		zap.String("userID", user.ID()),
	)

	return nil
}

// VerifyPassword compares a plaintext password against a stored hash
func (s *IdentityService) VerifyPassword(password, hash string) bool {
	return auth.VerifyPassword(password, hash)
}

func (s *IdentityService) publishEvents(ctx context.Context, user *identity.User) {
	evts := user.GetUncommittedEvents()
	if len(evts) == 0 {
		return
	}

	if err := s.eventBus.Publish(ctx, evts...); err != nil {
		s.logger.Warn("failed to publish user events",
			zap.String("userID", user.ID()),
			zap.Error(err),
		)
	}

	user.MarkEventsAsCommitted()
}
