package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/lotoboard/server/internal/errs"
	"github.com/lotoboard/server/internal/model"
	"github.com/lotoboard/server/internal/repo"
	"go.uber.org/zap"
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// Service orchestrates login and user administration.
type Service struct {
	jwtService *JWTService
	userRepo   repo.UserRepo
	logger     *zap.Logger
}

// NewService creates a new auth service.
func NewService(jwtService *JWTService, userRepo repo.UserRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Login authenticates a username/password pair and issues a session token.
// Unknown user and wrong password both return errs.ErrUnauthenticated so the
// response does not reveal which part failed.
func (s *Service) Login(ctx context.Context, username, password string) (model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, "", errs.ErrUnauthenticated
		}
		return model.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return model.User{}, "", errs.ErrUnauthenticated
	}

	token, err := s.jwtService.SignToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return model.User{}, "", fmt.Errorf("sign session token: %w", err)
	}

	return user, token, nil
}

// ListUsers returns all users ordered by creation time ascending.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUser validates input, hashes the password and persists a new user.
// Validation runs before any storage access.
func (s *Service) CreateUser(ctx context.Context, username, password string, isAdmin bool) (model.User, error) {
	if len(username) < minUsernameLen {
		return model.User{}, fmt.Errorf("%w: username must be at least %d characters", errs.ErrInvalidInput, minUsernameLen)
	}
	if len(password) < minPasswordLen {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", errs.ErrInvalidInput, minPasswordLen)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userRepo.Create(ctx, username, hash, isAdmin)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("user created",
		zap.Int("id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("isAdmin", user.IsAdmin))
	return user, nil
}

// DeleteUser removes a user. Deleting the caller's own account is rejected to
// avoid an accidental admin-less lockout; a second admin deleting the last
// admin concurrently is not guarded against.
func (s *Service) DeleteUser(ctx context.Context, callerID, targetID int) error {
	if targetID == callerID {
		return fmt.Errorf("%w: cannot delete your own account", errs.ErrInvalidInput)
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int("id", targetID))
	return nil
}

// EnsureAdmin creates the initial admin account when the user table is empty,
// so a fresh deployment is reachable. Returns true when an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	user, err := s.userRepo.Create(ctx, username, hash, true)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			// Another instance bootstrapped first.
			return false, nil
		}
		return false, err
	}

	s.logger.Info("bootstrap admin created", zap.String("username", user.Username))
	return true, nil
}
