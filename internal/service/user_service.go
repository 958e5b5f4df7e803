package service

import (
	"context"
	"fmt"

	"study-helper/internal/domain"
	"study-helper/internal/logger"

	"go.uber.org/zap"
)

// UserService defines the interface for the identity directory.
type UserService interface {
	// GetUserByUsername returns (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error)
	BanUser(ctx context.Context, userID int64) (*domain.User, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user by username", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user by id", err)
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// BanUser clears the active flag. Banning an already banned user is a no-op
// that still succeeds; outstanding tokens stay valid until they expire.
func (s *userServiceImpl) BanUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.SetUserActive(ctx, userID, false)
	if err != nil {
		return nil, domain.NewInternalError("failed to ban user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User not found with ID: %d", userID))
	}

	logger.Get().Info("User banned", zap.Int64("userID", userID))
	return user, nil
}
