package user

import (
	"context"
	"fmt"

	"intellidash/domain"
	"intellidash/pkg/logger"
)

// UserRepository contract interface
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all users")
		return nil, fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all users", "error", err)
		return nil, err
	}

	return users, nil
}
