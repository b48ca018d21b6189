package postgres

import (
	"context"
	"fmt"

	"intellidash/domain"
	"intellidash/pkg/database"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}

	if err := database.Conn(ctx, r.DB).Order("user_id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) CreateBatch(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(&users, batchSize).Error; err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}

	return nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if err := deleteAll(ctx, r.DB, &domain.User{}); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	return nil
}
