package postgres

import (
	"context"
	"fmt"

	"intellidash/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) CreateBatch(ctx context.Context, reviews []domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(&reviews, batchSize).Error; err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}

	return nil
}

func (r *ReviewRepository) DeleteAll(ctx context.Context) error {
	if err := deleteAll(ctx, r.DB, &domain.Review{}); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}

	return nil
}
