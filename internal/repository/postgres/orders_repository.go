package postgres

import (
	"context"
	"fmt"

	"intellidash/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateBatch inserts orders together with their items.
func (r *OrdersRepository) CreateBatch(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&orders, batchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create orders: %w", err)
	}

	return nil
}

// DeleteAll removes every order item and order.
func (r *OrdersRepository) DeleteAll(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(ctx, tx, &domain.OrderItem{}); err != nil {
			return err
		}
		return deleteAll(ctx, tx, &domain.Order{})
	})
	if err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}

	return nil
}
