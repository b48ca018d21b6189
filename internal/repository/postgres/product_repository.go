package postgres

import (
	"context"
	"errors"
	"fmt"

	"intellidash/domain"
	"intellidash/pkg/database"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// FindByID looks a product up by primary key. Any id without a row, including
// zero and negatives, yields a *domain.NotFoundError.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := database.Conn(ctx, r.DB).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, &domain.NotFoundError{Entity: "product", ID: id}
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products := []domain.Product{}
	err := database.Conn(ctx, r.DB).Order("product_id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(&products, batchSize).Error; err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}

	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if err := deleteAll(ctx, r.DB, &domain.Product{}); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}

	return nil
}
