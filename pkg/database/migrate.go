package database

import (
	"fmt"

	"intellidash/domain"

	"gorm.io/gorm"
)

// Models lists the schema in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Review{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
