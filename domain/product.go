package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE products (
//     product_id  SERIAL PRIMARY KEY,
//     name        VARCHAR NOT NULL,
//     category    VARCHAR,
//     price       NUMERIC(10, 2) NOT NULL,
//     created_at  TIMESTAMP
// );

type Product struct {
	ProductID uint64          `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Name      string          `gorm:"column:name;not null;index" json:"name"`
	Category  *string         `gorm:"column:category;index" json:"category"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`

	OrderItems []OrderItem `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
	Reviews    []Review    `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
