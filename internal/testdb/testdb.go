// Package testdb provides an in-memory sqlite database with the dashboard
// schema, plus small fixture builders.
package testdb

import (
	"testing"
	"time"

	"intellidash/domain"
	"intellidash/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Month(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func CreateUser(t testing.TB, db *gorm.DB, email string) domain.User {
	t.Helper()

	user := domain.User{Email: email, CreatedAt: Month(2024, time.January, 1)}
	require.NoError(t, db.Create(&user).Error)

	return user
}

// CreateProduct stores a product. An empty category is stored as NULL.
func CreateProduct(t testing.TB, db *gorm.DB, name, category, price string) domain.Product {
	t.Helper()

	product := domain.Product{
		Name:      name,
		Category:  Category(category),
		Price:     Price(price),
		CreatedAt: Month(2023, time.January, 1),
	}
	require.NoError(t, db.Create(&product).Error)

	return product
}

func Category(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

// Line is one order item in CreateOrder.
type Line struct {
	Product  domain.Product
	Quantity int
	Price    string
}

func CreateOrder(t testing.TB, db *gorm.DB, user domain.User, status domain.OrderStatus, at time.Time, lines ...Line) domain.Order {
	t.Helper()

	order := domain.Order{UserID: user.UserID, Status: status, CreatedAt: at}
	for _, line := range lines {
		price := line.Product.Price
		if line.Price != "" {
			price = Price(line.Price)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:       line.Product.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: price,
		})
	}
	require.NoError(t, db.Create(&order).Error)

	return order
}
