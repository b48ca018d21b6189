package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"intellidash/domain"
	"intellidash/internal/testdb"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestAnalyticsEmptyDataSetReturnsZeroValues(t *testing.T) {
	repo := NewAnalyticsRepository(testdb.New(t))
	ctx := context.Background()

	revenue, err := repo.CompletedRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	orders, err := repo.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, orders)

	completed, err := repo.CountOrdersByStatus(ctx, domain.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, completed)

	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)

	sales, err := repo.SalesPerCategory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)

	trend, err := repo.MonthlyRevenueTrend(ctx)
	require.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Empty(t, trend)
}

func TestCompletedRevenueSingleOrder(t *testing.T) {
	db := testdb.New(t)
	repo := NewAnalyticsRepository(db)

	user := testdb.CreateUser(t, db, "a@example.com")
	p1 := testdb.CreateProduct(t, db, "Lamp", "Home & Kitchen", "10.00")
	p2 := testdb.CreateProduct(t, db, "Novel", "Books", "5.00")
	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2024, time.March, 3),
		testdb.Line{Product: p1, Quantity: 2},
		testdb.Line{Product: p2, Quantity: 1},
	)

	revenue, err := repo.CompletedRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25", revenue.String())
}

func TestCompletedRevenueIgnoresOtherStatusesAndUsesPurchasePrice(t *testing.T) {
	db := testdb.New(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	user := testdb.CreateUser(t, db, "a@example.com")
	lamp := testdb.CreateProduct(t, db, "Lamp", "Home & Kitchen", "99.00")
	at := testdb.Month(2024, time.March, 3)

	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, at, testdb.Line{Product: lamp, Quantity: 3, Price: "12.50"})
	testdb.CreateOrder(t, db, user, domain.OrderStatusPending, at, testdb.Line{Product: lamp, Quantity: 1})
	testdb.CreateOrder(t, db, user, domain.OrderStatusShipped, at, testdb.Line{Product: lamp, Quantity: 1})
	testdb.CreateOrder(t, db, user, domain.OrderStatusCancelled, at, testdb.Line{Product: lamp, Quantity: 1})

	revenue, err := repo.CompletedRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "37.5", revenue.String())

	orders, err := repo.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), orders)

	completed, err := repo.CountOrdersByStatus(ctx, domain.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)
}

func TestSalesPerCategorySortedDescending(t *testing.T) {
	db := testdb.New(t)
	repo := NewAnalyticsRepository(db)

	user := testdb.CreateUser(t, db, "a@example.com")
	book := testdb.CreateProduct(t, db, "Novel", "Books", "5.00")
	phone := testdb.CreateProduct(t, db, "Phone", "Electronics", "200.00")
	shirt := testdb.CreateProduct(t, db, "Shirt", "Apparel", "20.00")
	at := testdb.Month(2024, time.May, 10)

	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, at,
		testdb.Line{Product: book, Quantity: 3},
		testdb.Line{Product: shirt, Quantity: 1},
	)
	testdb.CreateOrder(t, db, user, domain.OrderStatusPending, at,
		testdb.Line{Product: phone, Quantity: 1},
		testdb.Line{Product: shirt, Quantity: 2},
	)

	sales, err := repo.SalesPerCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)

	// every order status counts towards category sales
	assert.Equal(t, testdb.Category("Electronics"), sales[0].Category)
	assert.Equal(t, "200", sales[0].TotalSales.String())
	assert.Equal(t, testdb.Category("Apparel"), sales[1].Category)
	assert.Equal(t, "60", sales[1].TotalSales.String())
	assert.Equal(t, testdb.Category("Books"), sales[2].Category)
	assert.Equal(t, "15", sales[2].TotalSales.String())

	for i := 1; i < len(sales); i++ {
		assert.True(t, sales[i-1].TotalSales.GreaterThanOrEqual(sales[i].TotalSales))
	}
}

func TestSalesPerCategoryKeepsNullCategoryApart(t *testing.T) {
	db := testdb.New(t)
	repo := NewAnalyticsRepository(db)

	user := testdb.CreateUser(t, db, "a@example.com")
	box := testdb.CreateProduct(t, db, "Mystery Box", "", "7.00")
	blank := domain.Product{Name: "Blank", Category: new(string), Price: testdb.Price("2.00")}
	require.NoError(t, db.Create(&blank).Error)
	book := testdb.CreateProduct(t, db, "Novel", "Books", "5.00")

	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2024, time.May, 10),
		testdb.Line{Product: box, Quantity: 1},
		testdb.Line{Product: blank, Quantity: 1},
		testdb.Line{Product: book, Quantity: 1},
	)

	sales, err := repo.SalesPerCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)

	assert.Nil(t, sales[0].Category)
	assert.Equal(t, "7", sales[0].TotalSales.String())
	assert.Equal(t, testdb.Category("Books"), sales[1].Category)
	require.NotNil(t, sales[2].Category)
	assert.Equal(t, "", *sales[2].Category)
	assert.Equal(t, "2", sales[2].TotalSales.String())
}

func TestMonthlyRevenueTrendAscendingWithGaps(t *testing.T) {
	db := testdb.New(t)
	repo := NewAnalyticsRepository(db)

	user := testdb.CreateUser(t, db, "a@example.com")
	lamp := testdb.CreateProduct(t, db, "Lamp", "Home & Kitchen", "10.00")

	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2024, time.March, 2), testdb.Line{Product: lamp, Quantity: 1})
	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2024, time.January, 20), testdb.Line{Product: lamp, Quantity: 2})
	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2024, time.January, 5), testdb.Line{Product: lamp, Quantity: 1})
	// February only has a cancelled order, so it is absent from the trend
	testdb.CreateOrder(t, db, user, domain.OrderStatusCancelled, testdb.Month(2024, time.February, 14), testdb.Line{Product: lamp, Quantity: 5})
	testdb.CreateOrder(t, db, user, domain.OrderStatusCompleted, testdb.Month(2023, time.December, 31), testdb.Line{Product: lamp, Quantity: 4})

	trend, err := repo.MonthlyRevenueTrend(context.Background())
	require.NoError(t, err)

	var months []string
	for _, m := range trend {
		months = append(months, m.Month)
	}
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-03"}, months)
	assert.Equal(t, "40", trend[0].Revenue.String())
	assert.Equal(t, "30", trend[1].Revenue.String())
	assert.Equal(t, "10", trend[2].Revenue.String())
}

func TestMonthlyRevenueTrendPostgresDialect(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT to_char\(orders\.created_at, 'YYYY-MM'\) AS month, SUM\(` + regexp.QuoteMeta(lineTotal) + `\) AS revenue FROM "orders" JOIN order_items .+ WHERE orders\.status = \$1 GROUP BY .*month.* ORDER BY month ASC`).
		WithArgs(string(domain.OrderStatusCompleted)).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("2024-01", "120.50").
			AddRow("2024-02", "80.25"))

	trend, err := NewAnalyticsRepository(db).MonthlyRevenueTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01", trend[0].Month)
	assert.Equal(t, "120.5", trend[0].Revenue.String())
	assert.Equal(t, "80.25", trend[1].Revenue.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "to_char(orders.created_at, 'YYYY-MM')", monthLabel("postgres", "orders.created_at"))
	assert.Equal(t, "DATE_FORMAT(orders.created_at, '%Y-%m')", monthLabel("mysql", "orders.created_at"))
	assert.Equal(t, "strftime('%Y-%m', orders.created_at)", monthLabel("sqlite", "orders.created_at"))
}
