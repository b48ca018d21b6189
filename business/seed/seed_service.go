package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intellidash/domain"
	"intellidash/pkg/config"
	"intellidash/pkg/logger"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	Categories = []string{"Electronics", "Books", "Home & Kitchen", "Apparel", "Sports"}
	Genders    = []string{"male", "female", "other"}
)

type UserRepository interface {
	CreateBatch(ctx context.Context, users []domain.User) error
	DeleteAll(ctx context.Context) error
}

type ProductRepository interface {
	CreateBatch(ctx context.Context, products []domain.Product) error
	DeleteAll(ctx context.Context) error
}

type OrdersRepository interface {
	CreateBatch(ctx context.Context, orders []domain.Order) error
	DeleteAll(ctx context.Context) error
}

type ReviewRepository interface {
	CreateBatch(ctx context.Context, reviews []domain.Review) error
	DeleteAll(ctx context.Context) error
}

type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Orders   OrdersRepository
	Reviews  ReviewRepository
}

// Summary counts the rows one run inserted.
type Summary struct {
	Users      int
	Products   int
	Orders     int
	OrderItems int
	Reviews    int

	// CompletedRevenue is what the dashboard's total revenue should report
	// right after the run.
	CompletedRevenue decimal.Decimal
}

type seedService struct {
	repos    Repositories
	cfg      config.SeedConfig
	validate *validator.Validate
	now      func() time.Time
}

func NewSeedService(repos Repositories, cfg config.SeedConfig, validate *validator.Validate) *seedService {
	return &seedService{
		repos:    repos,
		cfg:      cfg,
		validate: validate,
		now:      time.Now,
	}
}

// Run wipes every table and fills it with fake shop data.
func (s *seedService) Run(ctx context.Context) (Summary, error) {
	if err := s.validate.Struct(s.cfg); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.reset(ctx); err != nil {
		return Summary{}, err
	}

	faker := gofakeit.New(s.cfg.FakerSeed)
	now := s.now().UTC()

	users := s.generateUsers(faker, now)
	if err := s.repos.Users.CreateBatch(ctx, users); err != nil {
		return Summary{}, err
	}
	logger.Info("generated users", "count", len(users))

	products := s.generateProducts(faker, now)
	if err := s.repos.Products.CreateBatch(ctx, products); err != nil {
		return Summary{}, err
	}
	logger.Info("generated products", "count", len(products))

	orders := s.generateOrders(faker, now, users, products)
	if err := s.validateOrders(orders); err != nil {
		return Summary{}, err
	}
	if err := s.repos.Orders.CreateBatch(ctx, orders); err != nil {
		return Summary{}, err
	}

	items := 0
	revenue := decimal.Zero
	for _, order := range orders {
		items += len(order.Items)
		if order.Status != domain.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			revenue = revenue.Add(item.LineTotal())
		}
	}
	logger.Info("generated orders", "count", len(orders), "items", items, "completed_revenue", revenue.StringFixed(2))

	reviews := s.generateReviews(faker, now, users, products)
	for _, review := range reviews {
		if err := s.validate.Struct(review); err != nil {
			return Summary{}, fmt.Errorf("%w: generated review: %v", domain.ErrValidation, err)
		}
	}
	if err := s.repos.Reviews.CreateBatch(ctx, reviews); err != nil {
		return Summary{}, err
	}
	logger.Info("generated reviews", "count", len(reviews))

	return Summary{
		Users:      len(users),
		Products:   len(products),
		Orders:     len(orders),
		OrderItems: items,
		Reviews:    len(reviews),

		CompletedRevenue: revenue,
	}, nil
}

func (s *seedService) validateOrders(orders []domain.Order) error {
	for _, order := range orders {
		if err := s.validate.Struct(order); err != nil {
			return fmt.Errorf("%w: generated order: %v", domain.ErrValidation, err)
		}
		for _, item := range order.Items {
			if err := s.validate.Struct(item); err != nil {
				return fmt.Errorf("%w: generated order item: %v", domain.ErrValidation, err)
			}
		}
	}

	return nil
}

func (s *seedService) reset(ctx context.Context) error {
	steps := []struct {
		name  string
		clear func(context.Context) error
	}{
		{"reviews", s.repos.Reviews.DeleteAll},
		{"orders", s.repos.Orders.DeleteAll},
		{"products", s.repos.Products.DeleteAll},
		{"users", s.repos.Users.DeleteAll},
	}

	for _, step := range steps {
		if err := step.clear(ctx); err != nil {
			return fmt.Errorf("failed to reset %s: %w", step.name, err)
		}
	}
	logger.Info("old data deleted")

	return nil
}

func (s *seedService) generateUsers(faker *gofakeit.Faker, now time.Time) []domain.User {
	users := make([]domain.User, 0, s.cfg.Users)
	seen := make(map[string]struct{}, s.cfg.Users)

	for i := 0; i < s.cfg.Users; i++ {
		email := uniqueEmail(faker, seen, i)
		country := faker.Country()
		age := faker.Number(18, 70)
		gender := faker.RandomString(Genders)

		users = append(users, domain.User{
			Email:     email,
			CreatedAt: faker.DateRange(now.AddDate(-2, 0, 0), now),
			Country:   &country,
			Age:       &age,
			Gender:    &gender,
		})
	}

	return users
}

func uniqueEmail(faker *gofakeit.Faker, seen map[string]struct{}, i int) string {
	for attempt := 0; attempt < 5; attempt++ {
		email := strings.ToLower(faker.Email())
		if _, ok := seen[email]; !ok {
			seen[email] = struct{}{}
			return email
		}
	}

	email := fmt.Sprintf("user%d.%s", i, strings.ToLower(faker.Email()))
	seen[email] = struct{}{}
	return email
}

func (s *seedService) generateProducts(faker *gofakeit.Faker, now time.Time) []domain.Product {
	products := make([]domain.Product, 0, s.cfg.Products)

	for i := 0; i < s.cfg.Products; i++ {
		category := faker.RandomString(Categories)
		products = append(products, domain.Product{
			Name:      faker.ProductName(),
			Category:  &category,
			Price:     decimal.NewFromFloat(faker.Float64Range(5, 500)).Round(2),
			CreatedAt: faker.DateRange(now.AddDate(-3, 0, 0), now.AddDate(-1, 0, 0)),
		})
	}

	return products
}

func (s *seedService) generateOrders(faker *gofakeit.Faker, now time.Time, users []domain.User, products []domain.Product) []domain.Order {
	orders := make([]domain.Order, 0, s.cfg.Orders)
	statuses := make([]string, 0, len(domain.OrderStatuses))
	for _, status := range domain.OrderStatuses {
		statuses = append(statuses, string(status))
	}

	for i := 0; i < s.cfg.Orders; i++ {
		user := users[faker.Number(0, len(users)-1)]
		order := domain.Order{
			UserID:    user.UserID,
			Status:    domain.OrderStatus(faker.RandomString(statuses)),
			CreatedAt: faker.DateRange(now.AddDate(-1, 0, 0), now),
		}

		for n := faker.Number(1, s.cfg.MaxItemsPerOrder); n > 0; n-- {
			product := products[faker.Number(0, len(products)-1)]
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:       product.ProductID,
				Quantity:        faker.Number(1, s.cfg.MaxQuantityPerItem),
				PriceAtPurchase: product.Price,
			})
		}

		orders = append(orders, order)
	}

	return orders
}

func (s *seedService) generateReviews(faker *gofakeit.Faker, now time.Time, users []domain.User, products []domain.Product) []domain.Review {
	var reviews []domain.Review

	for _, product := range products {
		n := faker.Number(0, s.cfg.MaxReviewsPerProduct)
		for _, user := range sampleUsers(faker, users, n) {
			reviews = append(reviews, domain.Review{
				ProductID:  product.ProductID,
				UserID:     user.UserID,
				Rating:     faker.Number(1, 5),
				ReviewText: faker.Paragraph(1, 3, 12, " "),
				CreatedAt:  faker.DateRange(product.CreatedAt, now),
			})
		}
	}

	return reviews
}

// sampleUsers picks n distinct users, or all of them when n exceeds the pool.
func sampleUsers(faker *gofakeit.Faker, users []domain.User, n int) []domain.User {
	if n >= len(users) {
		return users
	}

	pool := make([]domain.User, len(users))
	copy(pool, users)
	for i := 0; i < n; i++ {
		j := faker.Number(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}
