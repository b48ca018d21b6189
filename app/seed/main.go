package main

import (
	"context"
	"log"

	"intellidash/business/seed"
	psqlRepo "intellidash/internal/repository/postgres"
	"intellidash/pkg/config"
	"intellidash/pkg/database"
	"intellidash/pkg/logger"

	"github.com/go-playground/validator/v10"
)

func main() {
	cfg, err := config.LoadSeed()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.Init(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	seedService := seed.NewSeedService(seed.Repositories{
		Users:    psqlRepo.NewUserRepository(db),
		Products: psqlRepo.NewProductRepository(db),
		Orders:   psqlRepo.NewOrdersRepository(db),
		Reviews:  psqlRepo.NewReviewRepository(db),
	}, cfg.Seed, validator.New())

	summary, err := seedService.Run(context.Background())
	if err != nil {
		logger.Fatal("Failed to generate data", "error", err)
	}

	logger.Info("Data generation complete",
		"users", summary.Users,
		"products", summary.Products,
		"orders", summary.Orders,
		"order_items", summary.OrderItems,
		"reviews", summary.Reviews,
	)
}
