package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intellidash/app/echo-server/router"
	"intellidash/business/analytics"
	"intellidash/business/nlquery"
	"intellidash/business/product"
	"intellidash/business/user"
	"intellidash/internal/graph"
	"intellidash/internal/middleware"
	"intellidash/internal/repository/llm"
	psqlRepo "intellidash/internal/repository/postgres"
	"intellidash/internal/rest"
	"intellidash/pkg/config"
	"intellidash/pkg/database"
	"intellidash/pkg/logger"
	"intellidash/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting IntelliDash", "version", cfg.App.Version, "environment", cfg.App.Environment)

	db, err := database.Init(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	logger.Info("Database connected successfully", "dialect", db.Dialector.Name())

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database handle", "error", err)
	}

	metrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	userRepo := psqlRepo.NewUserRepository(db)
	analyticsRepo := psqlRepo.NewAnalyticsRepository(db)
	sqlDatabaseRepo := psqlRepo.NewSQLDatabaseRepository(db)

	chatModel, err := llm.NewChatModel(llm.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		logger.Fatal("Failed to create chat model", "error", err)
	}

	agent, err := nlquery.NewSQLAgent(chatModel, sqlDatabaseRepo, nlquery.AgentConfig{
		MaxRows:     cfg.LLM.MaxRows,
		SampleRows:  cfg.LLM.SampleRows,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		logger.Fatal("Failed to create SQL agent", "error", err)
	}
	logger.Info("SQL agent ready", "model", cfg.LLM.Model, "dialect", sqlDatabaseRepo.Dialect())

	// Init service
	productService := product.NewProductService(productRepo)
	userService := user.NewUserService(userRepo)
	analyticsService := analytics.NewAnalyticsService(analyticsRepo)
	nlQueryService := nlquery.NewNLQueryService(agent, validate)

	schema, err := graph.NewSchema(graph.Services{
		Product:   productService,
		User:      userService,
		Analytics: analyticsService,
		NLQuery:   nlQueryService,
	})
	if err != nil {
		logger.Fatal("Failed to build GraphQL schema", "error", err)
	}

	// Init handler
	graphqlHandler := rest.NewGraphQLHandler(
		func(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Result {
			return graph.Execute(ctx, schema, query, variables, operationName)
		},
		validate,
	)
	rootHandler := rest.NewRootHandler(sqlDB)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))

	// Setup routes
	router.SetupRootRoutes(e, rootHandler)
	router.SetupGraphQLRoutes(e, graphqlHandler, middleware.DBSession(db))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
