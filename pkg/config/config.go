package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port             string
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	SampleRows  int
	MaxRows     int
}

type SeedConfig struct {
	Users                int   `validate:"gt=0"`
	Products             int   `validate:"gt=0"`
	Orders               int   `validate:"gte=0"`
	MaxReviewsPerProduct int   `validate:"gte=0"`
	MaxItemsPerOrder     int   `validate:"gt=0"`
	MaxQuantityPerItem   int   `validate:"gt=0"`
	FakerSeed            int64 `validate:"gte=0"`
}

var (
	ErrMissingDatabaseURL = errors.New("missing database url: set DATABASE_URL")
	ErrMissingLLMAPIKey   = errors.New("missing llm api key: set GOOGLE_API_KEY")
)

// Load reads the API server configuration. Both the database URL and the
// language model credential are required.
func Load() (*Config, error) {
	cfg := load()

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}

	if cfg.LLM.APIKey == "" {
		return nil, ErrMissingLLMAPIKey
	}

	return cfg, nil
}

// LoadSeed reads the configuration for the data generator, which never talks
// to the language model.
func LoadSeed() (*Config, error) {
	cfg := load()

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}

	return cfg, nil
}

func load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "IntelliDash API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:             getEnv("PORT", "8000"),
			CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", false),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GOOGLE_API_KEY", ""),
			BaseURL:     getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
			Model:       getEnv("LLM_MODEL", "gemini-pro-latest"),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0),
			SampleRows:  getEnvInt("LLM_SAMPLE_ROWS", 3),
			MaxRows:     getEnvInt("LLM_MAX_ROWS", 200),
		},
		Seed: SeedConfig{
			Users:                getEnvInt("SEED_USERS", 200),
			Products:             getEnvInt("SEED_PRODUCTS", 100),
			Orders:               getEnvInt("SEED_ORDERS", 1000),
			MaxReviewsPerProduct: getEnvInt("SEED_MAX_REVIEWS_PER_PRODUCT", 5),
			MaxItemsPerOrder:     getEnvInt("SEED_MAX_ITEMS_PER_ORDER", 5),
			MaxQuantityPerItem:   getEnvInt("SEED_MAX_QUANTITY_PER_ITEM", 3),
			FakerSeed:            int64(getEnvInt("SEED_FAKER_SEED", 0)),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}

	return val
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultVal
	}

	return val
}

func getEnvBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}

	return val
}

func getEnvList(key string, defaultVal []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}

	return out
}
