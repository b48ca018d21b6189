package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"intellidash/pkg/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqliteMemory = ":memory:"

// Init opens the application-lifetime connection pool described by
// cfg.Database.URL and verifies it with a ping.
func Init(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.App.Environment == "production" {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	// every new connection to an in-memory sqlite database is a fresh, empty database
	if d, ok := dialector.(*sqlite.Dialector); ok && d.DSN == sqliteMemory {
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Dialector picks the gorm dialect from a database URL. Driver suffixes in
// the scheme (postgresql+psycopg2://, mysql+pymysql://) are ignored.
func Dialector(rawURL string) (gorm.Dialector, error) {
	scheme, _, found := strings.Cut(rawURL, "://")
	if !found {
		return nil, fmt.Errorf("invalid database url: missing scheme")
	}
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "postgres", "postgresql":
		return postgres.Open(normalizePostgresURL(rawURL)), nil
	case "mysql":
		dsn, err := mysqlDSN(rawURL)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		return &sqlite.Dialector{DSN: sqlitePath(rawURL)}, nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

func normalizePostgresURL(rawURL string) string {
	_, rest, _ := strings.Cut(rawURL, "://")
	return "postgres://" + rest
}

func mysqlDSN(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid mysql url: %w", err)
	}

	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}

	query := u.Query()
	if len(query) > 0 {
		cfg.Params = make(map[string]string, len(query))
		for key := range query {
			cfg.Params[key] = query.Get(key)
		}
	}

	return cfg.FormatDSN(), nil
}

// sqlitePath follows the sqlite:///relative.db and sqlite:////absolute.db
// conventions; an empty path means an in-memory database.
func sqlitePath(rawURL string) string {
	_, path, _ := strings.Cut(rawURL, "://")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return sqliteMemory
	}

	return path
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
