package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultJWTSecret is only fit for local development.
const DefaultJWTSecret = "change-me"

type Config struct {
	Port string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBTimeZone string
	SQLitePath string
	DBLogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	// How often dead sessions are purged
	SessionCleanupInterval time.Duration

	CORSOrigins []string

	// Default administrator seeded at startup
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() Config {
	return Config{
		Port:                   getEnv("PORT", "8080"),
		DBDriver:               strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "quizmaster"),
		DBTimeZone:             getEnv("DB_TIMEZONE", "UTC"),
		SQLitePath:             getEnv("SQLITE_PATH", "quizmaster.sqlite3"),
		DBLogLevel:             strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		JWTSecret:              getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:               getDuration("TOKEN_TTL", 24*time.Hour),
		SessionCleanupInterval: getDuration("SESSION_CLEANUP_INTERVAL", 6*time.Hour),
		CORSOrigins:            getList("CORS_ORIGINS", "http://localhost:5173"),
		AdminUsername:          getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:             getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:          getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

// Validate rejects settings that must not reach a shared deployment. The
// default signing secret is tolerated, with a warning, only on sqlite.
func (c Config) Validate() error {
	if c.JWTSecret != DefaultJWTSecret {
		return nil
	}
	if c.DBDriver != "sqlite" {
		return fmt.Errorf("JWT_SECRET is not set; refusing to start with the %s driver", c.DBDriver)
	}
	log.Println("WARNING: JWT_SECRET is not set, tokens are signed with the default development secret")
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, val, fallback)
		return fallback
	}
	return d
}

func getList(key, fallback string) []string {
	parts := strings.Split(getEnv(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Dialector picks the gorm driver for DB_DRIVER.
func (c Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

func (c Config) logLevel() logger.LogLevel {
	switch c.DBLogLevel {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDatabase opens the store and tunes the connection pool.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(cfg.logLevel()),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Subject{},
		&models.Chapter{},
		&models.Quiz{},
		&models.Question{},
		&models.Score{},
	)
}

// InitDB connects and migrates, exiting the process on failure.
func InitDB(cfg Config) *gorm.DB {
	db, err := ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("cannot connect to database: ", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatal("autoMigrate failed: ", err)
	}
	log.Printf("%s connected & migrated successfully", cfg.DBDriver)
	return db
}
