package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port           string
	AdminPassword  string
	AllowedOrigins []string
	StaticDir      string
	MigrationsPath string

	Database  DatabaseConfig
	Captcha   CaptchaConfig
	RateLimit RateLimitConfig
	Telegram  TelegramConfig

	// FeedbackRetentionDays of 0 keeps feedback forever
	FeedbackRetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// CaptchaConfig holds hCaptcha verification settings
type CaptchaConfig struct {
	Secret    string
	VerifyURL string
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	PerDay          int
	PerHour         int
	FeedbackPerHour int
	RedisURL        string
}

// TelegramConfig holds the optional feedback notification target
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether Telegram notifications are configured
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AdminPassword:  os.Getenv("ADMIN_PASS"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		StaticDir:      getEnv("STATIC_DIR", "static"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		Database:       databaseFromEnv(),
		Captcha: CaptchaConfig{
			Secret:    os.Getenv("HCAPTCHA_SECRET"),
			VerifyURL: getEnv("HCAPTCHA_VERIFY_URL", "https://hcaptcha.com/siteverify"),
		},
		RateLimit: RateLimitConfig{
			RedisURL: os.Getenv("REDIS_URL"),
		},
	}

	var err error
	if cfg.RateLimit.PerDay, err = getEnvInt("RATE_LIMIT_PER_DAY", 200); err != nil {
		return nil, err
	}
	if cfg.RateLimit.PerHour, err = getEnvInt("RATE_LIMIT_PER_HOUR", 50); err != nil {
		return nil, err
	}
	if cfg.RateLimit.FeedbackPerHour, err = getEnvInt("FEEDBACK_LIMIT_PER_HOUR", 3); err != nil {
		return nil, err
	}
	if cfg.FeedbackRetentionDays, err = getEnvInt("FEEDBACK_RETENTION_DAYS", 0); err != nil {
		return nil, err
	}

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.Telegram.ChatID = chatID
	}

	// Validate required fields
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASS is required")
	}
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.RateLimit.PerDay <= 0 || cfg.RateLimit.PerHour <= 0 || cfg.RateLimit.FeedbackPerHour <= 0 {
		return nil, fmt.Errorf("rate limits must be positive")
	}
	if cfg.FeedbackRetentionDays < 0 {
		return nil, fmt.Errorf("FEEDBACK_RETENTION_DAYS must not be negative")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that need no other configuration
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	db := databaseFromEnv()
	if err := db.validate(); err != nil {
		return DatabaseConfig{}, err
	}
	return db, nil
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "ereyga"),
		User:     getEnv("DB_USER", "ereyga"),
		Password: os.Getenv("DB_PASSWORD"),
	}
}

func (d DatabaseConfig) validate() error {
	if d.URL == "" && d.Password == "" {
		return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return c.Database.DSN()
}

// DSN returns PostgreSQL connection string, preferring DATABASE_URL
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
