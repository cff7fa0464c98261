package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	JobFeed  JobFeedConfig
	AIChat   AIChatConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret     string
	MinWithdrawal decimal.Decimal
	AdminEmails   []string
}

// JobFeedConfig holds the job aggregation feed settings
type JobFeedConfig struct {
	BaseURL         string
	APIKey          string
	RefreshInterval time.Duration
}

// AIChatConfig holds the career-advice completion settings
type AIChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	minWithdrawal, err := decimal.NewFromString(getEnv("MIN_WITHDRAWAL", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_WITHDRAWAL: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("JOB_FEED_REFRESH_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_FEED_REFRESH_INTERVAL: %w", err)
	}

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "lifemate"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			MinWithdrawal: minWithdrawal,
			AdminEmails:   splitList(getEnv("ADMIN_EMAILS", "")),
		},
		JobFeed: JobFeedConfig{
			BaseURL:         getEnv("JOB_FEED_URL", "https://feeds.lifemate.app"),
			APIKey:          getEnv("JOB_FEED_API_KEY", ""),
			RefreshInterval: refreshInterval,
		},
		AIChat: AIChatConfig{
			BaseURL: getEnv("AI_CHAT_URL", "https://api.openai.com"),
			APIKey:  getEnv("AI_CHAT_API_KEY", ""),
			Model:   getEnv("AI_CHAT_MODEL", "gpt-3.5-turbo"),
		},
	}

	// Validate required fields
	if config.App.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated env value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
