package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP server
	Port int

	// Directory for file-backed blob storage when Redis is disabled
	StateDir string

	// Redis configuration (optional blob store backend)
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Database configuration (optional research-log mirror)
	Database DatabaseConfig

	// Assistant configuration
	Assistant AssistantConfig

	// Dashboard configuration
	Dashboard DashboardConfig
}

// DatabaseConfig holds the optional Postgres research-log mirror settings
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// AssistantConfig holds the generative-AI assistant service configuration
type AssistantConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	Model    string
}

// DashboardConfig holds dashboard behaviour parameters
type DashboardConfig struct {
	// Number of days of synthetic history generated per metric at startup
	HistoryDays int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:     getEnvInt("PORT", 8080),
		StateDir: getEnvOrDefault("STATE_DIR", "./data"),

		RedisEnabled:  getEnvOrDefault("REDIS_ENABLED", "false") == "true",
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		Database: DatabaseConfig{
			Enabled:  getEnvOrDefault("DB_ENABLED", "false") == "true",
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			Name:     getEnvOrDefault("DB_NAME", "vitaldeck_research"),
			User:     getEnvOrDefault("DB_USER", "vitaldeck"),
			Password: getEnvOrDefault("DB_PASSWORD", "vitaldeck123"),
		},

		Assistant: AssistantConfig{
			Enabled:  getEnvOrDefault("ASSISTANT_ENABLED", "false") == "true",
			Endpoint: getEnvOrDefault("ASSISTANT_ENDPOINT", "https://generativelanguage.googleapis.com"),
			APIKey:   getEnvOrDefault("ASSISTANT_API_KEY", ""),
			Model:    getEnvOrDefault("ASSISTANT_MODEL", "gemini-3-flash-preview"),
		},

		Dashboard: DashboardConfig{
			HistoryDays: getEnvInt("DASHBOARD_HISTORY_DAYS", 30),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
