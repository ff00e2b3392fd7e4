package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	IndexName     string // GSI1 - email and user-level lookups
	GSI2IndexName string // GSI2 - global post feed
	EventBusName  string

	// Authentication
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// GitHub repository lookup
	GithubClientID string
	GithubSecret   string
	GithubAPIURL   string

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables. In
// development a .env file in the working directory is read first.
func LoadConfig() (*Config, error) {
	if getEnv("ENVIRONMENT", "development") != "production" {
		// Missing .env is fine; explicit env vars still apply.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "devlink"),
		IndexName:     getEnv("INDEX_NAME", "LookupIndex"),
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "FeedIndex"),
		EventBusName:  getEnv("EVENT_BUS_NAME", ""),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "devlink-backend"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_SECONDS", 600000)) * time.Second,

		// GitHub
		GithubClientID: getEnv("GITHUB_CLIENT_ID", ""),
		GithubSecret:   getEnv("GITHUB_SECRET", ""),
		GithubAPIURL:   getEnv("GITHUB_API_URL", "https://api.github.com"),

		// Logging and features
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present. The JWT secret
// is required in every environment: the token components reject an empty
// secret anyway, and failing here names the missing variable.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" {
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_SECONDS must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
