package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Required  bool
	JWTSecret string
	Username  string
	Password  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "3001"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Username: getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: getEnv("DB_NAME", "registros"),
		},
		Auth: AuthConfig{
			Required:  getEnv("AUTH_REQUIRED", "false") == "true",
			JWTSecret: getEnv("JWT_SECRET", "registros-dev-secret"),
			Username:  getEnv("AUTH_USER", "admin"),
			Password:  os.Getenv("AUTH_PASSWORD"),
		},
	}, nil
}

// ClientConfig holds configuration for the CLI client
type ClientConfig struct {
	APIURL      string
	StagingFile string
}

// LoadClient loads client configuration from environment variables
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		APIURL:      getEnv("REGISTROS_API_URL", "http://localhost:3001"),
		StagingFile: os.Getenv("REGISTROS_STAGING_FILE"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
