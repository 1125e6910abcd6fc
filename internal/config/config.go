package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel  string
	LogFormat string

	// AdminPassword may be empty at startup; login reports the missing
	// configuration to the operator instead of failing the process.
	AdminPassword string

	AuthCookieSecure bool

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// ErrMissingDatabaseConfig is returned when the backend connection settings
// are incomplete. This is fatal at startup.
var ErrMissingDatabaseConfig = errors.New("missing database configuration")

// Load loads configuration from environment variables and a .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "omni-admin"),
		AppVersion:       getenv("APP_VERSION", "1.0.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFormat:        getenv("LOG_FORMAT", "json"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AuthCookieSecure: authCookieSecure,
		DBType:           getenv("DATABASE_TYPE", "postgres"),
		DBHost:           getenv("DATABASE_HOST", ""),
		DBPort:           getenv("DATABASE_PORT", "5432"),
		DBName:           getenv("DATABASE_NAME", ""),
		DBUser:           getenv("DATABASE_USER", ""),
		DBPassword:       os.Getenv("DATABASE_PASSWORD"),
		DBSSLMode:        getenv("DATABASE_SSLMODE", "disable"),
	}

	if cfg.DBType != "sqlite" {
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			return Config{}, ErrMissingDatabaseConfig
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
