package config

import (
	"os"
	"strconv"
	"time"
)

// Credential sources accepted by CREDENTIAL_SOURCE.
const (
	CredentialSourceStatic   = "static"
	CredentialSourcePostgres = "postgres"
)

// DefaultMockShopToken is the token handed out by the static credential source.
const DefaultMockShopToken = "shpat_mock_secure_token_12345"

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// AIServiceConfig points at the downstream question-answering service.
type AIServiceConfig struct {
	BaseURL string
}

// CredentialConfig selects where store access tokens come from.
type CredentialConfig struct {
	Source        string
	MockToken     string
	EncryptionKey string // base64, 32 bytes once decoded
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string
	Timezone    string
	LogLevel    string
	Swagger     bool
	AIService   AIServiceConfig
	Credentials CredentialConfig
	Database    DatabaseConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Swagger:  getEnvBool("SWAGGER_ENABLED", true),
		AIService: AIServiceConfig{
			BaseURL: getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		},
		Credentials: CredentialConfig{
			Source:        getEnv("CREDENTIAL_SOURCE", CredentialSourceStatic),
			MockToken:     getEnv("MOCK_SHOP_TOKEN", DefaultMockShopToken),
			EncryptionKey: getEnv("TOKEN_ENCRYPTION_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
	}
}

// Location resolves Timezone, falling back to UTC when the name is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesDatabase reports whether the configured credential source needs PostgreSQL.
func (c *AppConfig) UsesDatabase() bool {
	return c.Credentials.Source == CredentialSourcePostgres
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
