package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Document store
	StoreDriver     string
	DatabaseURL     string
	DBMaxConns      int
	StoreMaxRetries int
	StoreRetryDelay time.Duration

	// Auth0
	Auth0Domain           string
	Auth0Audience         string
	Auth0ClientID         string
	Auth0MgmtClientID     string
	Auth0MgmtClientSecret string

	// Server
	Port               string
	CORSOrigins        []string
	Env                string
	RateLimitPerMinute int
	PublicAPIURL       string // Advertised in the OpenAPI document next to the local server

	// S3 Storage
	S3 S3Config

	// Redis search cache
	Redis RedisConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
	PublicBaseURL   string // Required with Bucket: stored photo URLs are built on it
}

// RedisConfig holds the search cache connection
type RedisConfig struct {
	Addr     string // Empty disables the cache
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		StoreDriver:           getEnv("STORE_DRIVER", DriverPostgres),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		DBMaxConns:            getEnvInt("DB_MAX_CONNS", 10),
		StoreMaxRetries:       getEnvInt("STORE_MAX_RETRIES", 10),
		StoreRetryDelay:       getEnvDuration("STORE_RETRY_DELAY", time.Second),
		Auth0Domain:           getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:         getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID:         getEnv("AUTH0_CLIENT_ID", ""),
		Auth0MgmtClientID:     getEnv("AUTH0_MGMT_CLIENT_ID", ""),
		Auth0MgmtClientSecret: getEnv("AUTH0_MGMT_CLIENT_SECRET", ""),
		Port:                  getEnv("PORT", "8080"),
		CORSOrigins:           strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                   getEnv("ENV", "development"),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		PublicAPIURL:          strings.TrimRight(getEnv("PUBLIC_API_URL", ""), "/"),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-west-2"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
			PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("SEARCH_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DirectoryEnabled reports whether Auth0 management credentials are configured
func (c *Config) DirectoryEnabled() bool {
	return c.Auth0MgmtClientID != "" && c.Auth0MgmtClientSecret != ""
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StoreDriver)
	}
	if c.StoreMaxRetries < 0 {
		return fmt.Errorf("STORE_MAX_RETRIES must not be negative")
	}
	if c.StoreRetryDelay < 0 {
		return fmt.Errorf("STORE_RETRY_DELAY must not be negative")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.S3.Bucket != "" && c.S3.PublicBaseURL == "" {
		return fmt.Errorf("S3_PUBLIC_BASE_URL is required when S3_BUCKET is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("500ms") or whole seconds ("2")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
