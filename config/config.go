package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	// Database configuration
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"recipes"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"recipes.db"`

	// Redis configuration; an empty URL disables rate limiting and the search cache
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// JWT configuration
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTAccessTTL    time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	JWTRefreshTTL   time.Duration `env:"JWT_REFRESH_TTL" env-default:"168h"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat       string        `env:"LOG_FORMAT" env-default:"json"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	RateLimitPerMin int           `env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`

	// Batch import source
	S3BucketName string `env:"S3_BUCKET_NAME"`
	AWSRegion    string `env:"AWS_REGION" env-default:"us-east-1"`
}

// secretFiles maps Docker secret file names to the fields they override.
var secretFiles = map[string]func(*Config, string){
	"db_password":    func(c *Config, v string) { c.DBPassword = v },
	"jwt_secret":     func(c *Config, v string) { c.JWTSecret = v },
	"redis_password": func(c *Config, v string) { c.RedisPassword = v },
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// Docker secrets win over plain environment variables outside CI
	if cfg.Environment.ReadsSecrets() {
		for name, set := range secretFiles {
			if v := readSecret(name); v != "" {
				set(cfg, v)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
