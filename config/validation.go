package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequirePostgres bool
	RequiredSecrets []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {},
	Test:        {},
	CI:          {},
	Production: {
		RequirePostgres: true,
		RequiredSecrets: []string{"db_password", "jwt_secret"},
	},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Environment]

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "host and database name are required for postgres")
		}
	case "sqlite":
		if reqs.RequirePostgres {
			add("DB_DRIVER", "sqlite is not allowed in "+string(cfg.Environment))
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required when DB_DRIVER=sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	for _, secret := range reqs.RequiredSecrets {
		if readSecret(secret) == "" {
			add(secret, "required secret is not set")
		}
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}
	if cfg.JWTAccessTTL <= 0 || cfg.JWTRefreshTTL <= 0 {
		add("JWT_ACCESS_TTL", "token lifetimes must be positive")
	}
	if cfg.RateLimitPerMin < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
