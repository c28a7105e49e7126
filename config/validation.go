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

// ValidateConfig checks the configuration for the current environment and
// reports every problem at once
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		if env == CI || env == Test {
			add("JWT_SECRET", "environment variable is required")
		} else {
			add("jwt_secret", "secret is required")
		}
	} else if IsProduction() && len(cfg.JWTSecret) < 32 {
		add("jwt_secret", "must be at least 32 characters in production")
	}

	if cfg.GeminiAPIKey == "" && env != Test && env != CI {
		add("GEMINI_API_KEY", "api key is required")
	}

	switch cfg.StorageBackend {
	case StorageMemory:
		if IsProduction() {
			add("STORAGE_BACKEND", "memory storage is not allowed in production")
		}
	case StorageRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_HOST", "redis host or url is required")
		}
	case StoragePostgres:
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_PORT": cfg.DBPort,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				add(field, "required for postgres storage")
			}
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required for sqlite storage")
		}
	default:
		add("STORAGE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.StorageBackend))
	}

	if cfg.GenerationLimit < 0 {
		add("GENERATION_LIMIT", "must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
