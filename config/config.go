package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by the server
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Storage backend: memory, redis, postgres or sqlite
	StorageBackend string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret  string
	SessionTTL time.Duration

	// Gemini configuration
	GeminiAPIKey  string
	GeminiAPIURL  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Plan generation rate limit, per user
	GenerationLimit  int
	GenerationWindow time.Duration

	// Allowed CORS origins
	CORSOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI, Test:
		loadEnvConfig(cfg)
	case Development:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	applyDefaults(cfg)

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig loads configuration for CI and test runs from environment variables only
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.StorageBackend = os.Getenv("STORAGE_BACKEND")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = atoiOr(os.Getenv("REDIS_DB"), 0)
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiAPIURL = os.Getenv("GEMINI_API_URL")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.SessionTTL = durationOr(os.Getenv("SESSION_TTL"), 0)
	cfg.GeminiTimeout = durationOr(os.Getenv("GEMINI_TIMEOUT"), 0)
	cfg.GenerationLimit = atoiOr(os.Getenv("GENERATION_LIMIT"), 0)
	cfg.GenerationWindow = durationOr(os.Getenv("GENERATION_WINDOW"), 0)
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
}

// loadDevConfig loads configuration for development: plain settings from the
// environment, credentials from Docker secrets when present
func loadDevConfig(cfg *Config) error {
	loadEnvConfig(cfg)

	secretsDir := secretsDir()
	if _, err := os.Stat(secretsDir); err != nil {
		// No secrets mounted, everything comes from the environment (.env)
		return nil
	}

	for name, dst := range map[string]*string{
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
		"gemini_api_key": &cfg.GeminiAPIKey,
	} {
		if *dst != "" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(secretsDir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read secret %s: %v", name, err)
		}
		*dst = strings.TrimSpace(string(content))
	}

	return nil
}

// loadProdConfig loads configuration for production: credentials come ONLY from Docker secrets
func loadProdConfig(cfg *Config) {
	loadEnvConfig(cfg)

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}
}

// applyDefaults fills in optional values
func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StorageMemory
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "ada.db"
	}
	if cfg.RedisHost == "" {
		cfg.RedisHost = "localhost"
	}
	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	if cfg.GeminiAPIURL == "" {
		cfg.GeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}
	if cfg.GeminiTimeout == 0 {
		cfg.GeminiTimeout = 90 * time.Second
	}
	if cfg.GenerationLimit == 0 {
		cfg.GenerationLimit = 10
	}
	if cfg.GenerationWindow == 0 {
		cfg.GenerationWindow = time.Hour
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func secretsDir() string {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = "/run/secrets"
	}
	return dir
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretPath := filepath.Join(secretsDir(), name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func atoiOr(s string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}

func durationOr(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
		return d
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
