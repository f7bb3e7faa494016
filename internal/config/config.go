package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	CORS      CORSConfig      `koanf:"cors"`
	Logging   LoggingConfig   `koanf:"logging"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // "postgres" or "sqlite"
	DSN    string `koanf:"dsn"`
}

type AuthConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
	GoogleClientID string        `koanf:"google_client_id"`
	GoogleIssuer   string        `koanf:"google_issuer"`
	GoogleJWKSURL  string        `koanf:"google_jwks_url"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	ClientURL      string   `koanf:"client_url"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

type RateLimitConfig struct {
	LoginPerMinute int `koanf:"login_per_minute"`
	LoginBurst     int `koanf:"login_burst"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Auth: AuthConfig{
			TokenTTL:      168 * time.Hour,
			GoogleIssuer:  "https://accounts.google.com",
			GoogleJWKSURL: "https://www.googleapis.com/oauth2/v3/certs",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: 30,
			LoginBurst:     10,
		},
	}
}

// Load reads .env (if present), then layers struct defaults, an optional YAML
// file named by CONFIG_PATH, and finally environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.CORS.AllowedOrigins = normalizeOrigins(cfg.CORS.AllowedOrigins, cfg.CORS.ClientURL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

var envMappings = map[string]string{
	"port":             "server.port",
	"gin_mode":         "server.mode",
	"shutdown_timeout": "server.shutdown_timeout",
	"db_driver":        "database.driver",
	"database_url":     "database.dsn",
	"jwt_secret":       "auth.jwt_secret",
	"token_ttl":        "auth.token_ttl",
	"google_client_id": "auth.google_client_id",
	"google_issuer":    "auth.google_issuer",
	"google_jwks_url":  "auth.google_jwks_url",
	"allowed_origins":  "cors.allowed_origins",
	"client_url":       "cors.client_url",
	"log_level":        "logging.level",
	"log_format":       "logging.format",
	"login_rate_limit": "rate_limit.login_per_minute",
	"login_rate_burst": "rate_limit.login_burst",
}

// envTransformFunc maps known environment variables to koanf paths. Anything
// else in the environment is ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func normalizeOrigins(origins []string, clientURL string) []string {
	seen := make(map[string]bool, len(origins)+1)
	result := make([]string, 0, len(origins)+1)

	// ALLOWED_ORIGINS arrives as a single comma-separated value
	for _, entry := range append(origins, clientURL) {
		for _, origin := range strings.Split(entry, ",") {
			trimmed := strings.TrimSpace(origin)

			if trimmed == "" || seen[trimmed] {
				continue
			}

			seen[trimmed] = true
			result = append(result, trimmed)
		}
	}

	return result
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	if c.Auth.GoogleClientID == "" {
		return errors.New("GOOGLE_CLIENT_ID environment variable is not set")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}

	if c.Server.Port == "" {
		return errors.New("server port must not be empty")
	}

	return nil
}
