package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	AccessTokenTTL time.Duration

	AuthProvider   string
	AuthBackendURL string

	// Empty DatabaseURL keeps the roster in memory.
	DatabaseURL string
	// Empty RedisURL keeps revoked tokens in memory.
	RedisURL string

	OrderSink   string
	SinkTimeout time.Duration

	AllowedOrigins []string
	LogLevel       string

	// Keys whose values failed to parse; Load keeps the fallback and
	// Validate reports them.
	malformed []string
}

func Load() *Config {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AuthProvider:   strings.ToLower(getEnv("AUTH_PROVIDER", enum.AuthProviderMock)),
		AuthBackendURL: getEnv("AUTH_BACKEND_URL", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		OrderSink:      strings.ToLower(getEnv("ORDER_SINK", enum.OrderSinkNotify)),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	cfg.AccessTokenTTL = cfg.getEnvAsDuration("ACCESS_TOKEN_TTL", 8*time.Hour)
	cfg.SinkTimeout = cfg.getEnvAsDuration("SINK_TIMEOUT", 10*time.Second)
	return cfg
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	if len(c.malformed) > 0 {
		return fmt.Errorf("malformed duration in %s", strings.Join(c.malformed, ", "))
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.SinkTimeout <= 0 {
		return fmt.Errorf("SINK_TIMEOUT must be positive")
	}

	switch c.AuthProvider {
	case enum.AuthProviderMock:
	case enum.AuthProviderREST:
		if c.AuthBackendURL == "" {
			return fmt.Errorf("AUTH_BACKEND_URL is required when AUTH_PROVIDER=%s", enum.AuthProviderREST)
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	switch c.OrderSink {
	case enum.OrderSinkNotify:
	case enum.OrderSinkPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when ORDER_SINK=%s", enum.OrderSinkPostgres)
		}
	default:
		return fmt.Errorf("unknown ORDER_SINK %q", c.OrderSink)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.malformed = append(c.malformed, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return d
}

func getEnvAsList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
