package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration built from the environment so
// main stays lean. Zero values fall back to development defaults.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	LogLevel    slog.Level

	// MatchRadiusKm bounds donor-to-request proximity matching.
	MatchRadiusKm float64

	// RateLimit applies to the scan-heavy match endpoints.
	RateLimit RateLimitConfig
}

// RedisConfig holds connection settings for the optional Redis instance.
// An empty URL means Redis is not configured and in-memory fallbacks apply.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig controls the fixed-window limiter on match endpoints.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:          getEnv("DROPOFHOPE_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      parseLogLevel(os.Getenv("LOG_LEVEL")),
		MatchRadiusKm: getEnvFloat("MATCH_RADIUS_KM", 35),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Limit:    getEnvInt("RATE_LIMIT_REQUESTS", 60),
			Window:   time.Minute,
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
