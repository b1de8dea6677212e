// Package config loads settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pable/footstats/internal/constants"
)

type Config struct {
	DBPath          string
	Player          string
	LogLevel        string
	RedisAddr       string
	CacheTTL        time.Duration
	ServerAddr      string
	AnthropicAPIKey string

	// DuelConfidenceFactor damps the impact score of co-players seen in few matches.
	DuelConfidenceFactor float64
}

// Load reads the configuration. A missing .env is not an error.
func Load(logger zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:          getEnv("FOOTSTATS_DB", DefaultDBPath()),
		Player:          getEnv("FOOTSTATS_PLAYER", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getDuration("CACHE_TTL", constants.DefaultCacheTTL),
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		DuelConfidenceFactor: getFloat("DUEL_CONFIDENCE_FACTOR", constants.DuelConfidenceFactor),
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Str("player", cfg.Player).
		Str("log_level", cfg.LogLevel).
		Str("redis_addr", cfg.RedisAddr).
		Dur("cache_ttl", cfg.CacheTTL).
		Str("server_addr", cfg.ServerAddr).
		Float64("duel_confidence_factor", cfg.DuelConfidenceFactor).
		Msg("configuration loaded")

	return cfg
}

// DefaultDBPath is ~/.footstats/footstats.db, or ./footstats.db without a home directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "footstats.db"
	}
	return filepath.Join(home, ".footstats", "footstats.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}
