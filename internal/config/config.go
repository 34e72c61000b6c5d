package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"stockquotes-ingestor/internal/domain"
	infraconfig "stockquotes-ingestor/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Store
	DatabaseURL         string
	PGMaxConns          int
	StoreConnectTimeout time.Duration
	StoreTimeout        time.Duration
	MigrateOnStart      bool
	// Provider
	Provider         string
	AlphaVantageBase string
	AlphaVantageKey  string
	FakePrice        string
	FetchTimeout     time.Duration
	// Batch
	Symbols     []string
	PacingDelay time.Duration
	// Batch lock
	LockBackend   string
	LockTTL       time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// API
	Port string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func durMS(key string, def time.Duration) time.Duration {
	ms := atoiDef(os.Getenv(key), -1)
	if ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

// SplitSymbols parses a comma separated list, trimming blanks and dropping empties.
func SplitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	symbols := SplitSymbols(os.Getenv("SYMBOLS"))
	if len(symbols) == 0 {
		symbols = append([]string(nil), domain.DefaultSymbols...)
	}
	return Config{
		Env:                 getEnv("ENV", "local"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		PGMaxConns:          atoiDef(getEnv("PG_MAX_CONNS", ""), infraconfig.DefaultPGMaxConns),
		StoreConnectTimeout: durMS("STORE_CONNECT_TIMEOUT_MS", infraconfig.DefaultStoreConnectTimeout),
		StoreTimeout:        durMS("STORE_TIMEOUT_MS", infraconfig.DefaultStoreTimeout),
		MigrateOnStart:      boolDef(os.Getenv("MIGRATE_ON_START"), false),
		Provider:            getEnv("PROVIDER", "alphavantage"),
		AlphaVantageBase:    getEnv("ALPHA_VANTAGE_BASE", infraconfig.DefaultAlphaVantageBase),
		AlphaVantageKey:     getEnv("ALPHA_VANTAGE_KEY", ""),
		FakePrice:           getEnv("FAKE_PRICE", infraconfig.DefaultFakePrice),
		FetchTimeout:        durMS("FETCH_TIMEOUT_MS", infraconfig.DefaultFetchTimeout),
		Symbols:             symbols,
		PacingDelay:         durMS("PACING_DELAY_MS", infraconfig.DefaultPacingDelay),
		LockBackend:         getEnv("LOCK_BACKEND", "none"),
		LockTTL:             durMS("LOCK_TTL_MS", infraconfig.DefaultLockTTL),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             atoiDef(getEnv("REDIS_DB", "0"), 0),
		Port:                getEnv("PORT", infraconfig.DefaultHTTPPort),
	}
}
