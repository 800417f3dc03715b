package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment (and .env when present)
type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	StoreAPIURL     string
	StoreAPITimeout time.Duration
	JWTSecret       string
	SessionTTL      time.Duration
	DatabaseDSN     string
}

const defaultSecret = "your-super-secret-key-change-in-production"

// Load reads .env first. A missing file is reported through envLoaded, never as an error.
func Load() (cfg *Config, envLoaded bool, err error) {
	envLoaded = godotenv.Load() == nil

	cfg = &Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		StoreAPIURL: getEnv("STORE_API_URL", "http://localhost:5000"),
		JWTSecret:   getEnv("JWT_SECRET", defaultSecret),
		DatabaseDSN: databaseDSN(),
	}

	if cfg.StoreAPITimeout, err = getDuration("STORE_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, envLoaded, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

// JournalEnabled reports whether a database was configured for the activity journal
func (c *Config) JournalEnabled() bool {
	return c.DatabaseDSN != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}

// databaseDSN prefers DATABASE_URL and falls back to the DB_* parts. Empty when neither is set.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		host,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_TIMEZONE", "UTC"),
	)
}
