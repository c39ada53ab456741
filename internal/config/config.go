package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=truckfin port=5432 sslmode=disable"
	defaultSQLiteDSN   = "file:./data/truckfin.db"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	HTTPPort       string
	DBDriver       string
	DatabaseDSN    string
	JWTSecret      string
	JWTTTL         time.Duration
	CORSOrigins    string
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
}

func Load() *Config {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverPostgres))
	dsn := defaultPostgresDSN
	if driver == DriverSQLite {
		dsn = defaultSQLiteDSN
	}

	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DBDriver:       driver,
		DatabaseDSN:    getEnv("DATABASE_DSN", dsn),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		MetricsEnabled: getBool("METRICS_ENABLED", true),
	}
}

// Validate rejects configurations that must not reach production and logs
// warnings for defaults that probably should not.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverSQLite {
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}

	if c.DatabaseDSN == defaultPostgresDSN {
		slog.Warn("DATABASE_DSN uses the default value, set your own Postgres connection for production")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		slog.Warn("CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production")
	}
	return nil
}

// AllowedOrigins returns the trimmed, comma separated CORS origins.
func (c *Config) AllowedOrigins() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}
