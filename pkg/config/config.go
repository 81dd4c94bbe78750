package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	MetricsPort   string
	LogLevel      string
	MaxQueryDepth int
	MaxBatch      int
}

// Load reads the configuration from the environment, after merging a
// .env file from the working directory if there is one.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MaxQueryDepth: getEnvInt("MAX_QUERY_DEPTH", 5),
		MaxBatch:      getEnvInt("LOADER_MAX_BATCH", 0),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Ignoring %s=%q: not an integer", key, value)
		return defaultValue
	}
	return n
}
