package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins string
	DB             DBConfig
	APIKey         string
}

type DBConfig struct {
	Driver   string // sqlite or postgres
	DSN      string
	LogLevel string // silent, error, warn, info
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite))
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		if driver == DriverPostgres {
			dsn = "host=localhost user=postgres dbname=cafe port=5432 sslmode=disable"
		} else {
			dsn = "cafes.db"
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8083"),
		GinMode:        os.Getenv("GIN_MODE"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		DB: DBConfig{
			Driver:   driver,
			DSN:      dsn,
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		APIKey: getEnv("API_KEY", "TopSecretAPIKey"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
