package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Source names accepted by BIKESHARE_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir     string `validate:"required"`
	CityCatalog string
	Source      string `validate:"oneof=csv postgres"`

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries int    `validate:"min=1"`
	PageSize   int    `validate:"min=1"`
	LogLevel   string `validate:"oneof=debug info warn warning error"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataDir:     getEnv("BIKESHARE_DATA_DIR", "./data"),
		CityCatalog: getEnv("CITY_CATALOG", ""),
		Source:      getEnv("BIKESHARE_SOURCE", SourceCSV),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "bikeshare"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "bikeshare"),
		PostgresDB:       getEnv("POSTGRES_DB", "bikeshare"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries: getEnvInt("MAX_RETRIES", 3),
		PageSize:   getEnvInt("PAGE_SIZE", 5),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
