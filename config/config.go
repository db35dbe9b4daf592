package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Currency CurrencyConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

type CurrencyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type AppConfig struct {
	Environment string
	Version     string
	SeedFile    string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "1337"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			Name:     getEnv("DB_NAME", "budget"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Currency: CurrencyConfig{
			APIKey:  getEnv("CURRENCY_API_KEY", ""),
			BaseURL: getEnv("CURRENCY_API_URL", "https://v6.exchangerate-api.com/v6"),
			Timeout: time.Duration(getEnvAsInt("CURRENCY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SeedFile:    getEnv("SEED_FILE", "data/projects.csv"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.App.Environment {
	case "development", "production":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required when APP_ENV=%s", c.App.Environment)
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required when APP_ENV=%s", c.App.Environment)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
