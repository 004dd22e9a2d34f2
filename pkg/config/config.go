package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port                  string
	Env                   string
	PostgresConnStr       string
	JWTSecret             string
	IdentityWebhookSecret string
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		PostgresConnStr:       getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		IdentityWebhookSecret: getEnv("IDENTITY_WEBHOOK_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
