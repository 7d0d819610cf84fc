// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	DatabasePath     string
	AgentWebhookURL  string
	UploadWebhookURL string
	Environment      string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "chatclient.db"),
		AgentWebhookURL:  getEnv("AGENT_WEBHOOK_URL", "https://your-n8n-webhook-url.com/webhook/chatv3"),
		UploadWebhookURL: getEnv("UPLOAD_WEBHOOK_URL", "http://localhost:5678/webhook-test/upload-files"),
		Environment:      env,
	}

	if strings.ToLower(env) == "production" {
		if cfg.AgentWebhookURL == "https://your-n8n-webhook-url.com/webhook/chatv3" {
			log.Println("WARNING: AGENT_WEBHOOK_URL is still the development default")
		}
		if strings.HasPrefix(cfg.UploadWebhookURL, "http://localhost") {
			log.Println("WARNING: UPLOAD_WEBHOOK_URL is still the development default")
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
