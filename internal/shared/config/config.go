package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	WhatsAppStoreURL   string
	RedisURL           string
	OpenAIKey          string
	Port               string
	Env                string
	WebhookVerifyToken string

	// Matching engine tuning
	MatchThreshold  float64
	MatchTopN       int
	RematchDebounce time.Duration
	ReloadCron      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		WhatsAppStoreURL:   os.Getenv("WHATSAPP_STORE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		WebhookVerifyToken: os.Getenv("WEBHOOK_VERIFY_TOKEN"),
		MatchThreshold:     envFloat("MATCH_THRESHOLD", 0.75),
		MatchTopN:          envInt("MATCH_TOP_N", 10),
		RematchDebounce:    time.Duration(envInt("REMATCH_DEBOUNCE_MS", 250)) * time.Millisecond,
		ReloadCron:         os.Getenv("INVENTORY_RELOAD_CRON"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.WhatsAppStoreURL == "" {
		// Default to main database if not specified
		cfg.WhatsAppStoreURL = cfg.DatabaseURL
	}
	if cfg.ReloadCron == "" {
		cfg.ReloadCron = "@every 15m"
	}

	return cfg
}

func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %v", key, raw, def)
		return def
	}
	return v
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %v", key, raw, def)
		return def
	}
	return v
}
