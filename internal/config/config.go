package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	SecretKey   string
	CORSOrigins string
	StaticDir   string // built frontend bundle served for non-API paths

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ResetBaseURL string // frontend URL the reset link points at
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8000"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"),
		SecretKey:    getEnv("SECRET_KEY", ""),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StaticDir:    getEnv("STATIC_DIR", "./static"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@localhost"),
		ResetBaseURL: getEnv("RESET_BASE_URL", "http://localhost:5173/reset-password"),
	}

	if cfg.SecretKey == "" {
		log.Fatal("[FATAL] SECRET_KEY environment variable is not set")
	}
	if len(cfg.SecretKey) < 32 {
		log.Fatal("[FATAL] SECRET_KEY must be at least 32 characters")
	}
	if cfg.SMTPHost == "" {
		log.Println("[WARN] SMTP_HOST not set, password reset mail will be logged to console")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
