package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionExpiry time.Duration
	SessionCookie string

	// Admin
	AdminEmails  string
	AdminUserIDs string

	// Uploads
	UploadDir string

	// Address lookup (Kartverket)
	AddressAPIURL string

	// Mail
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Read degradation: when true, list endpoints swallow store errors
	// and return empty collections instead of 500s.
	DegradeReads bool

	// Server
	Port        string
	CORSOrigins string

	// Job category catalog
	CategoriesPath string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "flus_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "720h")),
		SessionCookie: getEnv("SESSION_COOKIE", "flus_session"),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		AddressAPIURL: getEnv("ADDRESS_API_URL", "https://ws.geonorge.no/adresser/v1/sok"),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "ikkesvar@flus.no"),

		DegradeReads: parseBool(getEnv("DEGRADE_READS", "true")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		CategoriesPath: getEnv("CATEGORIES_PATH", "categories.json"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 720 * time.Hour
	}
	return d
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
