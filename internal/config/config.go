package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string

	RedisAddr     string
	RedisPassword string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// SendGrid is optional; when the key is empty outbound mail is
	// written to the log instead.
	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string

	// Backblaze B2 object storage. When unset, uploads fall back to
	// UploadDir on local disk.
	B2AccountID  string
	B2AppKey     string
	B2BucketName string
	UploadDir    string

	// PublicBaseURL is used when building share links and email links.
	PublicBaseURL string
}

func Load() (*Config, error) {
	port, _ := strconv.Atoi(getenv("PORT", "8080"))

	cfg := &Config{
		Port:            port,
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUsername:      os.Getenv("DB_USERNAME"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBDatabase:      os.Getenv("DB_DATABASE"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AccessTokenTTL:  3600 * time.Second,
		RefreshTokenTTL: 2592000 * time.Second,
		SendgridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:       getenv("EMAIL_FROM", "noreply@example.com"),
		EmailFromName:   getenv("EMAIL_FROM_NAME", "Homeschool"),
		B2AccountID:     os.Getenv("B2_ACCOUNT_ID"),
		B2AppKey:        os.Getenv("B2_APP_KEY"),
		B2BucketName:    os.Getenv("B2_BUCKET_NAME"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:   getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	if cfg.DBHost == "" {
		return nil, fmt.Errorf("DB_HOST environment variable is required")
	}
	if cfg.DBUsername == "" {
		return nil, fmt.Errorf("DB_USERNAME environment variable is required")
	}
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE environment variable is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
