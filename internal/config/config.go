package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all process-wide settings. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	Env                string
	Port               string
	MongoURI           string
	DBName             string
	JWTSecret          string
	JWTExpiresIn       time.Duration
	JWTCookieExpiresIn int // days
	ResendAPIKey       string
	EmailFrom          string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/tournest"),
		DBName:         getEnv("DB_NAME", "tournest"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "TourNest <no-reply@tournest.io>"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "tournest-images"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "2160h")) // 90 days
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiresIn = expiresIn
	cfg.JWTCookieExpiresIn = getEnvInt("JWT_COOKIE_EXPIRES_IN", 90)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
