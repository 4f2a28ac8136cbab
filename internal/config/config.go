package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvConfig is populated once by LoadEnvConfig.
var DefaultEnvConfig *envConfig

type envConfig struct {
	// http server
	APP_PORT string

	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int

	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string

	// auth
	JWT_SECRET string
	JWT_TTL    time.Duration

	// qr token window
	QR_TOKEN_TTL time.Duration

	// outbound mail; notifications are skipped when SMTP_HOST is empty
	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USER     string
	SMTP_PASSWORD string
	SMTP_FROM     string

	// shift search index; disabled when empty
	ELASTIC_URL string
}

// LoadEnvConfig reads .env (if present) and the process environment.
func LoadEnvConfig() error {
	// A missing .env file is fine in containerized deployments.
	_ = godotenv.Load()

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "workly"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
		JWT_SECRET:           getEnvString("JWT_SECRET", ""),
		JWT_TTL:              getEnvDuration("JWT_TTL", 30*24*time.Hour),
		QR_TOKEN_TTL:         getEnvDuration("QR_TOKEN_TTL", 24*time.Hour),
		SMTP_HOST:            getEnvString("SMTP_HOST", ""),
		SMTP_PORT:            getEnvInt("SMTP_PORT", 587),
		SMTP_USER:            getEnvString("SMTP_USER", ""),
		SMTP_PASSWORD:        getEnvString("SMTP_PASSWORD", ""),
		SMTP_FROM:            getEnvString("SMTP_FROM", "no-reply@worklyapp.io"),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
