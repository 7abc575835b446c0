package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	SMS        SMSConfig
	Cloudinary CloudinaryConfig
	Dispatch   DispatchConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// SMTPConfig configures the outbound mail transport. Enabled=false makes
// every email send attempt fail fast without opening a connection.
type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMSConfig configures the HTTP SMS gateway.
type SMSConfig struct {
	Enabled            bool
	BaseURL            string
	APIKey             string
	UserID             string
	Password           string
	SenderID           string
	DefaultCountryCode string // prepended to local numbers, e.g. "254"
	Timeout            time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// DispatchConfig sizes the in-process delivery worker pool.
type DispatchConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8086"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", "herald:herald@tcp(localhost:3306)/herald?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "herald",
		},
		SMTP: SMTPConfig{
			Enabled:  getEnvBool("SMTP_ENABLED", false),
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "465"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@herald.local"),
		},
		SMS: SMSConfig{
			Enabled:            getEnvBool("SMS_ENABLED", false),
			BaseURL:            getEnv("SMS_BASE_URL", "https://smsportal.hostpinnacle.co.ke/SMSApi"),
			APIKey:             getEnv("SMS_API_KEY", ""),
			UserID:             getEnv("SMS_USER_ID", ""),
			Password:           getEnv("SMS_PASSWORD", ""),
			SenderID:           getEnv("SMS_SENDER_ID", "HERALD"),
			DefaultCountryCode: getEnv("SMS_COUNTRY_CODE", "254"),
			Timeout:            30 * time.Second,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Dispatch: DispatchConfig{
			Workers:     getEnvInt("DISPATCH_WORKERS", 8),
			QueueSize:   getEnvInt("DISPATCH_QUEUE_SIZE", 1024),
			SendTimeout: 30 * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
