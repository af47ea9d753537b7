package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog/log"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port        int
	DatabaseURL string

	JWTSecret       string
	JWKSURL         string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Redis    RedisConfig
	Minio    MinioConfig
	RabbitMQ RabbitMQConfig

	LogLevel string
	LogJSON  bool

	DueDay       int
	ReminderCron string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	ReceiptBucket string
}

// RabbitMQConfig is optional; an empty URL keeps notifications in-process.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// Load reads an optional .env file and then the process environment.
func Load(envPath ...string) (*Config, error) {
	if err := godotenv.Load(envPath...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWKSURL:      os.Getenv("AUTH_JWKS_URL"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogJSON:      getEnv("LOG_FORMAT", "console") == "json",
		ReminderCron: getEnv("REMINDER_CRON", "0 9 6 * *"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Minio: MinioConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
			ReceiptBucket: getEnv("MINIO_RECEIPT_BUCKET", "receipts"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "smartrental.notifications"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32)
		log.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.DueDay, err = getInt("RENT_DUE_DAY", 5); err != nil {
		return nil, err
	}
	if cfg.DueDay < 1 || cfg.DueDay > 28 {
		return nil, fmt.Errorf("RENT_DUE_DAY must be between 1 and 28, got %d", cfg.DueDay)
	}

	accessSeconds, err := getInt("ACCESS_TOKEN_TTL_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	refreshSeconds, err := getInt("REFRESH_TOKEN_TTL_SECONDS", 7*24*3600)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = time.Duration(accessSeconds) * time.Second
	cfg.RefreshTokenTTL = time.Duration(refreshSeconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
