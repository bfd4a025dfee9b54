package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Email   EmailConfig
	Storage StorageConfig
}

type APIConfig struct {
	BaseURL          string
	RequestTimeout   time.Duration
	PollInterval     time.Duration
	AutosaveInterval time.Duration
}

type CacheConfig struct {
	BookingsTTL      time.Duration
	ServicesTTL      time.Duration
	BusinessTTL      time.Duration
	NotificationsTTL time.Duration
	ProfileTTL       time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type EmailConfig struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
	DevMode       bool // print emails to logs instead of sending
}

type StorageConfig struct {
	StateFile string // empty means in-memory only
}

func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          getEnv("WASHLY_API_URL", "http://localhost:3000/api"),
			RequestTimeout:   getDuration("HTTP_TIMEOUT", 10*time.Second),
			PollInterval:     getDuration("NOTIFY_POLL_INTERVAL", 30*time.Second),
			AutosaveInterval: getDuration("DRAFT_AUTOSAVE_INTERVAL", 30*time.Second),
		},
		Cache: CacheConfig{
			BookingsTTL:      getDuration("CACHE_BOOKINGS_TTL", 2*time.Minute),
			ServicesTTL:      getDuration("CACHE_SERVICES_TTL", 5*time.Minute),
			BusinessTTL:      getDuration("CACHE_BUSINESS_TTL", 10*time.Minute),
			NotificationsTTL: getDuration("CACHE_NOTIFICATIONS_TTL", 2*time.Minute),
			ProfileTTL:       getDuration("CACHE_PROFILE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "Washly"),
			FromEmail:     getEnv("MAIL_FROM", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
		Storage: StorageConfig{
			StateFile: getEnv("WASHLY_STATE_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
