package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"facility-booking/internal/services/slipcheck"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Booking system gate
	AutoOpenHour    int
	ServiceWindow   string // human label used in the closed message
	StatusCacheTTL  time.Duration
	DefaultRate     int64 // minor units per hour, used when no pricing rule matches
	Currency        string
	SlipAllowedHost []string

	// Rate limiting
	RateLimitWindow time.Duration
	RateLimitMax    int64

	// Monitoring
	EnableMetrics bool
	MetricsPort   string

	// Slip verification
	SlipCheck slipcheck.Config
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Gate
		AutoOpenHour:    getEnvAsInt("AUTO_OPEN_HOUR", 9),
		ServiceWindow:   getEnv("SERVICE_WINDOW", "8:00-20:00"),
		StatusCacheTTL:  getEnvAsDuration("STATUS_CACHE_TTL", "5s"),
		DefaultRate:     int64(getEnvAsInt("DEFAULT_RATE", 10000)),
		Currency:        getEnv("CURRENCY", "THB"),
		SlipAllowedHost: getEnvAsList("SLIP_ALLOWED_HOSTS", ""),

		// Rate limiting
		RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitMax:    int64(getEnvAsInt("RATE_LIMIT_MAX", 30)),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),

		// Slip verification
		SlipCheck: slipcheck.Config{
			Enabled:   getEnvAsBool("SLIPCHECK_ENABLED", false),
			BaseURL:   getEnv("SLIPCHECK_BASE_URL", ""),
			PartnerID: getEnv("SLIPCHECK_PARTNER_ID", ""),
			ClientID:  getEnv("SLIPCHECK_CLIENT_ID", ""),
			ClientKey: getEnv("SLIPCHECK_CLIENT_KEY", ""),
			HMACKey:   getEnv("SLIPCHECK_HMAC_KEY", ""),

			PNSubKey:  getEnv("SLIPCHECK_PN_SUBKEY", ""),
			PNUUID:    getEnv("SLIPCHECK_PN_UUID", ""),
			PNChannel: getEnv("SLIPCHECK_PN_CHANNEL", ""),

			WebhookSecretHash: getEnv("SLIPCHECK_WEBHOOK_SECRET_HASH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
