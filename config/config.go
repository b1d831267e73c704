package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"grandstay-backend/models"
)

// Config is built once in main from the environment and passed down
// explicitly. Nothing in the services reads the environment directly.
type Config struct {
	Port        string
	CORSOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaEventsTopic string

	// BookingInitialStatus is the policy for freshly created bookings:
	// "pending" when payment is asynchronous, "confirmed" otherwise.
	BookingInitialStatus models.BookingStatus
	// DefaultNightlyRate applies when a booking names a room type the pricing
	// table does not know. Never zero.
	DefaultNightlyRate float64
	DefaultCurrency    string

	RoomHoldTTL     time.Duration
	SummaryCacheTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port:             envOrDefault("PORT", "8080"),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS"), "*"),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS"), ""),
		KafkaEventsTopic: envOrDefault("KAFKA_EVENTS_TOPIC", "hotel-events"),

		BookingInitialStatus: models.BookingStatusConfirmed,
		DefaultNightlyRate:   envFloat("DEFAULT_NIGHTLY_RATE", 5000),
		DefaultCurrency:      envOrDefault("DEFAULT_CURRENCY", "PKR"),

		RoomHoldTTL:     time.Duration(envInt("ROOM_HOLD_TTL_SECONDS", 15)) * time.Second,
		SummaryCacheTTL: time.Duration(envInt("SUMMARY_CACHE_TTL_SECONDS", 30)) * time.Second,
	}

	if s := models.BookingStatus(strings.ToLower(envOrDefault("BOOKING_INITIAL_STATUS", ""))); s != "" {
		if s == models.BookingStatusPending || s == models.BookingStatusConfirmed {
			cfg.BookingInitialStatus = s
		}
	}
	return cfg
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func splitList(raw, def string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if def == "" {
			return nil
		}
		return []string{def}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 && def != "" {
		return []string{def}
	}
	return out
}
