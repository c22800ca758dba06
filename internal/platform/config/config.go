package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	stringsutil "boxoffice/pkg/platform/strings"
)

// Config captures all service-level configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// HoldDuration is how long a reservation holds carted seats.
	HoldDuration time.Duration
	// ExpiryPollInterval is how often the expiry watcher samples the clock.
	// Short fixed polling tolerates clock and visibility changes better than a
	// single deferred callback.
	ExpiryPollInterval time.Duration

	// VenueCacheTTL enforces retention for the cached venue payload.
	VenueCacheTTL time.Duration

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig configures the optional venue cache. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional venue/order store. An empty DSN means
// the in-memory stores are used.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig configures the domain event publisher. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:               envOr("BOXOFFICE_ADDR", ":8080"),
		HoldDuration:       durationOr("BOXOFFICE_HOLD_DURATION", 5*time.Minute),
		ExpiryPollInterval: durationOr("BOXOFFICE_EXPIRY_POLL_INTERVAL", time.Second),
		VenueCacheTTL:      durationOr("BOXOFFICE_VENUE_CACHE_TTL", 5*time.Minute),
		Redis: RedisConfig{
			URL:          os.Getenv("BOXOFFICE_REDIS_URL"),
			PoolSize:     intOr("BOXOFFICE_REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("BOXOFFICE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("BOXOFFICE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("BOXOFFICE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("BOXOFFICE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("BOXOFFICE_POSTGRES_DSN"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("BOXOFFICE_KAFKA_BROKERS")),
			Topic:   envOr("BOXOFFICE_KAFKA_TOPIC", "boxoffice.events"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func intOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := stringsutil.DedupeAndTrim(strings.Split(s, ","))
	if len(parts) == 0 {
		return nil
	}
	return parts
}
