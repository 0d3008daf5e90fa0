package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// PostgreSQL
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string

	// MQTT broker
	BrokerHost string
	BrokerPort string
	Topic      string
	QoS        byte

	// API
	APIPort string

	// Process-wide switch disabling all event emission.
	DisableUpdates bool

	// Repository connection retry policy (subscriber side).
	ConnectBackoff    time.Duration
	BackoffMultiplier float64
	KeepRetrying      bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresHost:     getEnv("POSTGRES_HOST", "postgres"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "userservice"),

		BrokerHost: getEnv("BROKER_HOST", "mosquitto"),
		BrokerPort: getEnv("BROKER_PORT", "1883"),
		Topic:      getEnv("USERSERVICE_TOPIC", ""),
		QoS:        byte(getEnvInt("USERSERVICE_QOS", 0)),

		APIPort: getEnv("API_PORT", "8080"),

		DisableUpdates: getEnv("DISABLE_UPDATES", "false") == "true",

		ConnectBackoff:    time.Duration(getEnvInt("DB_CONNECT_BACKOFF", 1)) * time.Second,
		BackoffMultiplier: getEnvFloat("DB_CONNECT_BACKOFF_MULTIPLIER", 2),
		KeepRetrying:      getEnv("DB_KEEP_RETRYING", "false") == "true",
	}
}

// DatabaseURL builds the lib/pq connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB,
	)
}

// BrokerURL builds the paho broker address.
func (c *Config) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%s", c.BrokerHost, c.BrokerPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
