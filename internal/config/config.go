package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string

	BackendURL string
	APIToken   string
	TokenFile  string

	RequestTimeoutSeconds int
	RequestsPerSecond     float64

	RetryMaxAttempts int
	BreakerEnabled   bool

	RealtimeDriver string // websocket or nats
	RealtimeURL    string
	NATSURL        string
	NATSSubject    string

	PollIntervalSeconds int
	PollMaxAttempts     int

	SnapshotPath    string
	SnapshotEnabled bool

	MirrorDSN string

	MetricsPort string
}

func Load() Config {
	// Real environment variables take precedence over .env contents.
	_ = godotenv.Load()

	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		BackendURL: mustEnv("BACKEND_URL", "http://127.0.0.1:4000"),
		APIToken:   mustEnv("API_TOKEN", ""),
		TokenFile:  mustEnv("API_TOKEN_FILE", ""),

		RequestTimeoutSeconds: mustEnvInt("REQUEST_TIMEOUT_SECONDS", 5),
		RequestsPerSecond:     mustEnvFloat("REQUESTS_PER_SECOND", 20),

		RetryMaxAttempts: mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		BreakerEnabled:   mustEnvBool("BREAKER_ENABLED", true),

		RealtimeDriver: mustEnv("REALTIME_DRIVER", "websocket"),
		RealtimeURL:    mustEnv("REALTIME_URL", "ws://127.0.0.1:4000/ws/documents"),
		NATSURL:        mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:    mustEnv("NATS_SUBJECT", "documents.events"),

		PollIntervalSeconds: mustEnvInt("POLL_INTERVAL_SECONDS", 2),
		PollMaxAttempts:     mustEnvInt("POLL_MAX_ATTEMPTS", 150),

		SnapshotPath:    mustEnv("SNAPSHOT_PATH", "./data/snapshot.json"),
		SnapshotEnabled: mustEnvBool("SNAPSHOT_ENABLED", true),

		MirrorDSN: mustEnv("MIRROR_DSN", ""),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),
	}
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
