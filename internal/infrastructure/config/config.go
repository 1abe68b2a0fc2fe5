package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	// SessionTTL is the lifetime of issued session tokens.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`

	// PublicBaseURL is the base for generated referral links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=https://talaash.thejaayveeworld.com"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Events EventsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=affiliate_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`

	// ClickDedupTTL is how long a visitor's repeat clicks on the same link
	// are suppressed from the click counter.
	ClickDedupTTL time.Duration `env:"CLICK_DEDUP_TTL, default=1h"`
}

type EventsConfig struct {
	// BaseURL is the single configured endpoint of the Jaayvee World event
	// catalog; no fallback chain.
	BaseURL string        `env:"EVENTS_API_BASE_URL, default=https://talaash.thejaayveeworld.com"`
	Timeout time.Duration `env:"EVENTS_API_TIMEOUT,  default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
