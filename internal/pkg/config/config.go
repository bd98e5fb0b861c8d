package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

// BackendConfig describes how to reach the ML backend.
type BackendConfig struct {
	// APIOrigin is the configured backend origin. The local-development
	// placeholder is kept as the default so deployed instances without
	// explicit configuration fall through to the hostname heuristic.
	APIOrigin string `env:"BACKEND_API_URL, default=http://127.0.0.1:8000"`
	// PublicOrigin is the origin this frontend is served from, consulted by
	// the origin heuristic when APIOrigin is still the placeholder.
	PublicOrigin string `env:"PUBLIC_ORIGIN"`
	// Timeout bounds every backend call. Generous by default: a cold-started
	// backend can take tens of seconds to answer its first request.
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=40s"`
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE, default=influence_session"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
