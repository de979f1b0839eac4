package session

import "time"

// Store kinds accepted by Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is loaded from SESSION_* variables.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"calc_sid"`
	IdleTimeout     time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	MaxLifetime     time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix     string        `env:"SESSION_REDIS_PREFIX" envDefault:"calcdesk:session:"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:      "calc_sid",
		IdleTimeout:     30 * time.Minute,
		MaxLifetime:     24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		Store:           StoreMemory,
		RedisPrefix:     DefaultRedisPrefix,
	}
}

// NewFromConfig creates a Manager from cfg. The store still comes from
// opts; without one a MemoryStore is used.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
