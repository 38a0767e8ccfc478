package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig holds the token and password settings. Secret, issuer and salt
// have no defaults: a gateway started without them would mint or accept
// tokens nobody configured.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	Issuer    string `env:"JWT_ISSUER, required"`
	// Lifetime is in seconds.
	Lifetime  int64  `env:"JWT_LIFETIME, required"`
	Salt      string `env:"MD5_SALT, required"`
	LoginPath string `env:"AUTH_LOGIN_PATH, default=/jwt"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobqueue"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// TokenLifetime returns the configured lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.Lifetime) * time.Second
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// maxLifetimeSeconds caps JWT_LIFETIME at ten years.
const maxLifetimeSeconds int64 = 10 * 365 * 24 * 60 * 60

func (c *Config) validate() error {
	if c.Auth.Lifetime <= 0 {
		return errors.New("JWT_LIFETIME must be a positive number of seconds")
	}
	if c.Auth.Lifetime > maxLifetimeSeconds {
		return fmt.Errorf("JWT_LIFETIME must not exceed %d seconds", maxLifetimeSeconds)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}
