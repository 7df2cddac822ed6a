package websession

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/websession/cookiejar"
)

// Config holds session client configuration loadable from the
// environment.
type Config struct {
	// UserAgent is sent as the default User-Agent header when set.
	UserAgent string `env:"WEBSESSION_USER_AGENT"`

	// RequestID enables stamping outgoing requests with a generated
	// X-Request-ID header.
	RequestID bool `env:"WEBSESSION_REQUEST_ID" envDefault:"false"`

	// CookieSweepInterval enables the jar's background purge of
	// expired cookies (0 disables it; expiry is still enforced on
	// every lookup).
	CookieSweepInterval time.Duration `env:"WEBSESSION_COOKIE_SWEEP_INTERVAL" envDefault:"0"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{}
}

var defaultEnvLoaded sync.Once

// LoadConfig populates a Config from environment variables, loading a
// .env file first if one exists.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// NewFromConfig creates a session-aware client from the provided
// Config. Options are applied after the config so they can override
// it, including replacing the jar the config builds.
func NewFromConfig(transport Doer, cfg Config, opts ...Option) *Client {
	var jarOpts []cookiejar.Option
	if cfg.CookieSweepInterval > 0 {
		jarOpts = append(jarOpts, cookiejar.WithSweepInterval(cfg.CookieSweepInterval))
	}

	configOpts := []Option{WithJar(cookiejar.New(jarOpts...))}
	if cfg.UserAgent != "" {
		configOpts = append(configOpts, WithHeader("User-Agent", cfg.UserAgent))
	}
	if cfg.RequestID {
		configOpts = append(configOpts, WithRequestID())
	}

	return New(transport, append(configOpts, opts...)...)
}
