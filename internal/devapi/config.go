package devapi

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the dev API settings.
//
// Fields:
//   - Addr: listen address.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidity: session token lifetime.
//   - ResetTokenValidity: lifetime of a reset token minted by a correct
//     security answer.
//   - SeedEmail / SeedPassword: the admin account created at start.
//   - AllowedOrigins: browser origins granted CORS access.
type Config struct {
	Addr               string        `env:"REELDESK_DEVAPI_ADDR"`
	SecretKey          string        `env:"REELDESK_DEVAPI_SECRET"`
	TokenValidity      time.Duration `env:"REELDESK_DEVAPI_TOKEN_TTL"`
	ResetTokenValidity time.Duration `env:"REELDESK_DEVAPI_RESET_TTL"`
	SeedEmail          string        `env:"REELDESK_DEVAPI_SEED_EMAIL"`
	SeedPassword       string        `env:"REELDESK_DEVAPI_SEED_PASSWORD"`
	AllowedOrigins     []string      `env:"REELDESK_DEVAPI_CORS_ORIGINS" envSeparator:","`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and seed password are for local use only.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.ResetTokenValidity = 15 * time.Minute
	c.SeedEmail = "admin@reeldesk.local"
	c.SeedPassword = "admin123"
	c.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
}

// LoadConfig applies defaults and overlays the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
