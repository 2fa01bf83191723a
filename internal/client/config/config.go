package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the reeldesk CLI.
type Config struct {
	// APIBaseURL is prefixed to every /api/... endpoint.
	APIBaseURL string `env:"REELDESK_API_URL"`
	// StateDSN locates the SQLite file holding the persisted credential.
	StateDSN string `env:"REELDESK_STATE_DSN"`
	// RequestTimeout bounds each backend call.
	RequestTimeout time.Duration `env:"REELDESK_REQUEST_TIMEOUT"`
	// VerifyRetries is how many extra attempts the route guard makes when
	// the backend cannot be reached while confirming a session.
	VerifyRetries    int           `env:"REELDESK_VERIFY_RETRIES"`
	VerifyRetryDelay time.Duration `env:"REELDESK_VERIFY_RETRY_DELAY"`
	// RedirectTo is where protected screens send unauthenticated users.
	RedirectTo  string `env:"REELDESK_REDIRECT_TO"`
	ShowLoading bool   `env:"REELDESK_SHOW_LOADING"`
	LogLevel    string `env:"REELDESK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.StateDSN = "reeldesk.db"
	c.RequestTimeout = 10 * time.Second
	c.VerifyRetries = 2
	c.VerifyRetryDelay = 500 * time.Millisecond
	c.RedirectTo = "/"
	c.ShowLoading = true
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the optional JSON file, the
// environment and finally args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, configPath(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments. It panics on malformed
// input, which only happens at start-up.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
