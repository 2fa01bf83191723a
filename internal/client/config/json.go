package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/reeldesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from an explicit zero.
type JsonConfig struct {
	APIBaseURL       string          `json:"api_base_url"`
	StateDSN         string          `json:"state_dsn"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	VerifyRetries    *int            `json:"verify_retries"`
	VerifyRetryDelay *timex.Duration `json:"verify_retry_delay"`
	RedirectTo       string          `json:"redirect_to"`
	ShowLoading      *bool           `json:"show_loading"`
	LogLevel         string          `json:"log_level"`
}

// parseJSON overlays cfg with the values present in the file at path.
// An empty path is a no-op.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StateDSN != "" {
		cfg.StateDSN = jc.StateDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.VerifyRetries != nil {
		cfg.VerifyRetries = *jc.VerifyRetries
	}
	if jc.VerifyRetryDelay != nil {
		cfg.VerifyRetryDelay = jc.VerifyRetryDelay.Duration
	}
	if jc.RedirectTo != "" {
		cfg.RedirectTo = jc.RedirectTo
	}
	if jc.ShowLoading != nil {
		cfg.ShowLoading = *jc.ShowLoading
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
