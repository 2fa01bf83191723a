// Package config loads runtime configuration for the reeldesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables with the REELDESK_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the backend REST API
//	-d string     DSN of the local state database
//	-t duration   per-request timeout (e.g. 10s)
//	-r int        verification retries when the backend is unreachable
//	-l string     log level: debug, info, warn, error
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "state_dsn": "reeldesk.db",
//	  "request_timeout": "10s",
//	  "verify_retries": 2,
//	  "verify_retry_delay": "500ms",
//	  "redirect_to": "/",
//	  "show_loading": true,
//	  "log_level": "info"
//	}
package config
