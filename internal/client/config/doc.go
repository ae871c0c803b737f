// Package config loads runtime configuration for the SweetShop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, selected with -c / -config or $SWEETSHOP_CONFIG.
//  3. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the sweet shop API
//	-d string   path of the local SQLite store
//	-n int      notification display time (seconds)
//	-t int      API request timeout (seconds, 0 = none)
//	-l string   log level (debug, info, warn, error)
//	-b string   log backend (slog, zap)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "store_path": "sweetshop.db",
//	  "notification_delay": "3s",
//	  "request_timeout": "0s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
