package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sweetshop/internal/flagx"
	"github.com/dmitrijs2005/sweetshop/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell an
// absent key apart from an explicit zero.
type JsonConfig struct {
	APIBaseURL        string          `json:"api_base_url"`
	StorePath         string          `json:"store_path"`
	NotificationDelay *timex.Duration `json:"notification_delay"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	LogLevel          string          `json:"log_level"`
	LogBackend        string          `json:"log_backend"`
}

// parseJson overlays cfg with the values found in the JSON config file named
// by args or the environment. Keys missing from the file keep their current
// value. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.NotificationDelay != nil {
		cfg.NotificationDelay = jc.NotificationDelay.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogBackend != "" {
		cfg.LogBackend = jc.LogBackend
	}
}
