package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the SweetShop CLI.
type Config struct {
	APIBaseURL        string
	StorePath         string
	NotificationDelay time.Duration
	// RequestTimeout of zero leaves API calls without a deadline.
	RequestTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.StorePath = "sweetshop.db"
	c.NotificationDelay = 3 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
