package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/sweetshop/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags it knows
// about are taken from args, so -c/-config never trip it up. Parse errors
// panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-n", "-t", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the sweet shop API")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "path of the local store database")
	notify := fs.Int("n", int(cfg.NotificationDelay.Seconds()), "notification display time (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "API request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Whole-second flags must not truncate sub-second values loaded from JSON.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.NotificationDelay = time.Duration(*notify) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
