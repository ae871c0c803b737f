package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/sweetshop/internal/buildinfo"
	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/app"
	"github.com/dmitrijs2005/sweetshop/internal/client/cli"
	"github.com/dmitrijs2005/sweetshop/internal/client/config"
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
	"github.com/dmitrijs2005/sweetshop/internal/client/storage"
	"github.com/dmitrijs2005/sweetshop/internal/client/view"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	repos, err := storage.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer repos.Close()

	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	v := view.NewTerminalView(os.Stdout, cfg.NotificationDelay)
	store := app.NewStore(app.ServicesFrom(client), repos.Tokens, session.NewCodec(logger), v, logger)

	return cli.NewApp(store, v, logger, os.Stdin, os.Stdout).Run(ctx)
}
