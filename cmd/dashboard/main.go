package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/rbacdash/internal/buildinfo"
	"github.com/dmitrijs2005/rbacdash/internal/cli"
	"github.com/dmitrijs2005/rbacdash/internal/collatex"
	"github.com/dmitrijs2005/rbacdash/internal/config"
	"github.com/dmitrijs2005/rbacdash/internal/credentials"
	"github.com/dmitrijs2005/rbacdash/internal/directory"
	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/models"
	"github.com/dmitrijs2005/rbacdash/internal/snapshot"
	"github.com/dmitrijs2005/rbacdash/internal/storage"
	"github.com/dmitrijs2005/rbacdash/internal/view"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	st, err := storage.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	verifier, err := credentials.New(cfg.Verifier)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store := directory.New(ctx, st.Slots(), verifier, logger, directory.WithSessionKey(cfg.SessionKey))
	snapshot.New(st.Slots(), store, logger,
		snapshot.WithKey(cfg.SnapshotKey),
		snapshot.WithLocale(cfg.Locale),
	).Mount(ctx)

	logger.Info(ctx, "dashboard started", "driver", st.Driver(), "verifier", cfg.Verifier)

	app := cli.NewApp(cli.Deps{
		Session:    store,
		Controller: view.New(store, logger, view.WithLocale(cfg.Locale)),
		Slots:      st,
		Seed: func() []models.User {
			return collatex.SortedUsers(directory.SeedUsers(), cfg.Locale)
		},
		Logger: logger,
	}, os.Stdin, os.Stdout)

	app.Run(ctx)
}
