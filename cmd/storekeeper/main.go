package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storekeeper/internal/config"
	"storekeeper/internal/http/handlers"
	applog "storekeeper/internal/log"
	"storekeeper/internal/repos"
)

func main() {
	if err := run(); err != nil {
		applog.Error(nil, "server.exit", err, nil)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLog := applog.Setup(applog.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	store := repos.NewStore(repos.DSN(cfg.DataDir))
	db, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Seed {
		if err := repos.NewProductRepo(db).SeedIfEmpty(ctx, time.Now()); err != nil {
			return err
		}
	}

	deps := handlers.NewDeps(db, cfg)
	app := handlers.NewApp(deps, int(cfg.MaxUploadBytes)+64<<10)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			applog.Error(nil, "server.shutdown", err, nil)
		}
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "data_dir": cfg.DataDir, "media_dir": cfg.MediaDir})
	return app.Listen(":" + cfg.Port)
}
