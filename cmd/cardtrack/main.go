package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgaraym/cardtrack/internal/buildinfo"
	"github.com/dgaraym/cardtrack/internal/cli"
	"github.com/dgaraym/cardtrack/internal/config"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
	"github.com/dgaraym/cardtrack/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return err
	}

	access := services.NewAccessService(db, m, logger, cfg)
	if err := access.EnsureDefaultAccessCodes(ctx); err != nil {
		return err
	}

	app := cli.NewApp(cfg, db, m, logger)
	app.Run(ctx)
	return nil
}
