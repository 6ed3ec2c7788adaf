package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/hellocrud/internal/config"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
	"github.com/dropDatabas3/hellocrud/internal/store"
	_ "github.com/dropDatabas3/hellocrud/internal/store/adapters/dal"
)

// migrate aplica las migraciones embebidas del driver configurado.
//
//	migrate -config configs/config.yaml
//	STORAGE_DRIVER=sqlite STORAGE_DSN=data/crud.db migrate
func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "Path to YAML config")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Timeout total")
	)
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.SNamed("migrate").Fatalf("config load: %v", err)
	}
	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: cfg.App.Name})
	defer func() { _ = logger.Sync() }()
	log := logger.SNamed("migrate")

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warnf(".env: %v", envErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Errorf("migrate: %v", err)
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.SNamed("migrate")

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:         cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
		MaxIdleConns: cfg.Storage.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	m, ok := conn.(store.MigratableConnection)
	if !ok {
		log.Infof("driver %q has no migrations, nothing to do", conn.Name())
		return nil
	}

	res, err := m.Migrate(ctx)
	if err != nil {
		return err
	}
	if len(res.Applied) == 0 {
		log.Infof("driver=%s nothing to migrate (skipped=%v)", conn.Name(), res.Skipped)
		return nil
	}
	log.Infof("driver=%s applied=%v skipped=%v duration=%s", conn.Name(), res.Applied, res.Skipped, res.Duration)
	return nil
}
