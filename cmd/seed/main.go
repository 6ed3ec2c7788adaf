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
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/store"
	_ "github.com/dropDatabas3/hellocrud/internal/store/adapters/dal"
)

// seed carga un archivo YAML de registros iniciales en el storage configurado.
// Los ids ya existentes se omiten, así que puede correrse varias veces.
func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "Path to YAML config")
		file       = flag.String("file", "", "Seed YAML (default: storage.seed_file)")
		migrate    = flag.Bool("migrate", true, "Aplicar migraciones antes de sembrar")
	)
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.SNamed("seed").Fatalf("config load: %v", err)
	}
	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: cfg.App.Name})
	defer func() { _ = logger.Sync() }()
	log := logger.SNamed("seed")

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warnf(".env: %v", envErr)
	}

	path := *file
	if path == "" {
		path = cfg.Storage.SeedFile
	}
	if path == "" {
		log.Fatal("no seed file (use -file or storage.seed_file)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, path, *migrate); err != nil {
		log.Errorf("seed %s: %v", path, err)
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, migrate bool) error {
	log := logger.SNamed("seed")

	sf, err := store.LoadSeed(path)
	if err != nil {
		return err
	}

	blacklist, err := password.LoadBlacklist(cfg.Security.PasswordBlacklistPath)
	if err != nil {
		return err
	}
	policy := password.DefaultPolicy
	if cfg.Security.PasswordMinLength > 0 {
		policy.MinLength = cfg.Security.PasswordMinLength
	}

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:    cfg.Storage.Driver,
		DSN:     cfg.Storage.DSN,
		Migrate: migrate,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	hasher := password.Hasher{Params: password.Default}
	res, err := sf.Apply(ctx, conn, store.SeedOptions{
		Hash:      hasher.Hash,
		Policy:    policy,
		Blacklist: blacklist,
	})
	if err != nil {
		return err
	}
	log.Infof("seed %s on %s: inserted=%d skipped=%d", path, conn.Name(), res.Inserted, res.Skipped)
	return nil
}
