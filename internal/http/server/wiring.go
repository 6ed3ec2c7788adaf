// Package server es el composition root: config -> storage -> services -> controllers -> router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/hellocrud/internal/config"
	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	healthctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/health"
	resctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/resources"
	"github.com/dropDatabas3/hellocrud/internal/http/metrics"
	mw "github.com/dropDatabas3/hellocrud/internal/http/middlewares"
	"github.com/dropDatabas3/hellocrud/internal/http/router"
	healthsvc "github.com/dropDatabas3/hellocrud/internal/http/services/health"
	ressvc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	storemetrics "github.com/dropDatabas3/hellocrud/internal/metrics"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
	"github.com/dropDatabas3/hellocrud/internal/rate"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/store"

	// Registra memory, postgres, mysql y sqlite en el registry de store.
	_ "github.com/dropDatabas3/hellocrud/internal/store/adapters/dal"
)

// App es el resultado del wiring: handler listo para servir y su cleanup.
type App struct {
	Handler http.Handler
	Conn    store.AdapterConnection
	cleanup []func() error
}

// Close libera recursos en orden inverso al de creación.
func (a *App) Close() error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build arma la aplicación completa a partir de la config.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.L().With(logger.Component("server"), logger.Op("Build"))
	app := &App{}

	// 1. Storage
	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:         cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
		MaxIdleConns: cfg.Storage.MaxIdleConns,
		Migrate:      cfg.Storage.Migrate,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	app.Conn = conn
	app.cleanup = append(app.cleanup, conn.Close)
	log.Info("storage ready", logger.Driver(conn.Name()), logger.Bool("migrate", cfg.Storage.Migrate))

	// 2. Password hashing + política
	hasher := password.Hasher{Params: password.Default}
	blacklist, err := password.LoadBlacklist(cfg.Security.PasswordBlacklistPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load password blacklist: %w", err)
	}
	policy := password.DefaultPolicy
	if cfg.Security.PasswordMinLength > 0 {
		policy.MinLength = cfg.Security.PasswordMinLength
	}

	// 3. Seed opcional
	if path := strings.TrimSpace(cfg.Storage.SeedFile); path != "" {
		seed, err := store.LoadSeed(path)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		res, err := seed.Apply(ctx, conn, store.SeedOptions{
			Hash:      hasher.Hash,
			Policy:    policy,
			Blacklist: blacklist,
		})
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		log.Info("seed applied", logger.Int("inserted", res.Inserted), logger.Int("skipped", res.Skipped))
	}

	// 4. Repositorios (instrumentados si hay métricas)
	var (
		books repository.BookRepository = conn.Books()
		items repository.ItemRepository = conn.Items()
		users repository.UserRepository = conn.Users()
	)
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler, err = metrics.Register(metrics.Config{})
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		books = storemetrics.Instrument("books", books)
		items = storemetrics.Instrument("items", items)
		users = storemetrics.Instrument("users", users)
	}

	// 5. Rate limiter
	rateCfg, redisCheck, closeRate, err := buildRateLimit(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if closeRate != nil {
		app.cleanup = append(app.cleanup, closeRate)
	}

	// 6. Services + controllers
	services := ressvc.NewServices(ressvc.Deps{
		Books:     books,
		Items:     items,
		Users:     users,
		Hasher:    hasher,
		Policy:    policy,
		Blacklist: blacklist,
	})
	health := healthsvc.NewHealthService(healthsvc.Deps{
		Version:    cfg.App.Version,
		Driver:     conn.Name(),
		StoreCheck: conn.Ping,
		RedisCheck: redisCheck,
	})

	// 7. Router
	app.Handler = router.New(router.Deps{
		Resources: resctrl.NewControllers(services, resctrl.Options{
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			MaxLimit:     cfg.Pagination.MaxLimit,
		}),
		Health:         healthctrl.NewHealthController(health),
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		CORSOrigins:    cfg.Server.CORSAllowedOrigins,
		RateLimit:      rateCfg,
	})

	return app, nil
}

// buildRateLimit elige el backend del limiter. Con rate deshabilitado devuelve config vacía.
func buildRateLimit(cfg *config.Config) (mw.RateLimitConfig, func(context.Context) error, func() error, error) {
	if !cfg.Rate.Enabled {
		return mw.RateLimitConfig{}, nil, nil, nil
	}

	switch strings.ToLower(cfg.Rate.Backend) {
	case "", "memory":
		return mw.RateLimitConfig{
			Limiter: rate.NewMemoryLimiter(cfg.Rate.MaxRequests, cfg.Rate.Window),
			Limit:   int64(cfg.Rate.MaxRequests),
		}, nil, nil, nil
	case "redis":
		client := rdb.NewClient(&rdb.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return mw.RateLimitConfig{
			Limiter: rate.NewRedisLimiter(client, cfg.Redis.Prefix, cfg.Rate.MaxRequests, cfg.Rate.Window),
			Limit:   int64(cfg.Rate.MaxRequests),
		}, ping, client.Close, nil
	default:
		return mw.RateLimitConfig{}, nil, nil, fmt.Errorf("rate: unknown backend %q", cfg.Rate.Backend)
	}
}

// NewHTTPServer arma el *http.Server con los timeouts de la config.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}
