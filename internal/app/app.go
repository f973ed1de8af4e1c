package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lotusfa/ipa-api/internal/dict"
	"github.com/lotusfa/ipa-api/internal/eventlog"
	"github.com/lotusfa/ipa-api/internal/httpapi"
	"github.com/lotusfa/ipa-api/internal/store"
)

type App struct {
	cfg      Config
	logger   *log.Logger
	db       *pgxpool.Pool // nil when DATABASE_URL is not set
	registry *dict.Registry
	store    *store.Store
	eventLog *eventlog.Logger
}

func New(cfg Config, logger *log.Logger) (*App, error) {
	registry := dict.NewRegistry(cfg.DataDir, logger)

	loaded := 0
	results := registry.Load()
	for _, res := range results {
		if res.Loaded {
			loaded++
		}
	}
	if loaded == 0 {
		logger.Printf("warning: no dictionaries loaded from %s, all translations will fail until reload", cfg.DataDir)
	} else {
		logger.Printf("loaded %d/%d dictionaries from %s", loaded, len(results), cfg.DataDir)
	}

	// Usage analytics are optional: the service runs fine without Postgres,
	// the admin stats endpoints just report unavailable.
	var db *pgxpool.Pool
	var s *store.Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		db = pool
		s = store.New(db)
	}

	// Migrations are applied externally by the deploy job; no automatic
	// migration runner at startup.

	return &App{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		registry: registry,
		store:    s,
		eventLog: eventlog.New(db),
	}, nil
}

func (a *App) Router() http.Handler {
	routerCfg := httpapi.RouterConfig{
		AdminAPIKey: a.cfg.AdminAPIKey,
		JWTSecret:   a.cfg.JWTSecret,
		JWTExpiry:   a.cfg.JWTExpiry,
	}
	return httpapi.NewRouter(routerCfg, a.logger, a.registry, a.store, a.eventLog)
}

func (a *App) Close() error {
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
