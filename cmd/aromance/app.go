package main

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/aromance/internal/catalog"
	"github.com/example/aromance/internal/config"
	"github.com/example/aromance/internal/database"
	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/history"
	"github.com/example/aromance/internal/inventory"
	"github.com/example/aromance/internal/logger"
	"github.com/example/aromance/internal/profiles"
	"github.com/example/aromance/internal/recommender"
	"github.com/example/aromance/internal/services"
)

// app builds backends from configuration on first use and closes them at the
// end of a command.
type app struct {
	cfg *config.Config

	db     *gorm.DB
	redis  *redis.Client
	sqlite *profiles.SQLite
	repo   profiles.Repository
}

func (a *app) postgres(ctx context.Context) (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Connect(ctx, a.cfg.DatabaseURL, a.cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) catalog(ctx context.Context) (catalog.Store, error) {
	switch a.cfg.CatalogSource {
	case config.CatalogFile:
		return catalog.LoadFile(a.cfg.CatalogPath)
	case config.CatalogPostgres:
		db, err := a.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.NewPostgresStore(db), nil
	default:
		return catalog.Embedded()
	}
}

func (a *app) sessions(ctx context.Context) (profiles.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	switch a.cfg.ProfileStore {
	case config.StoreRedis:
		client, err := a.cfg.Redis.NewClient(ctx)
		if err != nil {
			return nil, errx.New(errx.KindStorage, "connect to redis", err)
		}
		a.redis = client
		a.repo = profiles.NewRedis(client, a.cfg.ProfileTTL)
	case config.StoreSQLite:
		s, err := profiles.OpenSQLite(a.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqlite = s
		a.repo = s
	case config.StorePostgres:
		db, err := a.postgres(ctx)
		if err != nil {
			return nil, err
		}
		a.repo = profiles.NewPostgres(db)
	default:
		logger.Warn().Msg("memory profile store does not persist between commands")
		a.repo = profiles.NewMemory()
	}
	return a.repo, nil
}

// history stores recommendation batches next to the sessions.
func (a *app) history(ctx context.Context) (history.Store, error) {
	if _, err := a.sessions(ctx); err != nil {
		return nil, err
	}

	switch a.cfg.ProfileStore {
	case config.StoreRedis:
		return history.NewRedis(a.redis), nil
	case config.StoreSQLite:
		return history.NewSQLite(a.sqlite.DB())
	case config.StorePostgres:
		db, err := a.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return history.NewPostgres(db), nil
	default:
		return history.NewMemory(), nil
	}
}

func (a *app) telegram() *services.TelegramService {
	if a.cfg.TelegramBotToken == "" {
		return nil
	}
	return services.NewTelegramService(a.cfg.TelegramBotToken, a.cfg.TelegramAdminChat)
}

func (a *app) notifier() services.Notifier {
	if t := a.telegram(); t != nil {
		return t
	}
	return nil
}

func (a *app) stockNotifier() services.StockNotifier {
	if t := a.telegram(); t != nil {
		return t
	}
	return nil
}

// inventoryService keeps reservations only when the catalog lives in
// Postgres; other sources are read-only snapshots.
func (a *app) inventoryService(ctx context.Context) (*services.InventoryService, error) {
	store, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var ledger inventory.Ledger
	if a.cfg.CatalogSource == config.CatalogPostgres {
		db, err := a.postgres(ctx)
		if err != nil {
			return nil, err
		}
		ledger = inventory.NewPostgres(db)
	}
	return services.NewInventoryService(store, ledger, a.stockNotifier()), nil
}

func (a *app) engineOptions(limit int, standalone bool) recommender.Options {
	opts := recommender.Options{
		Limit:      a.cfg.RecommendLimit,
		MinScore:   a.cfg.RecommendMinScore,
		MaxReasons: a.cfg.RecommendMaxReasons,
	}
	if standalone {
		opts.Limit = recommender.StandaloneLimit
	}
	if limit > 0 {
		opts.Limit = limit
	}
	return opts
}

func (a *app) recommendationService(ctx context.Context, opts recommender.Options) (*services.RecommendationService, error) {
	store, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := a.sessions(ctx)
	if err != nil {
		return nil, err
	}
	h, err := a.history(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewRecommendationService(store, repo, a.notifier(), opts).WithHistory(h), nil
}

// Close releases every backend that was opened.
func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.sqlite != nil {
		errs = append(errs, a.sqlite.Close())
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	a.db, a.redis, a.sqlite, a.repo = nil, nil, nil, nil
	return errors.Join(errs...)
}
