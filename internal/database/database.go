// Package database opens the Postgres connection shared by the catalog and
// session stores.
package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/aromance/internal/errx"
	applog "github.com/example/aromance/internal/logger"
	"github.com/example/aromance/internal/models"
)

// Connect creates the database if it is missing, opens it and runs
// migrations.
func Connect(ctx context.Context, dsn string, verbose bool) (*gorm.DB, error) {
	if err := ensureDatabase(ctx, dsn); err != nil {
		return nil, errx.New(errx.KindStorage, "ensure database", err)
	}

	mode := logger.Warn
	if verbose {
		mode = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(mode),
	})
	if err != nil {
		return nil, errx.New(errx.KindStorage, "connect to database", err)
	}

	if err := conn.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		applog.Warn().Err(err).Msg("failed to ensure uuid-ossp extension")
	}

	if err := Migrate(ctx, conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// Migrate creates or updates the product, session, reservation and history
// tables.
func Migrate(ctx context.Context, conn *gorm.DB) error {
	migrations := []any{
		&models.Product{},
		&models.Session{},
		&models.Reservation{},
		&models.RecommendationRecord{},
	}

	for _, migration := range migrations {
		if err := conn.WithContext(ctx).AutoMigrate(migration); err != nil {
			return errx.New(errx.KindStorage, "database migration failed", err)
		}
	}

	return nil
}

// maintenanceDSN points dsn at the postgres maintenance database and returns
// the requested database name. ok is false when there is nothing to create.
func maintenanceDSN(dsn string) (master, name string, ok bool, err error) {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return "", "", false, nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", "", false, err
	}

	name = strings.TrimPrefix(parsed.Path, "/")
	if name == "" || name == "postgres" {
		return "", "", false, nil
	}

	parsed.Path = "/postgres"
	return parsed.String(), name, true, nil
}

func ensureDatabase(ctx context.Context, dsn string) error {
	master, name, ok, err := maintenanceDSN(dsn)
	if err != nil || !ok {
		return err
	}

	sqlDB, err := sql.Open("postgres", master)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	applog.Info().Str("database", name).Msg("creating database")
	_, err = sqlDB.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name))
	return err
}
