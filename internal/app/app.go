// Package app wires configuration, storage and services into one value
// shared by the API server and the operator CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"libraryapi/internal/activity"
	"libraryapi/internal/auth"
	"libraryapi/internal/book"
	"libraryapi/internal/catalog"
	"libraryapi/internal/config"
	"libraryapi/internal/loan"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/database"
	"libraryapi/internal/platform/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Books   *catalog.Service
	Patrons *patron.Service
	Loans   *loan.Service
	Queries *loan.QueryService
	Auth    *auth.Service

	ping  func(ctx context.Context) error
	close func()
}

// Open connects to the configured database, applies migrations when asked
// to and builds the services on top of it.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	logger = logging.OrDefault(logger)

	switch cfg.DBDriver {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := migrate(ctx, database.DriverSQLite, db.DB, logger); err != nil {
				db.Close()
				return nil, err
			}
		}
		logger.Info("database connection OK", "driver", cfg.DBDriver, "dsn", database.RedactDSN(cfg.DBDSN))
		return NewSQLite(db, cfg, logger), nil

	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN, database.PoolConfig{
			MaxConns:       cfg.DBMaxConns,
			ConnectTimeout: cfg.DBTimeout,
		})
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			sqlDB := stdlib.OpenDBFromPool(pool)
			err := migrate(ctx, database.DriverPostgres, sqlDB, logger)
			sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, err
			}
		}
		logger.Info("database connection OK", "driver", cfg.DBDriver, "dsn", database.RedactDSN(cfg.DBDSN))
		return NewPostgres(pool, cfg, logger), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// NewSQLite builds the services over an open SQLite handle. Close closes db.
func NewSQLite(db *sqlx.DB, cfg config.Config, logger *slog.Logger) *App {
	a := build(cfg, logger,
		book.NewSQLiteRepo(db, cfg.DBTimeout),
		patron.NewSQLiteRepo(db, cfg.DBTimeout),
		loan.NewSQLiteStore(db, cfg.DBTimeout),
	)
	a.ping = db.PingContext
	a.close = func() { db.Close() }
	return a
}

// NewPostgres builds the services over a pgx pool. Close closes the pool.
func NewPostgres(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) *App {
	a := build(cfg, logger,
		book.NewPostgresRepo(pool, cfg.DBTimeout),
		patron.NewPostgresRepo(pool, cfg.DBTimeout),
		loan.NewPostgresStore(pool, cfg.DBTimeout),
	)
	a.ping = pool.Ping
	a.close = pool.Close
	return a
}

func build(cfg config.Config, logger *slog.Logger, books book.Repository, patrons patron.Repository, loans loan.Store) *App {
	logger = logging.OrDefault(logger)
	return &App{
		Config:  cfg,
		Logger:  logger,
		Books:   catalog.NewService(books),
		Patrons: patron.NewService(patrons),
		Loans: loan.NewService(loans,
			loan.WithLogger(logger),
			loan.WithLoanPeriodDays(cfg.LoanPeriodDays),
			loan.WithTracker(activity.NewTracker(cfg.MaxActiveLoans)),
		),
		Queries: loan.NewQueryService(loans, loan.Order(cfg.LoanListOrder)),
		Auth:    auth.NewService(cfg.JWTSecret, cfg.LibrarianEmail, cfg.LibrarianPasswordHash, cfg.TokenTTL),
	}
}

// Ready pings the database.
func (a *App) Ready(ctx context.Context) error {
	return a.ping(ctx)
}

func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

func migrate(ctx context.Context, driver string, sqlDB *sql.DB, logger *slog.Logger) error {
	m, err := database.NewMigrator(driver, sqlDB)
	if err != nil {
		return err
	}
	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "driver", driver, "versions", applied)
	return nil
}
