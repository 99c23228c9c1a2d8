package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"libraryapi/internal/config"
	"libraryapi/internal/platform/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *database.Migrator) error {
				applied, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied successfully: %v\n", applied)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *database.Migrator) error {
				v, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back migration %d\n", v)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *database.Migrator) error {
				states, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range states {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%05d  %-8s %s\n", s.Version, state, s.Path)
				}
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(m *database.Migrator) error) error {
	cfg, err := config.LoadOperator()
	if err != nil {
		return err
	}

	sqlDB, closeDB, err := openSQL(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	m, err := database.NewMigrator(cfg.DBDriver, sqlDB)
	if err != nil {
		return err
	}
	return fn(m)
}

func openSQL(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	switch cfg.DBDriver {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return db.DB, func() { db.Close() }, nil
	default:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN, database.PoolConfig{MaxConns: 2, ConnectTimeout: cfg.DBTimeout})
		if err != nil {
			return nil, nil, err
		}
		sqlDB := stdlib.OpenDBFromPool(pool)
		return sqlDB, func() {
			sqlDB.Close()
			pool.Close()
		}, nil
	}
}
