package main

import (
	"fmt"
	"os"

	"go-empedge/internal/config"
	"go-empedge/internal/migrate"
	"go-empedge/internal/shared/connection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:          "migrator",
		Short:        "Apply the employees schema to the configured database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "migrations base directory (defaults to MIGRATIONS_DIR)")

	withMigrator := func(fn func(*migrate.Migrator, *zap.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dir == "" {
				dir = cfg.MigrationsDir
			}

			db, err := connection.Open(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer connection.Close(db)

			if err := connection.CheckConnectivity(cmd.Context(), db, logger); err != nil {
				return fmt.Errorf("database unreachable: %w", err)
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			m, err := migrate.New(sqlDB, db.Dialector.Name(), dir)
			if err != nil {
				return err
			}
			return fn(m, logger)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(m *migrate.Migrator, logger *zap.Logger) error {
				if err := m.Up(); err != nil {
					return err
				}
				logger.Info("Migrations applied successfully", zap.String("dir", m.Dir()))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withMigrator(func(m *migrate.Migrator, _ *zap.Logger) error {
				return m.Down()
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: withMigrator(func(m *migrate.Migrator, _ *zap.Logger) error {
				return m.Status()
			}),
		},
	)

	return root
}
