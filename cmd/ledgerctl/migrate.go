package main

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/postal_ledger/internal/app"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/SscSPs/postal_ledger/pkg/database"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(migrateUpCmd(), migrateDownCmd(), migrateVersionCmd(), migrateForceCmd())
	return cmd
}

// withMigrator loads config and hands fn a migrator bound to the configured store.
func withMigrator(fn func(cfg *config.Config, m *migrate.Migrate) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	m, err := app.OpenMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()
	return fn(cfg, m)
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(cfg *config.Config, m *migrate.Migrate) error {
				if err := database.MigrateUp(m); err != nil {
					return err
				}
				return printVersion(cmd, cfg)
			})
		},
	}
}

func migrateDownCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(cfg *config.Config, m *migrate.Migrate) error {
				if err := database.MigrateDown(m, steps); err != nil {
					return err
				}
				return printVersion(cmd, cfg)
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to revert")
	return cmd
}

func migrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the applied and latest schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return printVersion(cmd, cfg)
		},
	}
}

func migrateForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Mark the schema as VERSION and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(func(cfg *config.Config, m *migrate.Migrate) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("failed to force version %d: %w", version, err)
				}
				return printVersion(cmd, cfg)
			})
		},
	}
}

func printVersion(cmd *cobra.Command, cfg *config.Config) error {
	status, err := app.MigrationStatus(cfg)
	if err != nil {
		return err
	}
	state := "up to date"
	switch {
	case status.Dirty:
		state = "dirty"
	case status.Pending():
		state = "pending migrations"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "driver=%s current=%d latest=%d (%s)\n", cfg.StorageDriver, status.Current, status.Latest, state)
	return nil
}
