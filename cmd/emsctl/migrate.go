package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emsdev/ems-service/internal/persistence"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	withMigrator := func(fn func(*persistence.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			mg, err := persistence.NewMigrator(e.cfg.Postgres.DSN, e.logger)
			if err != nil {
				return err
			}
			defer mg.Close() //nolint:errcheck
			return fn(mg)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(mg *persistence.Migrator) error { return mg.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(mg *persistence.Migrator) error { return mg.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(mg *persistence.Migrator) error {
					version, dirty, err := mg.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})(cmd, args)
			},
		},
	)
	return cmd
}
