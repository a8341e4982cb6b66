package main

import (
	"github.com/aussiebroadwan/credentials/internal/credentials/app"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the configured database and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := flags.loadConfig(cmd)
			logger := app.NewLogger(cfg)

			if err := app.Migrate(cmd.Context(), cfg, logger); err != nil {
				return oops.Code("MIGRATION_FAILED").With("driver", cfg.DatabaseDriver).Wrap(err)
			}

			cmd.Println("Migrations completed successfully")
			return nil
		},
	}
}
