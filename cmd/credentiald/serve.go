package main

import (
	"github.com/aussiebroadwan/credentials/internal/credentials/app"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd(flags *configFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. Pending migrations are applied and the role
allow-list is seeded from CREDENTIALS_ROLES before the listener opens.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := flags.loadConfig(cmd)

			application, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return oops.Code("STARTUP_FAILED").With("operation", "initialize application").Wrap(err)
			}

			return application.Run()
		},
	}

	cmd.Flags().IntVar(&flags.port, "port", 0, "HTTP listen port; overrides PORT")

	return cmd
}
