package main

import (
	"github.com/aussiebroadwan/credentials/internal/credentials/app"
	"github.com/spf13/cobra"
)

// configFlags hold command line overrides for the environment config.
type configFlags struct {
	port     int
	driver   string
	dbFile   string
	dbURL    string
	logLevel string
}

// NewRootCmd creates the root command for the credentiald CLI.
func NewRootCmd() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "credentiald",
		Short: "Credentials service: user registration and token login",
		Long: `credentiald registers users with hashed passwords and issues
HS256 session tokens on login. Settings come from the environment and may be
overridden with flags.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.driver, "db-driver", "", "database driver (sqlite, postgres); overrides DATABASE_DRIVER")
	pf.StringVar(&flags.dbFile, "db-file", "", "SQLite database path; overrides DATABASE_FILE")
	pf.StringVar(&flags.dbURL, "db-url", "", "postgres connection URL; overrides DATABASE_URL")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(NewServeCmd(flags))
	cmd.AddCommand(NewMigrateCmd(flags))

	return cmd
}

// loadConfig reads the environment and applies any flags the user set.
func (f *configFlags) loadConfig(cmd *cobra.Command) app.Config {
	cfg := app.LoadConfig()

	if cmd.Flags().Changed("port") {
		cfg.Port = f.port
	}
	if cmd.Flags().Changed("db-driver") {
		cfg.DatabaseDriver = f.driver
	}
	if cmd.Flags().Changed("db-file") {
		cfg.DatabaseFile = f.dbFile
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = f.dbURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	return cfg
}
