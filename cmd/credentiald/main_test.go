package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"serve", "migrate"} {
		assert.Contains(t, buf.String(), sub, "help missing %q command", sub)
	}
}

func TestMigrateCommand_SQLite(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_DRIVER", "postgres")
	dbFile := filepath.Join(t.TempDir(), "credentials.db")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"migrate", "--db-driver", "sqlite", "--db-file", dbFile})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Migrations completed successfully")
	assert.FileExists(t, dbFile)
}

func TestMigrateCommand_BadDriver(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"migrate", "--db-driver", "mysql"})

	require.Error(t, cmd.Execute())
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_FILE", "from-env.db")

	cmd := NewRootCmd()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, serve.ParseFlags([]string{"--port", "9999"}))

	flags := &configFlags{port: 9999}
	cfg := flags.loadConfig(serve)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "from-env.db", cfg.DatabaseFile)
}
