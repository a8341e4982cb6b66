package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		JWTSecret:           "test-secret",
		Roles:               []string{"angel", "student"},
		DatabaseDriver:      DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "credentials.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                8080,
		ShutdownGracePeriod: time.Second,
	}
}

func TestNew_WiresRoutes(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"username":"anna","password":"1234","role_name":"angel"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	roles, err := app.rolesService.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.FileExists(t, cfg.PepperFile)
}

func TestNew_SeedingIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	cfg.Roles = append(cfg.Roles, "admin")
	second, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.db.Close() })

	roles, err := second.rolesService.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	cfg := testConfig(t)
	logger := NewLogger(cfg)

	require.NoError(t, Migrate(context.Background(), cfg, logger))
	require.NoError(t, Migrate(context.Background(), cfg, logger))
	require.FileExists(t, cfg.DatabaseFile)
}
