package credentials_test

import (
	"testing"

	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupCredentialsContainer(t, nil)
	defer cleanup()

	client := credsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies readiness reports the database and seeded roles.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupCredentialsContainer(t, nil)
	defer cleanup()

	client := credsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Roles)
}
