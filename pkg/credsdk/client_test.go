package credsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/stretchr/testify/require"
)

func TestClient_RegisterAndLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/register":
			var req credsdk.RegisterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(credsdk.UserResponse{UserID: 3, Username: req.Username, RoleName: req.RoleName})
		case "/api/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(credsdk.MessageResponse{Message: "Invalid credentials"})
		case "/api/users":
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(credsdk.InternalErrorResponse{Where: "listing users", Message: "internal server error"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := credsdk.NewSDKClient(srv.URL + "/")
	ctx := context.Background()

	user, err := client.Register(ctx, "anna", "1234", "angel")
	require.NoError(t, err)
	require.Equal(t, &credsdk.UserResponse{UserID: 3, Username: "anna", RoleName: "angel"}, user)

	_, err = client.Login(ctx, "anna", "nope")
	var apiErr *credsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.True(t, apiErr.IsUnauthorized())
	require.Equal(t, "Invalid credentials", apiErr.Message)

	_, err = client.ListUsers(ctx, "tok")
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "listing users", apiErr.Where)

	_, err = client.GetLiveness(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Not Found", apiErr.Message)
}
