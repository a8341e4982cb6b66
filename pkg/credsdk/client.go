package credsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the credentials service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a user.
func (c *SDKClient) Register(ctx context.Context, username, password, roleName string) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: username,
		Password: password,
		RoleName: roleName,
	})
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges a username and password for a session token.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all users. token must be a session token from Login.
func (c *SDKClient) ListUsers(ctx context.Context, token string) ([]UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/users", token, nil)
	if err != nil {
		return nil, err
	}

	var users []UserResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
