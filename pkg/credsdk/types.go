package credsdk

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" example:"anna"`
	Password string `json:"password" example:"1234"`
	RoleName string `json:"role_name" example:"angel"`
}

// UserResponse is a user as rendered to clients. It never carries a password
// or its hash.
type UserResponse struct {
	UserID   int64  `json:"user_id" example:"1"`
	Username string `json:"username" example:"anna"`
	RoleName string `json:"role_name" example:"angel"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" example:"anna"`
	Password string `json:"password" example:"1234"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Message string `json:"message" example:"anna is back!"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.ETC.ETC"`
}

// MessageResponse is the body of every 4xx response.
type MessageResponse struct {
	Message string `json:"message" example:"Invalid credentials"`
}

// InternalErrorResponse is the body of every 5xx response. Where names the
// failing operation; details stay in the server log.
type InternalErrorResponse struct {
	Where   string `json:"where" example:"adding user"`
	Message string `json:"message" example:"internal server error"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Roles    string `json:"roles"`
}
