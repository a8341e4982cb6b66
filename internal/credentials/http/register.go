package http

import (
	"net/http"

	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP handles user registration
//
//	@Summary		Register a user
//	@Description	Creates a user with a hashed password. role_name must be one of the seeded roles.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credsdk.RegisterRequest			true	"Registration details"
//	@Success		201		{object}	credsdk.UserResponse			"Created user, without password"
//	@Failure		400		{object}	credsdk.MessageResponse			"Malformed JSON"
//	@Failure		409		{object}	credsdk.MessageResponse			"Username already taken"
//	@Failure		422		{object}	credsdk.MessageResponse			"Missing field or invalid role_name"
//	@Failure		500		{object}	credsdk.InternalErrorResponse	"Internal server error"
//	@Router			/api/auth/register [post]
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req credsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.RegistrationService.Register(r.Context(), req.Username, req.Password, req.RoleName)
	if err != nil {
		writeError(w, r, "adding user", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, credsdk.UserResponse{
		UserID:   user.ID,
		Username: user.Username,
		RoleName: user.RoleName,
	})
}
