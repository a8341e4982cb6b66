package http

import (
	"net/http"

	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
)

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP handles login
//
//	@Summary		Log in
//	@Description	Verifies a username and password and returns an HS256 session token valid for 24 hours.
//	@Description	The token payload carries subject (user id), username and role_name.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credsdk.LoginRequest			true	"Credentials"
//	@Success		200		{object}	credsdk.LoginResponse			"Greeting and token"
//	@Failure		400		{object}	credsdk.MessageResponse			"Malformed JSON"
//	@Failure		401		{object}	credsdk.MessageResponse			"Invalid credentials"
//	@Failure		500		{object}	credsdk.InternalErrorResponse	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req credsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	res, err := h.LoginService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, "finding user", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, credsdk.LoginResponse{
		Message: res.Message,
		Token:   res.Token,
	})
}
