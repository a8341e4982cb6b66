package http

import (
	"net/http"

	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP lists users
//
//	@Summary		List users
//	@Description	Returns every registered user. Any valid session token is accepted.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		credsdk.UserResponse			"Users ordered by id"
//	@Failure		401	{object}	credsdk.MessageResponse			"Missing, invalid or expired token"
//	@Failure		500	{object}	credsdk.InternalErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/users [get]
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, "listing users", err)
		return
	}

	out := make([]credsdk.UserResponse, len(users))
	for i, u := range users {
		out[i] = credsdk.UserResponse{
			UserID:   u.ID,
			Username: u.Username,
			RoleName: u.RoleName,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
