package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUsernameTaken      = "username already taken"
	msgBadJSON            = "request body must be a JSON object"
	msgInternal           = "internal server error"
)

// writeError maps a service error onto a status and body. Server faults are
// logged in full and rendered as an opaque {where, message} pair.
func writeError(w http.ResponseWriter, r *http.Request, where string, err error) {
	var verr *service.ValidationError
	var perr *service.PersistenceError

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, credsdk.MessageResponse{Message: verr.Reason})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, credsdk.MessageResponse{Message: msgInvalidCredentials})
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, credsdk.MessageResponse{Message: msgUsernameTaken})
	default:
		if errors.As(err, &perr) {
			where = perr.Op
		}
		slogx.FromContext(r.Context()).Error("request failed", "where", where, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, credsdk.InternalErrorResponse{
			Where:   where,
			Message: msgInternal,
		})
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, credsdk.MessageResponse{Message: msgBadJSON})
}
