package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/pkg/credsdk"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Reports the database connection and whether any roles are seeded, since registration needs at least one
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	credsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	credsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())
		checks := &credsdk.HealthChecks{
			Database: "ok",
			Roles:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readiness: database ping failed", "err", err)
			checks.Database = "error"
			checks.Roles = "unknown"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if roles, err := st.Roles().ListAll(r.Context()); err != nil || len(roles) == 0 {
			log.Warn("readiness: no roles available", "err", err)
			checks.Roles = "error: no roles seeded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, credsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
