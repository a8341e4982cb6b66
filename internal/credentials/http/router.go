package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credentials/internal/credentials/observability"
	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/pkg/httpx"
	"github.com/aussiebroadwan/credentials/pkg/jwtx"
	"github.com/aussiebroadwan/credentials/pkg/slogx"

	_ "github.com/aussiebroadwan/credentials/api/credentials" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *observability.Metrics

	store               store.Store
	RegistrationService *service.RegistrationService
	LoginService        *service.LoginService
	UserService         *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      metrics,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Credentials Service API
//	@version		0.1.0
//	@description	Registers users with hashed passwords and issues HS256 session tokens on login.
//	@description
//	@description				Tokens expire 24 hours after issue and carry subject, username and role_name claims.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/credentials
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /api/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with request timing labelled by pattern.
func (r *Router) handle(pattern string, h http.Handler) {
	r.Mux.Handle(pattern, r.metrics.InstrumentRoute(pattern, h))
}

func (r *Router) registerAuth() {
	r.handle("POST /api/auth/register", &RegisterHandler{RegistrationService: r.RegistrationService})
	r.handle("POST /api/auth/login", &LoginHandler{LoginService: r.LoginService})
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.handle("GET /api/users", httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
	))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
