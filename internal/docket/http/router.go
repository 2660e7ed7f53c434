package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/pkg/httpx"
	"github.com/aussiebroadwan/docket/pkg/jwtx"
	"github.com/aussiebroadwan/docket/pkg/slogx"

	_ "github.com/aussiebroadwan/docket/api/docket" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	BootstrapService  *service.BootstrapService
	UserService       *service.UserService
	TaskService       *service.TaskService
	TimesheetService  *service.TimesheetService
	InvitationService *service.InvitationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerBootstrap()
	r.registerAuth()
	r.registerUsers()
	r.registerTasks()
	r.registerTimesheets()
	r.registerInvitations()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			docket API
//	@version		0.1.0
//	@description	Tasks, weekly timesheets and registration invitations for a professional services firm.
//	@description
//	@description				Access tokens are EdDSA signed JWTs bound to a server side session. Verify them with the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/docket
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured is the chain every authenticated route shares: JWT and session
// check, then the optional role gate, then the per-user limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, roles ...domain.Role) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier, r.AuthService)}
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		mws = append(mws, httpx.RequireAnyRole(names...))
	}
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func approverRoles() []domain.Role {
	var out []domain.Role
	for _, role := range domain.Roles() {
		if domain.CanApproveTimesheets(role) {
			out = append(out, role)
		}
	}
	return out
}

func (r *Router) registerSystem() {
	// Probes may poll often
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints share the strict per-IP limit
	strict := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.StrictLimit))
	}

	r.Mux.Handle("POST /v1/auth/login", strict(h.HandleLogin))
	r.Mux.Handle("POST /v1/auth/register", strict(h.HandleRegister))
	r.Mux.Handle("POST /v1/auth/password-reset", strict(h.HandlePasswordReset))
	r.Mux.Handle("POST /v1/auth/password-reset/confirm", strict(h.HandlePasswordResetConfirm))

	r.Mux.Handle("POST /v1/auth/logout",
		r.secured(http.HandlerFunc(h.HandleLogout), httpx.ModerateLimit),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	roles := &RolesHandler{}

	r.Mux.Handle("GET /v1/me", r.secured(http.HandlerFunc(h.HandleMe), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/me", r.secured(http.HandlerFunc(h.HandleUpdateMe), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/roles", r.secured(roles, httpx.LenientLimit))

	r.Mux.Handle("GET /v1/users", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))

	// Administration
	r.Mux.Handle("POST /v1/users",
		r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit, domain.RoleOrgAdmin),
	)
	r.Mux.Handle("PUT /v1/users/{id}/role",
		r.secured(http.HandlerFunc(h.HandleSetRole), httpx.ModerateLimit, domain.RoleOrgAdmin),
	)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("POST /v1/tasks", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/tasks", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/tasks/board", r.secured(http.HandlerFunc(h.HandleBoard), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/tasks/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/tasks/{id}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/tasks/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerTimesheets() {
	h := &TimesheetsHandler{TimesheetService: r.TimesheetService}

	r.Mux.Handle("GET /v1/timesheets/team", r.secured(http.HandlerFunc(h.HandleTeam), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/timesheets/{employee_id}/{week_start}",
		r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit),
	)
	r.Mux.Handle("PUT /v1/timesheets/{employee_id}/{week_start}",
		r.secured(http.HandlerFunc(h.HandleSubmit), httpx.ModerateLimit),
	)
	r.Mux.Handle("POST /v1/timesheets/{id}/approve",
		r.secured(http.HandlerFunc(h.HandleApprove), httpx.ModerateLimit, approverRoles()...),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, httpx.ModerateLimit, domain.RoleOrgAdmin)
	}

	r.Mux.Handle("POST /v1/invitations", admin(h.HandleCreate))
	r.Mux.Handle("GET /v1/invitations", admin(h.HandleList))
	r.Mux.Handle("DELETE /v1/invitations/{id}", admin(h.HandleRevoke))
	r.Mux.Handle("POST /v1/invitations/{id}/resend", admin(h.HandleResend))
	r.Mux.Handle("POST /v1/invitations/cleanup", admin(h.HandleCleanup))

	// Public: the registration page checks the token before showing the form
	r.Mux.Handle("GET /v1/invitations/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}
