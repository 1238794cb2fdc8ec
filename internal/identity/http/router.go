package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/slogx"

	_ "github.com/aussiebroadwan/roster/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.TokenVerifier
	db           Pinger
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Sessions      *service.SessionIssuer
	Registrar     *service.Registrar
	Accounts      *service.AccountService
	Ledger        *service.InvitationLedger
	PasswordReset *service.PasswordResetService
	MFA           *service.MFAService
	Tenants       *service.TenantService

	// ProvisioningToken guards POST /v1/tenants; the route is not
	// mounted while it is empty.
	ProvisioningToken string
}

func NewRouter(
	verifier httpx.TokenVerifier,
	db Pinger,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		db:           db,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Access log and request id first so that everything after, including
	// the gate, logs with the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Gate(r.verifier),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPasswordReset()
	r.registerInvitations()
	r.registerMFA()
	r.registerTenants()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Roster Identity Service API
//	@version		0.1.0
//	@description	Multi-tenant identity: login, invitation based onboarding, tenant scoped access tokens.
//	@description
//	@description				Access tokens are HS256 JWTs carrying the account, tenant and role of the session.
//	@description				Every JSON response is wrapped in {"success", "data" | "error", "request_id"}.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/roster
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

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (credential guessing)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{Sessions: r.Sessions},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{Registrar: r.Registrar},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/me - lenient rate limit by user
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&MeHandler{Accounts: r.Accounts},
			httpx.RequireAuth(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPasswordReset() {
	h := &PasswordResetHandler{Resets: r.PasswordReset}

	r.Mux.Handle("POST /v1/auth/password-reset",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{Ledger: r.Ledger}
	admins := []string{string(domain.RoleSystemAdmin), string(domain.RoleAdmin)}

	// POST /invitations - moderate rate limit by user (admin operation)
	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleIssue),
			httpx.RequireAuth(),
			httpx.RequireAnyRole(admins...),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /invitations/{token} - strict rate limit by IP (token probing)
	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/invitations/{id}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.RequireAuth(),
			httpx.RequireAnyRole(admins...),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFA: r.MFA}

	// POST /mfa/totp/enroll - moderate rate limit by user
	r.Mux.Handle("POST /v1/mfa/totp/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			httpx.RequireAuth(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// activate and disable check codes - strict rate limit by user (prevent brute force of TOTP codes)
	r.Mux.Handle("POST /v1/mfa/totp/activate",
		httpx.Chain(http.HandlerFunc(h.HandleActivate),
			httpx.RequireAuth(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/mfa/totp/disable",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			httpx.RequireAuth(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTenants() {
	if r.ProvisioningToken == "" {
		r.logger.Info("tenant provisioning endpoint disabled", "reason", "no provisioning token configured")
		return
	}

	// POST /tenants - strict rate limit by IP (operator endpoint)
	r.Mux.Handle("POST /v1/tenants",
		httpx.Chain(&TenantsHandler{Tenants: r.Tenants, ProvisioningToken: r.ProvisioningToken},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
