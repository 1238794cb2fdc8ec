package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type LoginHandler struct {
	Sessions *service.SessionIssuer
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange email and password for a tenant scoped access token.
//	@Description	Unknown emails and wrong passwords fail identically with BAD_CREDENTIALS.
//	@Description	Accounts with TOTP enabled must also send otp_code; without it the response is MFA_REQUIRED.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest							true	"Credentials"
//	@Success		200		{object}	authsdk.Envelope[authsdk.LoginResponse]	"access_token, expires_at, profile"
//	@Failure		400		{object}	authsdk.ErrorResponse							"VALIDATION_ERROR"
//	@Failure		401		{object}	authsdk.ErrorResponse							"BAD_CREDENTIALS, MFA_REQUIRED"
//	@Failure		403		{object}	authsdk.ErrorResponse							"ACCOUNT_DISABLED, NO_TENANT"
//	@Failure		429		{object}	authsdk.ErrorResponse							"RATE_LIMITED"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.Sessions.Login(ctx, service.Credentials{
		Email:    req.Email,
		Password: req.Password,
		OTPCode:  req.OTPCode,
		TenantID: idx.ID(req.TenantID),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		Profile:     profileDTO(session.Profile),
	})
}
