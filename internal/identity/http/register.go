package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
)

type RegisterHandler struct {
	Registrar *service.Registrar
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Redeem an invitation token. A new email creates an account (password and names required);
//	@Description	an email that already has an account joins the invitation's tenant and must not send a password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest								true	"Invitation token and account details"
//	@Success		201		{object}	authsdk.Envelope[authsdk.RegisterResponse]	"account_id, email"
//	@Failure		400		{object}	authsdk.ErrorResponse								"EMAIL_MISMATCH, UNEXPECTED_PASSWORD, MISSING_REQUIRED_FIELD, WEAK_PASSWORD"
//	@Failure		403		{object}	authsdk.ErrorResponse								"CAPACITY_EXCEEDED"
//	@Failure		404		{object}	authsdk.ErrorResponse								"INVITATION_NOT_FOUND"
//	@Failure		409		{object}	authsdk.ErrorResponse								"INVITATION_INVALID"
//	@Failure		429		{object}	authsdk.ErrorResponse								"RATE_LIMITED"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.Registrar.Register(ctx, service.Registration{
		InvitationToken:    req.InvitationToken,
		Email:              req.Email,
		Password:           req.Password,
		FamilyName:         req.FamilyName,
		GivenName:          req.GivenName,
		FamilyNamePhonetic: req.FamilyNamePhonetic,
		GivenNamePhonetic:  req.GivenNamePhonetic,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, authsdk.RegisterResponse{
		AccountID: account.ID.String(),
		Email:     account.Email,
	})
}
