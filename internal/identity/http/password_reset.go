package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
)

// PasswordResetHandler handles the two steps of a password reset.
type PasswordResetHandler struct {
	Resets *service.PasswordResetService
}

// HandleRequest handles POST /v1/auth/password-reset
//
//	@Summary		Request Password Reset
//	@Description	Issues a single-use reset token and hands it to the configured notifier.
//	@Description	The response is the same whether or not the email belongs to an account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasswordResetRequest						true	"Email"
//	@Success		202		{object}	authsdk.Envelope[authsdk.MessageResponse]	"message"
//	@Failure		400		{object}	authsdk.ErrorResponse								"VALIDATION_ERROR, MISSING_REQUIRED_FIELD"
//	@Failure		429		{object}	authsdk.ErrorResponse								"RATE_LIMITED"
//	@Router			/v1/auth/password-reset [post].
func (h *PasswordResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasswordResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email == "" {
		writeError(w, r, domain.MissingField("email"))
		return
	}

	if err := h.Resets.RequestReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusAccepted, authsdk.MessageResponse{
		Message: "if the address belongs to an account, a reset link is on its way",
	})
}

// HandleConfirm handles POST /v1/auth/password-reset/confirm
//
//	@Summary		Confirm Password Reset
//	@Description	Sets a new password using a reset token. Each token works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasswordResetConfirmRequest				true	"Token and new password"
//	@Success		200		{object}	authsdk.Envelope[authsdk.MessageResponse]	"message"
//	@Failure		400		{object}	authsdk.ErrorResponse								"MISSING_REQUIRED_FIELD, WEAK_PASSWORD"
//	@Failure		404		{object}	authsdk.ErrorResponse								"RESET_TOKEN_NOT_FOUND"
//	@Failure		409		{object}	authsdk.ErrorResponse								"RESET_TOKEN_INVALID"
//	@Router			/v1/auth/password-reset/confirm [post].
func (h *PasswordResetHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasswordResetConfirmRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Resets.ConfirmReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.MessageResponse{Message: "password updated"})
}
