package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFA *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP seed for the caller. MFA stays off until a code is confirmed with the activate endpoint.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Envelope[authsdk.TOTPEnrollResponse]	"secret and otpauth URL"
//	@Failure		401	{object}	authsdk.ErrorResponse							"UNAUTHENTICATED"
//	@Failure		409	{object}	authsdk.ErrorResponse							"MFA_ALREADY_ENABLED"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enrollment, err := h.MFA.Enroll(ctx, idx.ID(tenantx.AccountID(ctx)))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.TOTPEnrollResponse{
		Secret:     enrollment.Secret,
		OTPAuthURL: enrollment.URL,
	})
}

// HandleActivate handles POST /v1/mfa/totp/activate
//
//	@Summary		Activate TOTP MFA
//	@Description	Turns MFA on once a code from the enrolled seed checks out. Logins then require otp_code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TOTPCodeRequest							true	"Current code"
//	@Success		200		{object}	authsdk.Envelope[authsdk.MessageResponse]	"message"
//	@Failure		401		{object}	authsdk.ErrorResponse								"UNAUTHENTICATED, INVALID_OTP"
//	@Failure		409		{object}	authsdk.ErrorResponse								"MFA_NOT_ENROLLED, MFA_ALREADY_ENABLED"
//	@Router			/v1/mfa/totp/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.MFA.Activate(ctx, idx.ID(tenantx.AccountID(ctx)), req.Code); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.MessageResponse{Message: "two-factor authentication enabled"})
}

// HandleDisable handles POST /v1/mfa/totp/disable
//
//	@Summary		Disable TOTP MFA
//	@Description	Turns MFA off and forgets the seed. A current code is required.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TOTPCodeRequest							true	"Current code"
//	@Success		200		{object}	authsdk.Envelope[authsdk.MessageResponse]	"message"
//	@Failure		401		{object}	authsdk.ErrorResponse								"UNAUTHENTICATED, INVALID_OTP"
//	@Failure		409		{object}	authsdk.ErrorResponse								"MFA_NOT_ENROLLED"
//	@Router			/v1/mfa/totp/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.MFA.Disable(ctx, idx.ID(tenantx.AccountID(ctx)), req.Code); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.MessageResponse{Message: "two-factor authentication disabled"})
}
