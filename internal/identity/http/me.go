package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
)

type MeHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Current Account Endpoint
//	@Description	Returns the caller's profile in the tenant the access token was issued for.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Envelope[authsdk.Profile]	"profile"
//	@Failure		401	{object}	authsdk.ErrorResponse				"UNAUTHENTICATED"
//	@Failure		403	{object}	authsdk.ErrorResponse				"NO_TENANT"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Accounts.Me(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, profileDTO(profile))
}
