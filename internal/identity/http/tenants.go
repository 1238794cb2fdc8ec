package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// TenantsHandler provisions tenants. It is guarded by a static operator
// token rather than a bearer token, since the first tenant has no admin
// who could log in yet.
type TenantsHandler struct {
	Tenants           *service.TenantService
	ProvisioningToken string
}

// ServeHTTP godoc
//
//	@Summary		Provision Tenant
//	@Description	Creates a tenant and an invitation for its first admin. Requires the operator provisioning token.
//	@Description	The endpoint is not mounted when no provisioning token is configured.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Param			X-Provisioning-Token	header		string											true	"Operator provisioning token"
//	@Param			request					body		authsdk.ProvisionTenantRequest					true	"Tenant and admin details"
//	@Success		201						{object}	authsdk.Envelope[authsdk.ProvisionedTenant]	"tenant and admin invitation"
//	@Failure		400						{object}	authsdk.ErrorResponse							"VALIDATION_ERROR"
//	@Failure		401						{object}	authsdk.ErrorResponse							"UNAUTHENTICATED"
//	@Failure		409						{object}	authsdk.ErrorResponse							"TENANT_CODE_TAKEN"
//	@Router			/v1/tenants [post].
func (h *TenantsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	given := r.Header.Get(authsdk.ProvisioningTokenHeader)
	if h.ProvisioningToken == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.ProvisioningToken)) != 1 {
		log.Warn("tenant provisioning rejected", "reason", "bad provisioning token")
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req authsdk.ProvisionTenantRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.Tenants.Provision(ctx, service.ProvisionTenant{
		Code:            req.Code,
		Name:            req.Name,
		Timezone:        req.Timezone,
		Currency:        req.Currency,
		MaxMembers:      req.MaxMembers,
		AdminEmail:      req.AdminEmail,
		AdminEmployeeNo: req.AdminEmployeeNo,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, authsdk.ProvisionedTenant{
		Tenant: tenantDTO(out.Tenant),
		Invitation: authsdk.IssuedInvitation{
			Invitation: invitationDTO(out.Invitation),
			Token:      out.Token,
		},
	})
}
