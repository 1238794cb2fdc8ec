package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
)

// InvitationsHandler handles issuing, looking up and canceling invitations.
type InvitationsHandler struct {
	Ledger *service.InvitationLedger
}

// HandleIssue handles POST /v1/invitations
//
//	@Summary		Issue Invitation
//	@Description	Creates an invitation into the caller's tenant. System administrators may name another tenant with tenant_id.
//	@Description	The plain token is returned once and cannot be retrieved again.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IssueInvitationRequest						true	"Invitation details"
//	@Success		201		{object}	authsdk.Envelope[authsdk.IssuedInvitation]	"invitation and token"
//	@Failure		400		{object}	authsdk.ErrorResponse								"VALIDATION_ERROR"
//	@Failure		401		{object}	authsdk.ErrorResponse								"UNAUTHENTICATED"
//	@Failure		403		{object}	authsdk.ErrorResponse								"FORBIDDEN, CAPACITY_EXCEEDED"
//	@Failure		404		{object}	authsdk.ErrorResponse								"TENANT_NOT_FOUND"
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, _ := tenantx.FromContext(ctx)

	var req authsdk.IssueInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	caller := domain.Role(scope.Role)
	tenantID := idx.ID(scope.TenantID)
	if req.TenantID != "" && caller == domain.RoleSystemAdmin {
		tenantID = idx.ID(req.TenantID)
	}

	// Only system administrators may mint new system administrators.
	if domain.Role(req.Role) == domain.RoleSystemAdmin && caller != domain.RoleSystemAdmin {
		writeError(w, r, domain.ErrForbidden)
		return
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := time.Parse(domain.DateLayout, req.HireDate)
		if err != nil {
			writeError(w, r, &domain.FieldError{Field: "hire_date", Err: domain.ErrValidation})
			return
		}
		hireDate = &d
	}

	inv, token, err := h.Ledger.Issue(ctx, service.IssueInvitation{
		TenantID:       tenantID,
		Email:          req.Email,
		Role:           domain.Role(req.Role),
		EmployeeNo:     req.EmployeeNo,
		EmploymentType: domain.EmploymentType(req.EmploymentType),
		HireDate:       hireDate,
		TTLDays:        req.TTLDays,
		MaxUses:        req.MaxUses,
		IssuedBy:       idx.ID(scope.AccountID),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, authsdk.IssuedInvitation{
		Invitation: invitationDTO(inv),
		Token:      token,
	})
}

// HandleGet handles GET /v1/invitations/{token}
//
//	@Summary		Look Up Invitation
//	@Description	Resolves an invitation token so a sign-up form can show who is being invited and where.
//	@Description	A pending invitation found past its expiry is marked expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string									true	"Invitation token"
//	@Success		200		{object}	authsdk.Envelope[authsdk.Invitation]	"invitation"
//	@Failure		404		{object}	authsdk.ErrorResponse					"INVITATION_NOT_FOUND"
//	@Failure		409		{object}	authsdk.ErrorResponse					"INVITATION_INVALID"
//	@Router			/v1/invitations/{token} [get].
func (h *InvitationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Ledger.Validate(r.Context(), r.PathValue("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, invitationDTO(inv))
}

// HandleCancel handles POST /v1/invitations/{id}/cancel
//
//	@Summary		Cancel Invitation
//	@Description	Withdraws a pending invitation of the caller's tenant.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string									true	"Invitation ID"
//	@Success		200	{object}	authsdk.Envelope[authsdk.Invitation]	"canceled invitation"
//	@Failure		401	{object}	authsdk.ErrorResponse					"UNAUTHENTICATED"
//	@Failure		403	{object}	authsdk.ErrorResponse					"FORBIDDEN"
//	@Failure		404	{object}	authsdk.ErrorResponse					"INVITATION_NOT_FOUND"
//	@Failure		409	{object}	authsdk.ErrorResponse					"INVITATION_INVALID"
//	@Router			/v1/invitations/{id}/cancel [post].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, domain.ErrInvitationNotFound)
		return
	}

	inv, err := h.Ledger.Cancel(ctx, id, idx.ID(tenantx.AccountID(ctx)))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, invitationDTO(inv))
}
