package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var tenantCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,31}$`)

type ProvisionTenant struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Timezone        string `json:"timezone"`
	Currency        string `json:"currency"`
	MaxMembers      *int   `json:"max_members"`
	AdminEmail      string `json:"admin_email"`
	AdminEmployeeNo string `json:"admin_employee_no"`
}

func (r ProvisionTenant) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Match(tenantCodePattern)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Timezone, validation.By(func(v any) error {
			tz, _ := v.(string)
			if tz == "" {
				return nil
			}
			if _, err := time.LoadLocation(tz); err != nil {
				return errors.New("must be an IANA time zone")
			}
			return nil
		})),
		validation.Field(&r.Currency, is.CurrencyCode),
		validation.Field(&r.MaxMembers, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.AdminEmail, validation.Required, is.EmailFormat),
		validation.Field(&r.AdminEmployeeNo, validation.Required, validation.Length(1, 64)),
	)
}

// Provisioned is a new tenant and the invitation for its first admin.
type Provisioned struct {
	Tenant     domain.Tenant
	Invitation domain.Invitation
	Token      string
}

type TenantService struct {
	Store     store.Store
	Ledger    *InvitationLedger
	Bootstrap *BootstrapService
	Audit     Auditor
	Now       func() time.Time
}

// Provision creates a tenant and an admin invitation for it, both or
// neither.
func (s *TenantService) Provision(ctx context.Context, req ProvisionTenant) (Provisioned, error) {
	log := slogx.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return Provisioned{}, invalid(err)
	}

	var out Provisioned
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		systemID, err := s.Bootstrap.Resolve(ctx, tx)
		if err != nil {
			return err
		}

		out.Tenant = domain.Tenant{
			ID:         idx.New(),
			Code:       req.Code,
			Name:       req.Name,
			Timezone:   req.Timezone,
			Currency:   req.Currency,
			MaxMembers: req.MaxMembers,
			Stamp:      domain.NewStamp(clock(s.Now), systemID),
		}
		if out.Tenant.Timezone == "" {
			out.Tenant.Timezone = domain.DefaultTimezone
		}
		if out.Tenant.Currency == "" {
			out.Tenant.Currency = domain.DefaultCurrency
		}
		if err := tx.Tenants().CreateTenant(ctx, out.Tenant); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrTenantCodeTaken
			}
			return err
		}

		out.Invitation, out.Token, err = s.Ledger.In(tx).issue(ctx, IssueInvitation{
			TenantID:   out.Tenant.ID,
			Email:      req.AdminEmail,
			Role:       domain.RoleAdmin,
			EmployeeNo: req.AdminEmployeeNo,
			IssuedBy:   systemID,
		})
		return err
	})
	if err != nil {
		return Provisioned{}, err
	}

	log.Info("tenant provisioned",
		slog.String("tenant_id", out.Tenant.ID.String()),
		slog.String("code", out.Tenant.Code),
	)
	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionTenantProvisioned,
		TargetType: "tenant",
		TargetID:   out.Tenant.ID.String(),
		TenantID:   out.Tenant.ID,
		ActorID:    out.Tenant.CreatedBy,
		After: map[string]any{
			"code":        out.Tenant.Code,
			"name":        out.Tenant.Name,
			"timezone":    out.Tenant.Timezone,
			"max_members": out.Tenant.MaxMembers,
		},
	})
	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionInvitationIssued,
		TargetType: "invitation",
		TargetID:   out.Invitation.ID.String(),
		TenantID:   out.Tenant.ID,
		ActorID:    out.Tenant.CreatedBy,
		After:      invitationAudit(out.Invitation),
	})
	return out, nil
}
