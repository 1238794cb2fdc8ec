package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const maxInvitationTTLDays = 90

// IssueInvitation is the input of InvitationLedger.Issue. Zero TTLDays and
// MaxUses take the ledger defaults.
type IssueInvitation struct {
	TenantID       idx.ID                `json:"tenant_id"`
	Email          string                `json:"email"`
	Role           domain.Role           `json:"role"`
	EmployeeNo     string                `json:"employee_no"`
	EmploymentType domain.EmploymentType `json:"employment_type"`
	HireDate       *time.Time            `json:"hire_date"`
	TTLDays        int                   `json:"ttl_days"`
	MaxUses        int                   `json:"max_uses"`
	IssuedBy       idx.ID                `json:"-"`
}

func (r IssueInvitation) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TenantID, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Role, validation.Required,
			validation.In(domain.RoleSystemAdmin, domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee)),
		validation.Field(&r.EmployeeNo, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.EmploymentType,
			validation.In(domain.EmploymentFulltime, domain.EmploymentParttime, domain.EmploymentContract)),
		validation.Field(&r.TTLDays, validation.Min(0), validation.Max(maxInvitationTTLDays)),
		validation.Field(&r.MaxUses, validation.Min(0)),
	)
}

// InvitationLedger owns the invitation lifecycle: issue, validate with
// lazy expiry, consume and cancel.
type InvitationLedger struct {
	Store          store.Store
	Audit          Auditor
	DefaultTTLDays int
	Now            func() time.Time

	// SystemEmail is the bootstrap identity's address, which can never be
	// invited. Defaults to DefaultSystemEmail.
	SystemEmail string
}

// In returns a copy of the ledger bound to st, typically a transaction,
// so that consumption commits or rolls back with the caller's writes.
func (l *InvitationLedger) In(st store.Store) *InvitationLedger {
	c := *l
	c.Store = st
	return &c
}

// Issue creates an invitation and returns it with the plain token. The
// token is not stored and cannot be recovered later.
func (l *InvitationLedger) Issue(ctx context.Context, req IssueInvitation) (domain.Invitation, string, error) {
	inv, token, err := l.issue(ctx, req)
	if err != nil {
		return domain.Invitation{}, "", err
	}

	record(ctx, l.Audit, AuditEntry{
		Action:     domain.ActionInvitationIssued,
		TargetType: "invitation",
		TargetID:   inv.ID.String(),
		TenantID:   inv.TenantID,
		ActorID:    req.IssuedBy,
		After:      invitationAudit(inv),
	})
	return inv, token, nil
}

func (l *InvitationLedger) issue(ctx context.Context, req IssueInvitation) (domain.Invitation, string, error) {
	log := slogx.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return domain.Invitation{}, "", invalid(err)
	}
	if isSystemEmail(req.Email, l.SystemEmail) {
		return domain.Invitation{}, "", invalid(validation.Errors{
			"email": validation.NewError("validation_email_reserved", "is reserved"),
		})
	}

	// 1. Tenant must exist and have a free seat
	tenant, err := l.Store.Tenants().GetTenantByID(ctx, req.TenantID)
	if err != nil {
		return domain.Invitation{}, "", notFoundAs(err, domain.ErrTenantNotFound)
	}
	if tenant.MaxMembers != nil {
		members, err := l.Store.Memberships().CountMembers(ctx, tenant.ID)
		if err != nil {
			return domain.Invitation{}, "", err
		}
		if !tenant.HasCapacity(members) {
			log.Warn("invitation refused, tenant at capacity",
				slog.String("tenant_id", tenant.ID.String()),
				slog.Int("members", members),
				slog.Int("max_members", *tenant.MaxMembers),
			)
			return domain.Invitation{}, "", domain.ErrCapacityExceeded
		}
	}

	// 2. Random token, only the fingerprint is stored
	token, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return domain.Invitation{}, "", err
	}

	ttlDays := req.TTLDays
	if ttlDays == 0 {
		ttlDays = l.DefaultTTLDays
	}
	if ttlDays <= 0 {
		ttlDays = domain.DefaultInvitationTTLDays
	}
	maxUses := req.MaxUses
	if maxUses == 0 {
		maxUses = domain.DefaultInvitationMaxUses
	}

	now := clock(l.Now)
	inv := domain.Invitation{
		ID:             idx.New(),
		TenantID:       tenant.ID,
		Email:          req.Email,
		TokenHash:      fingerprint,
		Role:           req.Role,
		EmployeeNo:     req.EmployeeNo,
		EmploymentType: req.EmploymentType,
		HireDate:       req.HireDate,
		ExpiresAt:      now.Add(time.Duration(ttlDays) * 24 * time.Hour),
		MaxUses:        maxUses,
		Status:         domain.InvitationPending,
		Stamp:          domain.NewStamp(now, req.IssuedBy),
	}

	// 3. Persist
	if err := l.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation", slog.String("invitation_id", inv.ID.String()), slog.Any("error", err))
		return domain.Invitation{}, "", err
	}

	log.Debug("invitation issued",
		slog.String("invitation_id", inv.ID.String()),
		slog.String("tenant_id", inv.TenantID.String()),
		slog.String("role", string(inv.Role)),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, token, nil
}

// Validate resolves token to a usable invitation. A pending invitation
// found past its expiry is flipped to expired before failing, and that
// write stands on its own regardless of what the caller does next.
func (l *InvitationLedger) Validate(ctx context.Context, token string) (domain.Invitation, error) {
	if token == "" {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}

	inv, err := l.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return domain.Invitation{}, notFoundAs(err, domain.ErrInvitationNotFound)
	}

	now := clock(l.Now)
	if inv.Usable(now) {
		return inv, nil
	}

	if inv.Lapsed(now) {
		if err := l.Store.Invitations().MarkInvitationExpired(ctx, inv.ID, now); err != nil {
			return domain.Invitation{}, err
		}
		slogx.FromContext(ctx).Info("invitation expired", slog.String("invitation_id", inv.ID.String()))
		record(ctx, l.Audit, AuditEntry{
			Action:     domain.ActionInvitationExpired,
			TargetType: "invitation",
			TargetID:   inv.ID.String(),
			TenantID:   inv.TenantID,
			Before:     map[string]any{"status": inv.Status},
			After:      map[string]any{"status": domain.InvitationExpired},
		})
	}
	return domain.Invitation{}, fmt.Errorf("%w: status %s", domain.ErrInvitationInvalid, inv.Status)
}

// Consume records one use of inv by accountID. inv must be the state read
// in the same transaction: the write only lands if nobody consumed the
// invitation in between.
func (l *InvitationLedger) Consume(ctx context.Context, inv domain.Invitation, accountID idx.ID) error {
	err := l.Store.Invitations().ConsumeInvitation(ctx, inv.ID, inv.UsedCount, accountID, clock(l.Now))
	if errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("%w: already consumed", domain.ErrInvitationInvalid)
	}
	return err
}

// Get returns an invitation of the caller's tenant.
func (l *InvitationLedger) Get(ctx context.Context, id idx.ID) (domain.Invitation, error) {
	inv, err := l.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, notFoundAs(err, domain.ErrInvitationNotFound)
	}
	if tid := tenantx.TenantID(ctx); tid != "" && tid != inv.TenantID.String() {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	if inv.Deleted() {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	return inv, nil
}

// Cancel withdraws a pending invitation.
func (l *InvitationLedger) Cancel(ctx context.Context, id idx.ID, actor idx.ID) (domain.Invitation, error) {
	inv, err := l.Get(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}

	now := clock(l.Now)
	err = l.Store.Invitations().CancelInvitation(ctx, inv.ID, actor, now)
	if errors.Is(err, store.ErrConflict) {
		return domain.Invitation{}, fmt.Errorf("%w: status %s", domain.ErrInvitationInvalid, inv.Status)
	}
	if err != nil {
		return domain.Invitation{}, err
	}

	before := inv.Status
	inv.Status = domain.InvitationCanceled
	inv.UpdatedAt = now
	inv.UpdatedBy = actor

	record(ctx, l.Audit, AuditEntry{
		Action:     domain.ActionInvitationCanceled,
		TargetType: "invitation",
		TargetID:   inv.ID.String(),
		TenantID:   inv.TenantID,
		ActorID:    actor,
		Before:     map[string]any{"status": before},
		After:      map[string]any{"status": inv.Status},
	})
	return inv, nil
}

// invitationAudit is the audited view of an invitation; the token hash
// stays out of the log.
func invitationAudit(inv domain.Invitation) map[string]any {
	return map[string]any{
		"email":       inv.Email,
		"role":        inv.Role,
		"employee_no": inv.EmployeeNo,
		"max_uses":    inv.MaxUses,
		"expires_at":  inv.ExpiresAt,
		"status":      inv.Status,
	}
}
