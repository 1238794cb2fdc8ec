package domain

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

// Audit actions.
const (
	ActionAccountCreated     = "account.created"
	ActionMembershipCreated  = "membership.created"
	ActionEmploymentCreated  = "employment.created"
	ActionInvitationIssued   = "invitation.issued"
	ActionInvitationConsumed = "invitation.consumed"
	ActionInvitationExpired  = "invitation.expired"
	ActionInvitationCanceled = "invitation.canceled"
	ActionLoginSucceeded     = "auth.login"
	ActionPasswordReset      = "auth.password_reset"
	ActionMFAEnabled         = "mfa.enabled"
	ActionMFADisabled        = "mfa.disabled"
	ActionTenantProvisioned  = "tenant.provisioned"
)

// AuditLog is one recorded change. A zero TenantID or ActorID means the
// change happened outside a tenant or without an acting account.
type AuditLog struct {
	ID         idx.ID
	TenantID   idx.ID
	ActorID    idx.ID
	Action     string
	TargetType string
	TargetID   string
	Before     json.RawMessage
	After      json.RawMessage
	RequestID  string
	HappenedAt time.Time
}
