package domain

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationUsed     InvitationStatus = "used"
	InvitationExpired  InvitationStatus = "expired"
	InvitationCanceled InvitationStatus = "canceled"
)

const (
	DefaultInvitationTTLDays = 7
	DefaultInvitationMaxUses = 1
)

// Invitation admits one email address into a tenant. Only the token
// fingerprint is stored.
type Invitation struct {
	ID             idx.ID
	TenantID       idx.ID
	Email          string
	TokenHash      string
	Role           Role
	EmployeeNo     string
	EmploymentType EmploymentType // empty means fulltime
	HireDate       *time.Time     // nil means the registration date
	ExpiresAt      time.Time
	MaxUses        int
	UsedCount      int
	UsedAt         *time.Time
	UsedBy         idx.ID
	Status         InvitationStatus
	Stamp
}

// Usable reports whether the invitation can still be redeemed at now.
func (i *Invitation) Usable(now time.Time) bool {
	return i.Status == InvitationPending &&
		now.Before(i.ExpiresAt) &&
		i.UsedCount < i.MaxUses &&
		!i.Deleted()
}

// Lapsed reports whether the invitation is still pending but past its
// expiry, i.e. due for the lazy flip to expired.
func (i *Invitation) Lapsed(now time.Time) bool {
	return i.Status == InvitationPending && !now.Before(i.ExpiresAt)
}
