package domain

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountLocked   AccountStatus = "locked"
)

type Account struct {
	ID                 idx.ID
	Email              string
	PasswordHash       string // bcrypt; empty only for the system identity
	FamilyName         string
	GivenName          string
	FamilyNamePhonetic string
	GivenNamePhonetic  string
	Status             AccountStatus
	MFASecret          []byte     // sealed TOTP seed, nil when not enrolled
	MFAEnabledAt       *time.Time // nil while MFA is off
	Stamp
}

// CanLogin reports whether the account has a password at all. The system
// identity never does.
func (a *Account) CanLogin() bool { return a.PasswordHash != "" }

func (a *Account) MFAEnabled() bool { return a.MFAEnabledAt != nil }

// Profile is the account as seen from one tenant.
type Profile struct {
	AccountID          idx.ID
	Email              string
	FamilyName         string
	GivenName          string
	FamilyNamePhonetic string
	GivenNamePhonetic  string
	TenantID           idx.ID
	TenantCode         string
	TenantName         string
	Role               Role
	MFAEnabled         bool
}
