package domain

import "github.com/aussiebroadwan/roster/pkg/idx"

const (
	DefaultTimezone = "Asia/Tokyo"
	DefaultCurrency = "JPY"
)

// Tenant is a company. MaxMembers caps the number of non-deleted
// memberships; nil means unlimited.
type Tenant struct {
	ID         idx.ID
	Code       string
	Name       string
	Timezone   string
	Currency   string
	MaxMembers *int
	Stamp
}

// HasCapacity reports whether one more member fits given the current
// member count.
func (t *Tenant) HasCapacity(members int) bool {
	return t.MaxMembers == nil || members < *t.MaxMembers
}
