package domain

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleEmployee    Role = "employee"
)

// Roles lists every role, most privileged first.
var Roles = []Role{RoleSystemAdmin, RoleAdmin, RoleManager, RoleEmployee}

func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanInvite reports whether the role may issue invitations.
func (r Role) CanInvite() bool {
	return r == RoleSystemAdmin || r == RoleAdmin
}

type Membership struct {
	ID        idx.ID
	AccountID idx.ID
	TenantID  idx.ID
	Role      Role
	JoinedAt  time.Time
	Stamp
}
