package domain

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

// Stamp holds the audit columns every aggregate carries. A zero actor
// means the row was written by the system with no acting account.
type Stamp struct {
	CreatedAt time.Time
	CreatedBy idx.ID
	UpdatedAt time.Time
	UpdatedBy idx.ID
	DeletedAt *time.Time
	DeletedBy idx.ID
}

// NewStamp stamps a row created at now by actor.
func NewStamp(now time.Time, actor idx.ID) Stamp {
	now = now.UTC()
	return Stamp{CreatedAt: now, CreatedBy: actor, UpdatedAt: now, UpdatedBy: actor}
}

// Deleted reports whether the row is soft deleted.
func (s Stamp) Deleted() bool { return s.DeletedAt != nil }
