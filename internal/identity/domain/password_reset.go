package domain

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
)

const PasswordResetTTL = 24 * time.Hour

type PasswordResetToken struct {
	ID        idx.ID
	AccountID idx.ID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (t *PasswordResetToken) Expired(now time.Time) bool { return !now.Before(t.ExpiresAt) }
