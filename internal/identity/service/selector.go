package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

// TenantSelector picks the tenant a session acts in when an account
// belongs to several. memberships is never empty and is ordered earliest
// joined first.
type TenantSelector interface {
	Select(ctx context.Context, memberships []domain.Membership) (domain.Membership, error)
}

// FirstJoined selects the membership the account joined first.
type FirstJoined struct{}

func (FirstJoined) Select(_ context.Context, ms []domain.Membership) (domain.Membership, error) {
	if len(ms) == 0 {
		return domain.Membership{}, domain.ErrNoTenant
	}
	return ms[0], nil
}

// PreferTenant selects the membership of TenantID. Without a Fallback,
// an account that is not a member of TenantID gets ErrNoTenant.
type PreferTenant struct {
	TenantID idx.ID
	Fallback TenantSelector
}

func (p PreferTenant) Select(ctx context.Context, ms []domain.Membership) (domain.Membership, error) {
	for _, m := range ms {
		if m.TenantID == p.TenantID {
			return m, nil
		}
	}
	if p.Fallback != nil {
		return p.Fallback.Select(ctx, ms)
	}
	return domain.Membership{}, fmt.Errorf("%w: not a member of %s", domain.ErrNoTenant, p.TenantID)
}
