package service

import (
	"context"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
)

type AccountService struct {
	Store store.Store
}

// Me returns the profile of the caller in the tenant their token names.
func (s *AccountService) Me(ctx context.Context) (domain.Profile, error) {
	scope, ok := tenantx.FromContext(ctx)
	if !ok {
		return domain.Profile{}, domain.ErrUnauthenticated
	}

	a, err := s.Store.Accounts().GetAccountByID(ctx, idx.ID(scope.AccountID))
	if err != nil {
		return domain.Profile{}, notFoundAs(err, domain.ErrUnauthenticated)
	}
	if a.Deleted() {
		return domain.Profile{}, domain.ErrUnauthenticated
	}

	m, err := s.Store.Memberships().GetMembership(ctx, a.ID, idx.ID(scope.TenantID))
	if err != nil {
		return domain.Profile{}, notFoundAs(err, domain.ErrNoTenant)
	}
	t, err := s.Store.Tenants().GetTenantByID(ctx, m.TenantID)
	if err != nil {
		return domain.Profile{}, notFoundAs(err, domain.ErrNoTenant)
	}

	return newProfile(a, m, t), nil
}
